// Package header builds annotated FASTQ identifier lines.
package header

import (
	"cfastq/internal/extract"
	"cfastq/pkg/api"
)

// Variant selects which fields are filled.
type Variant int

const (
	// PassThrough: primary stream only; only the experiment tag is set.
	PassThrough Variant = iota
	// BarcodeOnly: barcode-carrier + primary; sample index fields empty.
	BarcodeOnly
	// Full: index + barcode-carrier + primary.
	Full
)

func (v Variant) String() string {
	switch v {
	case Full:
		return "full"
	case BarcodeOnly:
		return "barcode"
	default:
		return "passthrough"
	}
}

// VariantFor derives the variant from the streams that are present.
func VariantFor(hasIndex, hasBarcode bool) Variant {
	switch {
	case hasBarcode && hasIndex:
		return Full
	case hasBarcode:
		return BarcodeOnly
	default:
		return PassThrough
	}
}

// Input is everything a header needs. IndexSeq/IndexQual are ignored unless
// Variant is Full; Fields is ignored for PassThrough.
type Input struct {
	Variant   Variant
	ID        string
	Comment   string
	Tag       string
	Fields    extract.Fields
	IndexSeq  []byte
	IndexQual []byte
}

// Compose appends the identifier line (with '@', without newline) to dst.
func Compose(dst []byte, in Input) []byte {
	var f extract.Fields
	var bc, qt []byte
	if in.Variant != PassThrough {
		f = in.Fields
	}
	if in.Variant == Full {
		bc, qt = in.IndexSeq, in.IndexQual
	}

	dst = append(dst, '@')
	dst = append(dst, in.ID...)
	dst = appendField(dst, api.TagCellBarcode, f.Barcode)
	dst = appendField(dst, api.TagCellBarcodeQual, f.BarcodeQual)
	dst = appendField(dst, api.TagUMI, f.UMI)
	dst = appendField(dst, api.TagUMIQual, f.UMIQual)
	dst = appendField(dst, api.TagSampleBarcode, string(bc))
	dst = appendField(dst, api.TagSampleQual, string(qt))

	dst = append(dst, api.Sep...)
	dst = append(dst, api.TagCellID...)
	dst = append(dst, api.Sep...)
	if in.Variant != PassThrough {
		dst = append(dst, f.Barcode...)
		dst = append(dst, '-')
	}
	dst = append(dst, in.Tag...)
	dst = append(dst, ' ')
	dst = append(dst, in.Comment...)
	return dst
}

// AppendRecord appends a complete 4-line, LF-terminated FASTQ record.
func AppendRecord(dst []byte, in Input, seq, qual []byte) []byte {
	dst = Compose(dst, in)
	dst = append(dst, '\n')
	dst = append(dst, seq...)
	dst = append(dst, "\n+\n"...)
	dst = append(dst, qual...)
	return append(dst, '\n')
}

func appendField(dst []byte, tag, val string) []byte {
	dst = append(dst, api.Sep...)
	dst = append(dst, tag...)
	dst = append(dst, api.Sep...)
	return append(dst, val...)
}
