// Package extract slices the cell barcode and UMI out of a barcode-carrier
// record.
package extract

import (
	"fmt"

	"cfastq/internal/errs"
	"cfastq/internal/fastq"
)

// Default lengths for current single-cell chemistries.
const (
	DefaultBarcodeLen = 16
	DefaultUMILen     = 12
	LegacyUMILen      = 10
)

// Config fixes the slice offsets for a run.
type Config struct {
	BarcodeLen int
	UMILen     int
}

// Validate rejects negative lengths.
func (c Config) Validate() error {
	if c.BarcodeLen < 0 {
		return errs.Configf("barcode size must be >= 0, got %d", c.BarcodeLen)
	}
	if c.UMILen < 0 {
		return errs.Configf("UMI size must be >= 0, got %d", c.UMILen)
	}
	return nil
}

// Span is the number of leading bases the extraction consumes.
func (c Config) Span() int { return c.BarcodeLen + c.UMILen }

// Fields are the extracted subsequences and their qualities.
type Fields struct {
	Barcode     string
	BarcodeQual string
	UMI         string
	UMIQual     string
}

// Key is the dedup key: barcode followed by UMI, bases only.
func (f Fields) Key() string { return f.Barcode + f.UMI }

// Extract returns seq[0:B) as barcode and seq[B:B+U) as UMI, with the
// matching quality slices. A record shorter than B+U is an ErrMalformed.
func Extract(rec fastq.Record, cfg Config) (Fields, error) {
	b, u := cfg.BarcodeLen, cfg.UMILen
	if len(rec.Seq) < b+u || len(rec.Qual) < b+u {
		return Fields{}, fmt.Errorf("%w: %s: barcode read has %d bases, need %d (barcode %d + UMI %d)",
			errs.ErrMalformed, rec.ID, len(rec.Seq), b+u, b, u)
	}
	return Fields{
		Barcode:     string(rec.Seq[:b]),
		BarcodeQual: string(rec.Qual[:b]),
		UMI:         string(rec.Seq[b : b+u]),
		UMIQual:     string(rec.Qual[b : b+u]),
	}, nil
}
