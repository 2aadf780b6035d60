// Package api holds the stable output formats downstream tools parse.
package api

import (
	"errors"
	"strings"
)

// Sep separates tags and values in an annotated identifier line.
const Sep = "|||"

// Header tags, in wire order. Keep names and order stable.
const (
	TagCellBarcode     = "CR"
	TagCellBarcodeQual = "CY"
	TagUMI             = "UR"
	TagUMIQual         = "UY"
	TagSampleBarcode   = "BC"
	TagSampleQual      = "QT"
	TagCellID          = "CID"
)

// Tags lists the header tags in the order they are written.
var Tags = []string{
	TagCellBarcode, TagCellBarcodeQual,
	TagUMI, TagUMIQual,
	TagSampleBarcode, TagSampleQual,
	TagCellID,
}

// DefaultExperiment is the tag used when neither an experiment nor an
// output path is given.
const DefaultExperiment = "exp01"

// HeaderV1 is the parsed form of
//
//	@<id>|||CR|||<cr>|||CY|||<cy>|||UR|||<ur>|||UY|||<uy>|||BC|||<bc>|||QT|||<qt>|||CID|||<cid> <comment>
//
// Fields not produced by the active mode are empty strings.
type HeaderV1 struct {
	ID      string `json:"id"`
	CR      string `json:"cr"`
	CY      string `json:"cy"`
	UR      string `json:"ur"`
	UY      string `json:"uy"`
	BC      string `json:"bc"`
	QT      string `json:"qt"`
	CID     string `json:"cid"`
	Comment string `json:"comment"`
}

var ErrHeaderFormat = errors.New("not an annotated header")

// ParseHeader splits an annotated identifier line (with or without the
// leading '@') back into its fields.
func ParseHeader(line string) (HeaderV1, error) {
	line = strings.TrimSuffix(strings.TrimPrefix(line, "@"), "\n")
	parts := strings.Split(line, Sep)
	if len(parts) != 1+2*len(Tags) {
		return HeaderV1{}, ErrHeaderFormat
	}
	for i, tag := range Tags {
		if parts[1+2*i] != tag {
			return HeaderV1{}, ErrHeaderFormat
		}
	}
	last := parts[len(parts)-1]
	cid, comment, ok := strings.Cut(last, " ")
	if !ok {
		return HeaderV1{}, ErrHeaderFormat
	}
	return HeaderV1{
		ID:      parts[0],
		CR:      parts[2],
		CY:      parts[4],
		UR:      parts[6],
		UY:      parts[8],
		BC:      parts[10],
		QT:      parts[12],
		CID:     cid,
		Comment: comment,
	}, nil
}

// RunSummaryV1 is the JSON run report written with --summary.
type RunSummaryV1 struct {
	RunID      string   `json:"run_id"`
	Mode       string   `json:"mode"`
	Experiment string   `json:"experiment"`
	Inputs     []string `json:"inputs"`
	Reads      int64    `json:"reads"`
	Written    int64    `json:"written"`
	Duplicates int64    `json:"duplicates"`
	Chunks     int      `json:"chunks"`
	Files      []string `json:"files,omitempty"`
	ElapsedSec float64  `json:"elapsed_sec"`
}
