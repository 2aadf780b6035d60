// internal/cmdutil/progress.go
package cmdutil

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
)

// Progress is a byte progress bar over one input file. A nil *Progress is
// valid and does nothing.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar sized to path. Standard input has no size, so
// "-" yields nil.
func NewProgress(dst io.Writer, path string) *Progress {
	if path == "-" {
		return nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil
	}
	bar := pb.Full.New(0)
	bar.SetTotal(st.Size())
	bar.Set(pb.Bytes, true)
	bar.SetWriter(dst)
	bar.Start()
	return &Progress{bar: bar}
}

// Meter wraps r so bytes read advance the bar. Suitable for fastq.WithMeter.
func (p *Progress) Meter(r io.Reader) io.Reader {
	if p == nil {
		return r
	}
	return p.bar.NewProxyReader(r)
}

// Finish stops the bar.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}

// Current reports bytes consumed so far.
func (p *Progress) Current() int64 {
	if p == nil {
		return 0
	}
	return p.bar.Current()
}
