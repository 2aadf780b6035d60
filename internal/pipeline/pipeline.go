// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"cfastq/internal/dedup"
	"cfastq/internal/errs"
	"cfastq/internal/extract"
	"cfastq/internal/fastq"
	"cfastq/internal/header"
)

// Source is a forward-only record stream (fastq.Reader satisfies it).
type Source interface {
	Next() (fastq.Record, error)
	Name() string
}

// Sink receives complete formatted records.
type Sink interface {
	Write(rec []byte) error
	Close() error
}

// chunkReporter is implemented by sinks that rotate over files.
type chunkReporter interface {
	Chunks() int
	Files() []string
}

// Streams holds the 1-3 inputs. Primary is required and drives iteration.
type Streams struct {
	Index   Source
	Barcode Source
	Primary Source
}

// Variant reports the header layout the present streams select.
func (s Streams) Variant() header.Variant {
	return header.VariantFor(s.Index != nil, s.Barcode != nil)
}

// Config controls one run. It is not modified by Run.
type Config struct {
	Extract extract.Config
	Tag     string
	// Filter drops repeated barcode+UMI keys; nil keeps everything.
	// It is only consulted when a barcode stream is present.
	Filter dedup.Filter
	// Strict fails the run when a companion stream ends before the primary.
	Strict bool
	// ProgressEvery logs a debug progress line every N written records
	// (0 disables).
	ProgressEvery int64
	Log           logrus.FieldLogger
}

// State is the mutable bookkeeping of a run.
type State struct {
	Reads      int64
	Written    int64
	Duplicates int64
	Start      time.Time
	ChunkStart time.Time
}

// Summary is reported once the run is over.
type Summary struct {
	Reads      int64
	Written    int64
	Duplicates int64
	Chunks     int
	Files      []string
	Elapsed    time.Duration
}

const cancelCheckEvery = 4096

// companion is a non-primary stream. Once exhausted it keeps handing out the
// last record it produced unless strict alignment was requested.
type companion struct {
	src  Source
	role string
	last fastq.Record
	done bool
}

func (c *companion) next(step int64, strict bool, log logrus.FieldLogger) (fastq.Record, error) {
	if c.done {
		return c.last, nil
	}
	rec, err := c.src.Next()
	if err == io.EOF {
		if strict {
			return fastq.Record{}, errs.At(errs.ErrMisaligned, c.src.Name(), int(step),
				errors.New(c.role+" stream ended before the primary stream"))
		}
		c.done = true
		log.WithFields(logrus.Fields{"stream": c.role, "path": c.src.Name(), "read": step}).
			Debug("companion stream exhausted; reusing its last record")
		return c.last, nil
	}
	if err != nil {
		return fastq.Record{}, err
	}
	c.last = rec
	return rec, nil
}

// Run drives the streams until the primary is exhausted, then closes every
// stream and the sink (index, barcode, primary, sink) and reports counts.
// Streams and sink are closed on every return path.
func Run(ctx context.Context, cfg Config, s Streams, out Sink) (sum Summary, err error) {
	st := &State{Start: time.Now()}
	st.ChunkStart = st.Start

	defer func() {
		if cerr := closeAll(s, out); err == nil {
			err = cerr
		}
		sum = st.summary(out)
	}()

	if s.Primary == nil {
		return sum, errs.Configf("a primary stream is required")
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	filter := cfg.Filter
	if filter == nil || s.Barcode == nil {
		filter = dedup.KeepAll{}
	}

	var idx, bar *companion
	if s.Index != nil {
		idx = &companion{src: s.Index, role: "index"}
	}
	if s.Barcode != nil {
		bar = &companion{src: s.Barcode, role: "barcode"}
	}
	variant := s.Variant()
	buf := make([]byte, 0, 1024)

	for {
		if st.Reads%cancelCheckEvery == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return sum, cerr
			}
		}

		prim, rerr := s.Primary.Next()
		if rerr == io.EOF {
			return sum, nil
		}
		if rerr != nil {
			return sum, rerr
		}
		st.Reads++

		in := header.Input{Variant: variant, ID: prim.ID, Comment: prim.Comment, Tag: cfg.Tag}

		if bar != nil {
			brec, berr := bar.next(st.Reads, cfg.Strict, log)
			if berr != nil {
				return sum, berr
			}
			fields, xerr := extract.Extract(brec, cfg.Extract)
			if xerr != nil {
				return sum, errs.At(errs.ErrMalformed, s.Barcode.Name(), int(st.Reads), xerr)
			}
			in.Fields = fields
		}
		if idx != nil {
			irec, ierr := idx.next(st.Reads, cfg.Strict, log)
			if ierr != nil {
				return sum, ierr
			}
			in.IndexSeq, in.IndexQual = irec.Seq, irec.Qual
		}
		if bar != nil && !filter.Keep(in.Fields.Key()) {
			st.Duplicates++
			continue
		}

		buf = header.AppendRecord(buf[:0], in, prim.Seq, prim.Qual)
		if werr := out.Write(buf); werr != nil {
			return sum, werr
		}
		st.Written++

		if cfg.ProgressEvery > 0 && st.Written%cfg.ProgressEvery == 0 {
			now := time.Now()
			log.WithFields(logrus.Fields{
				"reads":      st.Written,
				"chunk_time": now.Sub(st.ChunkStart).Seconds(),
				"total_time": now.Sub(st.Start).Seconds(),
			}).Debug("progress")
			st.ChunkStart = now
		}
	}
}

func (st *State) summary(out Sink) Summary {
	sum := Summary{
		Reads:      st.Reads,
		Written:    st.Written,
		Duplicates: st.Duplicates,
		Elapsed:    time.Since(st.Start),
	}
	if cr, ok := out.(chunkReporter); ok {
		sum.Chunks = cr.Chunks()
		sum.Files = cr.Files()
	} else if st.Written > 0 {
		sum.Chunks = 1
	}
	return sum
}

// CloseStreams closes every present stream (index, barcode, primary) that
// implements io.Closer and returns the first error.
func CloseStreams(s Streams) error {
	var first error
	for _, src := range []Source{s.Index, s.Barcode, s.Primary} {
		if c, ok := src.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

func closeAll(s Streams, out Sink) error {
	first := CloseStreams(s)
	if out != nil {
		if err := out.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
