package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	gzip "github.com/klauspost/pgzip"

	"cfastq/internal/errs"
	"cfastq/internal/runutil"
)

// ChunkedOptions configures a Chunked writer.
type ChunkedOptions struct {
	// Prefix is the output path. Empty means Stdout.
	Prefix string
	Stdout io.Writer
	// ChunkSize > 0 rotates to <Prefix>_<i>.fastq every ChunkSize records.
	ChunkSize int
	// Compress gzips every sink at Level (1-9, 0 picks the default).
	Compress bool
	Level    int
	// OnOpen/OnClose observe sink lifecycle (debug logging).
	OnOpen  func(name string)
	OnClose func(name string)
	// BufSize is the per-sink buffer size; 0 picks 1 MiB.
	BufSize int
}

// Chunked writes formatted records to one sink at a time, rotating after
// every ChunkSize records. Sinks open lazily, so n records produce exactly
// ceil(n/ChunkSize) files.
type Chunked struct {
	o       ChunkedOptions
	cur     *sink
	index   int
	inChunk int
	records int64
	files   []string
	closed  bool
}

// NewChunked validates o and returns a writer. Chunking to stdout is a
// configuration error.
func NewChunked(o ChunkedOptions) (*Chunked, error) {
	if err := runutil.ValidateChunking(o.ChunkSize, o.Prefix); err != nil {
		return nil, err
	}
	if o.Prefix == "" && o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.BufSize <= 0 {
		o.BufSize = 1 << 20
	}
	return &Chunked{o: o}, nil
}

// ChunkName returns the file name used for chunk i.
func ChunkName(prefix string, i int, compress bool) string {
	if compress {
		return fmt.Sprintf("%s_%d.fastq.gz", prefix, i)
	}
	return fmt.Sprintf("%s_%d.fastq", prefix, i)
}

// Write appends one complete record. The rotation boundary is after the
// record that completes a chunk.
func (c *Chunked) Write(rec []byte) error {
	if c.closed {
		return errs.At(errs.ErrIO, c.o.Prefix, 0, os.ErrClosed)
	}
	if c.cur == nil {
		if err := c.open(); err != nil {
			return err
		}
	}
	if _, err := c.cur.w.Write(rec); err != nil {
		return errs.At(errs.ErrIO, c.cur.name, 0, err)
	}
	c.records++
	c.inChunk++
	if c.o.ChunkSize > 0 && c.inChunk == c.o.ChunkSize {
		if err := c.closeCurrent(); err != nil {
			return err
		}
		c.index++
		c.inChunk = 0
	}
	return nil
}

// Close flushes and closes the active sink. With chunking and no records an
// empty first chunk is still created.
func (c *Chunked) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cur == nil && c.o.ChunkSize > 0 && len(c.files) == 0 {
		if err := c.open(); err != nil {
			return err
		}
	}
	if c.cur == nil && c.o.ChunkSize == 0 && len(c.files) == 0 && c.o.Prefix != "" {
		if err := c.open(); err != nil {
			return err
		}
	}
	return c.closeCurrent()
}

// Files lists every output file created, in order. Stdout is not listed.
func (c *Chunked) Files() []string { return append([]string(nil), c.files...) }

// Chunks is the number of output sinks produced.
func (c *Chunked) Chunks() int {
	if c.o.Prefix == "" {
		if c.records > 0 {
			return 1
		}
		return 0
	}
	return len(c.files)
}

func (c *Chunked) open() error {
	var (
		name string
		s    *sink
		err  error
	)
	switch {
	case c.o.Prefix == "":
		name = "<stdout>"
		s, err = newSink(name, nil, c.o.Stdout, c.o)
	case c.o.ChunkSize > 0:
		name = ChunkName(c.o.Prefix, c.index, c.o.Compress)
		s, err = createSink(name, c.o)
	default:
		name = c.o.Prefix
		s, err = createSink(name, c.o)
	}
	if err != nil {
		return err
	}
	c.cur = s
	if s.f != nil {
		c.files = append(c.files, name)
	}
	if c.o.OnOpen != nil {
		c.o.OnOpen(name)
	}
	return nil
}

func (c *Chunked) closeCurrent() error {
	if c.cur == nil {
		return nil
	}
	s := c.cur
	c.cur = nil
	if err := s.close(); err != nil {
		return err
	}
	if c.o.OnClose != nil {
		c.o.OnClose(s.name)
	}
	return nil
}

// sink is one open output: optional file, optional gzip layer, buffer.
type sink struct {
	name string
	f    *os.File
	gz   *gzip.Writer
	bw   *bufio.Writer
	w    io.Writer
}

func createSink(name string, o ChunkedOptions) (*sink, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, errs.At(errs.ErrIO, name, 0, err)
	}
	s, err := newSink(name, f, f, o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func newSink(name string, f *os.File, dst io.Writer, o ChunkedOptions) (*sink, error) {
	s := &sink{name: name, f: f}
	if o.Compress {
		level := o.Level
		if level == 0 {
			level = gzip.DefaultCompression
		}
		gz, err := gzip.NewWriterLevel(dst, level)
		if err != nil {
			return nil, errs.Configf("compression level %d: %v", o.Level, err)
		}
		s.gz = gz
		dst = gz
	}
	s.bw = bufio.NewWriterSize(dst, o.BufSize)
	s.w = s.bw
	return s, nil
}

func (s *sink) close() error {
	var first error
	if err := s.bw.Flush(); err != nil {
		first = err
	}
	if s.gz != nil {
		if err := s.gz.Close(); err != nil && first == nil {
			first = err
		}
	}
	if s.f != nil {
		if err := s.f.Close(); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return errs.At(errs.ErrIO, s.name, 0, first)
	}
	return nil
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// A reader like `head` closing stdout early is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
