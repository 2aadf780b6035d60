package fastq

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"

	"cfastq/internal/errs"
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Option tunes Open.
type Option func(*openConfig)

type openConfig struct {
	meter func(io.Reader) io.Reader
}

// WithMeter wraps the raw (still compressed) byte stream before decoding,
// e.g. to drive a progress bar from bytes consumed.
func WithMeter(wrap func(io.Reader) io.Reader) Option {
	return func(c *openConfig) { c.meter = wrap }
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path ("-" for stdin) and returns a Reader over its records.
// gzip (including multi-member/BGZF) and zstd are detected by magic number;
// anything else is read as plain FASTQ.
func Open(path string, opts ...Option) (*Reader, error) {
	var cfg openConfig
	for _, o := range opts {
		o(&cfg)
	}
	rc, err := openDecoded(path, cfg)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc, path)
	r.closer = rc
	return r, nil
}

func openDecoded(path string, cfg openConfig) (io.ReadCloser, error) {
	var raw io.ReadCloser
	if path == "-" {
		raw = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errs.At(errs.ErrIO, path, 0, err)
		}
		raw = fh
	}

	var src io.Reader = raw
	if cfg.meter != nil {
		src = cfg.meter(src)
	}
	br := bufio.NewReaderSize(src, 256*1024)
	sig, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(sig, magicGzip):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = raw.Close()
			return nil, errs.At(errs.ErrDecode, path, 0, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, raw}}, nil
	case bytes.HasPrefix(sig, magicZstd):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = raw.Close()
			return nil, errs.At(errs.ErrDecode, path, 0, err)
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), raw}}, nil
	default:
		return &multiReadCloser{Reader: br, closers: []io.Closer{raw}}, nil
	}
}
