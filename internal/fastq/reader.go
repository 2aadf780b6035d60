// Package fastq reads 4-line FASTQ records from plain or compressed streams.
package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"cfastq/internal/errs"
)

// Record is one FASTQ entry. Seq and Qual alias the Reader's buffers and are
// only valid until the next successful call to Next.
type Record struct {
	ID      string
	Comment string
	Seq     []byte
	Qual    []byte
}

// Reader is a forward-only record stream.
type Reader struct {
	name   string
	br     *bufio.Reader
	closer io.Closer
	n      int
	long   []byte
	seq    []byte
	qual   []byte
}

// NewReader parses records from an already-decoded stream. name is used in
// error messages only.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{
		name: name,
		br:   bufio.NewReaderSize(r, 1<<20),
		seq:  make([]byte, 0, 256),
		qual: make([]byte, 0, 256),
	}
}

// Name returns the path or label the reader was created with.
func (r *Reader) Name() string { return r.name }

// Next returns the next record, or io.EOF when the stream is exhausted.
// On io.EOF the previously returned record stays valid.
func (r *Reader) Next() (Record, error) {
	var head []byte
	for {
		line, err := r.readLine()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		if err != nil {
			return Record{}, r.fail(errs.ErrDecode, r.n+1, err)
		}
		if len(line) > 0 {
			head = line
			break
		}
	}
	idx := r.n + 1
	if head[0] != '@' {
		return Record{}, r.fail(errs.ErrDecode, idx, errors.New("missing '@' record marker"))
	}
	id, comment := splitHeader(head[1:])

	line, err := r.readBody(idx)
	if err != nil {
		return Record{}, err
	}
	r.seq = append(r.seq[:0], line...)

	line, err = r.readBody(idx)
	if err != nil {
		return Record{}, err
	}
	if len(line) == 0 || line[0] != '+' {
		return Record{}, r.fail(errs.ErrDecode, idx, errors.New("missing '+' separator line"))
	}

	line, err = r.readBody(idx)
	if err != nil {
		return Record{}, err
	}
	r.qual = append(r.qual[:0], line...)

	if len(r.seq) != len(r.qual) {
		return Record{}, r.fail(errs.ErrMalformed, idx,
			errors.New("sequence and quality lengths differ"))
	}
	r.n = idx
	return Record{ID: id, Comment: comment, Seq: r.seq, Qual: r.qual}, nil
}

// Close releases the decoder and the underlying file. It is safe to call
// more than once.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

func (r *Reader) readBody(idx int) ([]byte, error) {
	line, err := r.readLine()
	if err == io.EOF {
		return nil, r.fail(errs.ErrDecode, idx, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, r.fail(errs.ErrDecode, idx, err)
	}
	return line, nil
}

// readLine returns the next line without its terminator. The slice is only
// valid until the following call.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		r.long = append(r.long[:0], line...)
		for err == bufio.ErrBufferFull {
			line, err = r.br.ReadSlice('\n')
			r.long = append(r.long, line...)
		}
		line = r.long
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == io.EOF && len(line) == 0 {
		return nil, io.EOF
	}
	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return line, nil
}

func (r *Reader) fail(kind error, idx int, cause error) error {
	return errs.At(kind, r.name, idx, cause)
}

// splitHeader splits an identifier line (without '@') at the first space or
// tab. The comment keeps everything after that delimiter verbatim.
func splitHeader(b []byte) (id, comment string) {
	if i := bytes.IndexAny(b, " \t"); i >= 0 {
		return string(b[:i]), string(b[i+1:])
	}
	return string(b), ""
}
