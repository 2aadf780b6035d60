package errs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordError_MessageAndUnwrap(t *testing.T) {
	err := At(ErrDecode, "r1.fastq.gz", 7, io.ErrUnexpectedEOF)
	assert.Equal(t, "r1.fastq.gz: record 7: decode error: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var re *RecordError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &re)
	assert.Equal(t, 7, re.Record)
	assert.Equal(t, "r1.fastq.gz", re.Path)
}

func TestRecordError_NoRecordNoCause(t *testing.T) {
	assert.Equal(t, "<stream>: malformed record", At(ErrMalformed, "", 0, nil).Error())
	assert.Equal(t, "x: record 2: malformed record", At(ErrMalformed, "x", 2, nil).Error())
}

func TestRecordError_CauseAlreadyCarriesKind(t *testing.T) {
	cause := fmt.Errorf("%w: read x is short", ErrMalformed)
	err := At(ErrMalformed, "r1.fq", 4, cause)
	assert.Equal(t, "r1.fq: record 4: malformed record: read x is short", err.Error())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestClassifyAndExitCode(t *testing.T) {
	cases := []struct {
		err  error
		code Code
		exit int
	}{
		{nil, "", ExitOK},
		{Configf("bad %s", "flag"), CodeConfig, ExitUsage},
		{At(ErrIO, "in.gz", 0, errors.New("no such file")), CodeIO, ExitRuntime},
		{At(ErrDecode, "in.gz", 3, nil), CodeDecode, ExitRuntime},
		{At(ErrMalformed, "in.gz", 3, nil), CodeMalformed, ExitRuntime},
		{fmt.Errorf("run: %w", ErrMisaligned), CodeMisaligned, ExitRuntime},
		{context.Canceled, CodeCancel, ExitInterrupt},
		{errors.New("boom"), CodeUnknown, ExitRuntime},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, Classify(c.err), "%v", c.err)
		assert.Equal(t, c.exit, ExitCode(c.err), "%v", c.err)
	}
}

func TestConfigf_Message(t *testing.T) {
	err := Configf("-c cannot be used with %s", "stdout")
	assert.EqualError(t, err, "configuration error: -c cannot be used with stdout")
}
