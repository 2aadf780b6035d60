package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfastq/internal/errs"
	"cfastq/internal/fastq"
)

func rec(seq, qual string) fastq.Record {
	return fastq.Record{ID: "r", Seq: []byte(seq), Qual: []byte(qual)}
}

func TestExtract_Slices(t *testing.T) {
	seq := "AAAAAAAAAAAAAAAA" + "GGGGGGGGGGGG" + "TTTT"
	qual := strings.Repeat("F", 16) + strings.Repeat(":", 12) + "####"
	f, err := Extract(rec(seq, qual), Config{BarcodeLen: 16, UMILen: 12})
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("A", 16), f.Barcode)
	assert.Equal(t, strings.Repeat("F", 16), f.BarcodeQual)
	assert.Equal(t, strings.Repeat("G", 12), f.UMI)
	assert.Equal(t, strings.Repeat(":", 12), f.UMIQual)
	assert.Equal(t, strings.Repeat("A", 16)+strings.Repeat("G", 12), f.Key())
}

func TestExtract_Boundary(t *testing.T) {
	cfg := Config{BarcodeLen: 16, UMILen: 12}

	exact := strings.Repeat("C", cfg.Span())
	_, err := Extract(rec(exact, exact), cfg)
	require.NoError(t, err)

	short := strings.Repeat("C", cfg.Span()-1)
	_, err = Extract(rec(short, short), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformed)
	assert.Contains(t, err.Error(), "need 28")
}

func TestExtract_LegacyUMI(t *testing.T) {
	seq := "ACGTACGTACGTACGT" + "TTTTTCCCCC"
	f, err := Extract(rec(seq, seq), Config{BarcodeLen: DefaultBarcodeLen, UMILen: LegacyUMILen})
	require.NoError(t, err)
	assert.Equal(t, "TTTTTCCCCC", f.UMI)
}

func TestExtract_ResultDoesNotAliasRecord(t *testing.T) {
	r := rec("ACGTAC", "IIIIII")
	f, err := Extract(r, Config{BarcodeLen: 4, UMILen: 2})
	require.NoError(t, err)
	copy(r.Seq, "TTTTTT")
	assert.Equal(t, "ACGT", f.Barcode)
	assert.Equal(t, "AC", f.UMI)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{BarcodeLen: 0, UMILen: 0}.Validate())
	assert.ErrorIs(t, Config{BarcodeLen: -1}.Validate(), errs.ErrConfig)
	assert.ErrorIs(t, Config{UMILen: -1}.Validate(), errs.ErrConfig)
}
