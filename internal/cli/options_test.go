// internal/cli/options_test.go
package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfastq/internal/errs"
)

var std = Preset{Name: "cfastq", UMILen: 12}

func parse(t *testing.T, p Preset, args ...string) (Options, error) {
	t.Helper()
	c := NewCommand(p)
	var out bytes.Buffer
	c.Cobra.SetOut(&out)
	c.Cobra.SetErr(&out)
	return ParseArgs(c, args)
}

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	o, err := parse(t, std, args...)
	require.NoError(t, err)
	return o
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "i1.fq.gz", "r1.fq.gz", "r2.fq.gz")
	assert.Equal(t, []string{"i1.fq.gz", "r1.fq.gz", "r2.fq.gz"}, o.Inputs)
	assert.Equal(t, 16, o.BarcodeLen)
	assert.Equal(t, 12, o.UMILen)
	assert.Zero(t, o.ChunkSize)
	assert.Empty(t, o.Output)
	assert.Equal(t, "exp01", o.Experiment)
	assert.False(t, o.NoDedup)
	assert.False(t, o.Debug)
	assert.Equal(t, 6, o.CompressLevel)
}

func TestShortFlagsCombine(t *testing.T) {
	o := mustParse(t, "-dn", "-b", "14", "-u10", "-c", "500", "-o", "out/sample", "r2.fq")
	assert.True(t, o.Debug)
	assert.True(t, o.NoDedup)
	assert.Equal(t, 14, o.BarcodeLen)
	assert.Equal(t, 10, o.UMILen)
	assert.Equal(t, 500, o.ChunkSize)
	assert.Equal(t, "sample", o.Experiment, "tag derived from output")
}

func TestLongFlags(t *testing.T) {
	o := mustParse(t, "--experiment", "pbmc", "--output", "x.fastq.gz", "--compress",
		"--compress-level", "1", "--strict", "--progress", "--summary", "s.json", "r1", "r2")
	assert.Equal(t, "pbmc", o.Experiment)
	assert.True(t, o.Compress)
	assert.Equal(t, 1, o.CompressLevel)
	assert.True(t, o.Strict)
	assert.True(t, o.Progress)
	assert.Equal(t, "s.json", o.Summary)
}

func TestDashOutputMeansStdout(t *testing.T) {
	o := mustParse(t, "-o", "-", "r2.fq")
	assert.Empty(t, o.Output)
	assert.Equal(t, "exp01", o.Experiment)
}

func TestConfigErrors(t *testing.T) {
	cases := map[string][]string{
		"no inputs":          {},
		"four inputs":        {"a", "b", "c", "d"},
		"chunk to stdout":    {"-c", "10", "r2.fq"},
		"negative chunk":     {"-c", "-1", "-o", "x", "r2.fq"},
		"negative barcode":   {"-b", "-2", "r2.fq"},
		"negative umi":       {"-u", "-2", "r2.fq"},
		"two stdin":          {"-", "-"},
		"bad tag":            {"-e", "a b", "r2.fq"},
		"separator in tag":   {"-e", "x|||y", "r2.fq"},
		"bad compress level": {"-z", "--compress-level", "12", "-o", "x", "r2.fq"},
		"unknown flag":       {"--frobnicate", "r2.fq"},
		"missing value":      {"r2.fq", "-o"},
		"non-numeric":        {"-b", "sixteen", "r2.fq"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, std, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrConfig)
		})
	}
}

func TestChunkWithoutOutputMessage(t *testing.T) {
	_, err := parse(t, std, "-c", "10", "r2.fq")
	assert.ErrorContains(t, err, "-c cannot be specified when using stdout")
}

func TestHelp(t *testing.T) {
	c := NewCommand(std)
	var out bytes.Buffer
	c.Cobra.SetOut(&out)
	_, err := ParseArgs(c, []string{"-h"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, out.String(), "--barcode-size")
	assert.Contains(t, out.String(), "primary.fastq.gz")
}

func TestVersionSkipsValidation(t *testing.T) {
	o, err := parse(t, std, "-v")
	require.NoError(t, err)
	assert.True(t, o.Version)
}

func TestFixedUMIPreset(t *testing.T) {
	p := Preset{Name: "cfastq-umi10", UMILen: 10, FixedUMI: true}
	o, err := parse(t, p, "r1", "r2")
	require.NoError(t, err)
	assert.Equal(t, 10, o.UMILen)

	_, err = parse(t, p, "-u", "12", "r1", "r2")
	assert.ErrorIs(t, err, errs.ErrConfig)
}
