// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cfastq/internal/appcore"
	"cfastq/internal/cli"
	"cfastq/internal/errs"
	"cfastq/internal/extract"
	"cfastq/internal/version"
)

// Preset is the default cfastq binary: -u selects the UMI length.
var Preset = cli.Preset{
	Name:   "cfastq",
	Short:  "annotate single-cell FASTQ headers with barcode, UMI and sample index",
	UMILen: extract.DefaultUMILen,
}

// RunContext runs the default cfastq binary.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunPreset(parent, Preset, argv, stdout, stderr)
}

// RunPreset is shared by every cfastq binary.
func RunPreset(parent context.Context, p cli.Preset, argv []string, stdout, stderr io.Writer) int {
	cmd := cli.NewCommand(p)
	cmd.Cobra.SetOut(stdout)
	cmd.Cobra.SetErr(stderr)

	opts, err := cli.ParseArgs(cmd, argv)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return errs.ExitOK
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		cmd.Usage()
		return errs.ExitCode(err)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", p.Name, version.Version)
		return errs.ExitOK
	}

	return appcore.Run(parent, stdout, stderr, appcore.Options{
		Inputs:        opts.Inputs,
		Extract:       extract.Config{BarcodeLen: opts.BarcodeLen, UMILen: opts.UMILen},
		Tag:           opts.Experiment,
		Dedup:         !opts.NoDedup,
		Strict:        opts.Strict,
		Output:        opts.Output,
		ChunkSize:     opts.ChunkSize,
		Compress:      opts.Compress,
		CompressLevel: opts.CompressLevel,
		Debug:         opts.Debug,
		Progress:      opts.Progress,
		Summary:       opts.Summary,
	})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
