// internal/legacyapp/app.go
package legacyapp

import (
	"context"
	"io"

	"cfastq/internal/app"
	"cfastq/internal/cli"
	"cfastq/internal/extract"
)

// Preset is the older chemistry: 10-base UMIs, not configurable.
var Preset = cli.Preset{
	Name:     "cfastq-umi10",
	Short:    "annotate FASTQ headers for 16+10 barcode/UMI chemistries",
	UMILen:   extract.LegacyUMILen,
	FixedUMI: true,
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return app.RunPreset(parent, Preset, argv, stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
