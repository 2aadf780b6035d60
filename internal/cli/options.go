// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cfastq/internal/errs"
	"cfastq/internal/extract"
	"cfastq/internal/runutil"
	"cfastq/internal/version"
	"cfastq/pkg/api"
)

// ErrHelp is returned by ParseArgs after help text was printed.
var ErrHelp = pflag.ErrHelp

// Preset fixes per-binary defaults.
type Preset struct {
	Name   string
	Short  string
	UMILen int
	// FixedUMI removes -u/--umi-size; the UMI length is always UMILen.
	FixedUMI bool
}

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs in positional order: [index] [barcode] primary.
	Inputs []string

	// Extraction
	BarcodeLen int
	UMILen     int

	// Output
	Output        string // "" = stdout
	ChunkSize     int
	Compress      bool
	CompressLevel int
	Experiment    string // resolved tag, never empty after ParseArgs
	Summary       string

	// Behaviour
	NoDedup  bool
	Strict   bool
	Debug    bool
	Progress bool

	Version bool
}

// Command couples the cobra command with the options it fills.
type Command struct {
	Cobra *cobra.Command

	opt  Options
	args []string
	ran  bool
}

// NewCommand builds the command for a preset. Flags mirror the classic
// getopt surface (-b -c -d -e -n -o -u) and may be combined, e.g. -dn.
func NewCommand(p Preset) *Command {
	c := &Command{}
	cmd := &cobra.Command{
		Use:   p.Name + " [flags] [index.fastq.gz] [barcode.fastq.gz] primary.fastq.gz",
		Short: p.Short,
		Long: fmt.Sprintf(`%s: annotate FASTQ headers with cell barcode, UMI and sample index

Version: %s

Inputs select the mode:
  3 files  index, barcode-carrier, primary  (full annotation)
  2 files  barcode-carrier, primary         (sample index fields empty)
  1 file   primary                          (experiment tag only)
Inputs may be plain, gzip or zstd; '-' reads standard input.`, p.Name, version.Version),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			c.args = args
			c.ran = true
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.SortFlags = false
	f.IntVarP(&c.opt.BarcodeLen, "barcode-size", "b", extract.DefaultBarcodeLen, "cell barcode length")
	if p.FixedUMI {
		c.opt.UMILen = p.UMILen
	} else {
		f.IntVarP(&c.opt.UMILen, "umi-size", "u", p.UMILen, "UMI length")
	}
	f.IntVarP(&c.opt.ChunkSize, "chunk-size", "c", 0, "records per output file (0 = single output); requires -o")
	f.StringVarP(&c.opt.Output, "output", "o", "", "output path, or chunk prefix with -c (default stdout)")
	f.StringVarP(&c.opt.Experiment, "experiment", "e", "", "experiment tag (default: output base name, else "+api.DefaultExperiment+")")
	f.BoolVarP(&c.opt.NoDedup, "no-dedup", "n", false, "keep records with a repeated barcode+UMI")
	f.BoolVarP(&c.opt.Debug, "debug", "d", false, "debug diagnostics and timings on stderr")
	f.BoolVarP(&c.opt.Compress, "compress", "z", false, "gzip output files")
	f.IntVar(&c.opt.CompressLevel, "compress-level", 6, "gzip level (1-9)")
	f.BoolVar(&c.opt.Strict, "strict", false, "fail when an index or barcode input ends before the primary input")
	f.BoolVar(&c.opt.Progress, "progress", false, "show a progress bar over the primary input")
	f.StringVar(&c.opt.Summary, "summary", "", "write a JSON run report to `PATH`")
	f.BoolVarP(&c.opt.Version, "version", "v", false, "print version and exit")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errs.Configf("%v", err)
	})
	c.Cobra = cmd
	return c
}

// Usage prints the flag summary to the command's error stream, keeping
// stdout clean for records.
func (c *Command) Usage() { _, _ = fmt.Fprint(c.Cobra.ErrOrStderr(), c.Cobra.UsageString()) }

// ParseArgs parses argv and validates the result. Help returns ErrHelp;
// every other failure wraps errs.ErrConfig.
func ParseArgs(c *Command, argv []string) (Options, error) {
	if argv == nil {
		argv = []string{}
	}
	c.Cobra.SetArgs(argv)
	if err := c.Cobra.Execute(); err != nil {
		if errors.Is(err, errs.ErrConfig) {
			return c.opt, err
		}
		return c.opt, errs.Configf("%v", err)
	}
	if !c.ran {
		return c.opt, ErrHelp
	}
	opt := c.opt
	opt.Inputs = c.args
	if opt.Version {
		return opt, nil
	}
	if err := validate(&opt); err != nil {
		return opt, err
	}
	return opt, nil
}

func validate(opt *Options) error {
	if n := len(opt.Inputs); n < 1 || n > 3 {
		return errs.Configf("expected 1 to 3 input files ([index] [barcode] primary), got %d", n)
	}
	stdin := 0
	for _, in := range opt.Inputs {
		if in == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errs.Configf("standard input ('-') can be used for at most one input")
	}
	if opt.Output == "-" {
		opt.Output = ""
	}
	if err := (extract.Config{BarcodeLen: opt.BarcodeLen, UMILen: opt.UMILen}).Validate(); err != nil {
		return err
	}
	if err := runutil.ValidateChunking(opt.ChunkSize, opt.Output); err != nil {
		return err
	}
	if opt.Compress && (opt.CompressLevel < 1 || opt.CompressLevel > 9) {
		return errs.Configf("--compress-level must be between 1 and 9, got %d", opt.CompressLevel)
	}
	tag, err := runutil.ExperimentTag(opt.Experiment, opt.Output)
	if err != nil {
		return err
	}
	opt.Experiment = tag
	return nil
}
