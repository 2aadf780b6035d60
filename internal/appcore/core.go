// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"cfastq/internal/cmdutil"
	"cfastq/internal/dedup"
	"cfastq/internal/errs"
	"cfastq/internal/extract"
	"cfastq/internal/fastq"
	"cfastq/internal/jsonutil"
	"cfastq/internal/pipeline"
	"cfastq/internal/writers"
	"cfastq/pkg/api"
)

// defaultProgressEvery is the debug progress cadence without chunking.
const defaultProgressEvery = 1_000_000

type Options struct {
	Inputs []string

	Extract extract.Config
	Tag     string
	Dedup   bool
	Strict  bool

	Output        string
	ChunkSize     int
	Compress      bool
	CompressLevel int

	Debug    bool
	Progress bool
	Summary  string
}

// Run opens the inputs, annotates every primary record and writes the
// result. It returns the process exit code; failures are logged to stderr.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := cmdutil.NewLogger(stderr, o.Debug)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var prog *cmdutil.Progress
	var primaryOpts []fastq.Option
	if o.Progress && len(o.Inputs) > 0 {
		prog = cmdutil.NewProgress(stderr, o.Inputs[len(o.Inputs)-1])
		if prog == nil {
			log.Warn("--progress needs a regular primary input file; disabled")
		} else {
			primaryOpts = append(primaryOpts, fastq.WithMeter(prog.Meter))
		}
	}

	streams, err := openStreams(o.Inputs, primaryOpts, log)
	if err != nil {
		prog.Finish()
		return fail(log, err)
	}
	out, err := newSink(o, stdout, log)
	if err != nil {
		pipeline.CloseStreams(streams)
		prog.Finish()
		return fail(log, err)
	}

	cfg := pipeline.Config{
		Extract: o.Extract,
		Tag:     o.Tag,
		Filter:  newFilter(o, streams),
		Strict:  o.Strict,
		Log:     log,
	}
	if o.Debug {
		cfg.ProgressEvery = defaultProgressEvery
		if o.ChunkSize > 0 {
			cfg.ProgressEvery = int64(o.ChunkSize)
		}
	}
	variant := streams.Variant()
	log.WithFields(logrus.Fields{
		"mode":       variant.String(),
		"output":     outputName(o.Output),
		"chunk_size": o.ChunkSize,
		"dedup":      o.Dedup && streams.Barcode != nil,
		"barcode":    o.Extract.BarcodeLen,
		"umi":        o.Extract.UMILen,
		"experiment": o.Tag,
	}).Debug("starting")

	sum, err := pipeline.Run(ctx, cfg, streams, out)
	prog.Finish()

	log.WithFields(logrus.Fields{
		"reads":      sum.Written,
		"input":      sum.Reads,
		"duplicates": sum.Duplicates,
		"chunks":     sum.Chunks,
		"total_time": sum.Elapsed.Seconds(),
	}).Debug("Done")

	if writers.IsBrokenPipe(err) {
		return errs.ExitOK
	}
	if err != nil {
		return fail(log, err)
	}

	if o.Summary != "" {
		rep := api.RunSummaryV1{
			RunID:      cmdutil.RunID(log),
			Mode:       variant.String(),
			Experiment: o.Tag,
			Inputs:     o.Inputs,
			Reads:      sum.Reads,
			Written:    sum.Written,
			Duplicates: sum.Duplicates,
			Chunks:     sum.Chunks,
			Files:      sum.Files,
			ElapsedSec: sum.Elapsed.Seconds(),
		}
		if err := jsonutil.WriteFile(o.Summary, rep); err != nil {
			return fail(log, err)
		}
	}
	return errs.ExitOK
}

// newFilter builds the dedup set only when a barcode stream supplies keys.
func newFilter(o Options, s pipeline.Streams) dedup.Filter {
	return dedup.New(o.Dedup && s.Barcode != nil)
}

func fail(log *logrus.Entry, err error) int {
	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted")
		return errs.ExitInterrupt
	}
	log.WithField("code", errs.Classify(err)).Error(err)
	return errs.ExitCode(err)
}

func outputName(path string) string {
	if path == "" {
		return "<stdout>"
	}
	return path
}
