// internal/appcore/streams.go
package appcore

import (
	"github.com/sirupsen/logrus"

	"cfastq/internal/errs"
	"cfastq/internal/fastq"
	"cfastq/internal/pipeline"
)

// Roles of the positional inputs, by count.
var roles = map[int][]string{
	1: {"primary"},
	2: {"barcode", "primary"},
	3: {"index", "barcode", "primary"},
}

// openStreams opens inputs in positional order. On failure every reader
// already opened is closed before returning.
func openStreams(inputs []string, primaryOpts []fastq.Option, log logrus.FieldLogger) (pipeline.Streams, error) {
	var (
		s      pipeline.Streams
		opened []*fastq.Reader
	)
	names, ok := roles[len(inputs)]
	if !ok {
		return pipeline.Streams{}, errs.Configf("expected 1 to 3 input files, got %d", len(inputs))
	}
	for i, path := range inputs {
		var opts []fastq.Option
		if names[i] == "primary" {
			opts = primaryOpts
		}
		r, err := fastq.Open(path, opts...)
		if err != nil {
			for _, o := range opened {
				_ = o.Close()
			}
			return pipeline.Streams{}, err
		}
		opened = append(opened, r)
		log.WithFields(logrus.Fields{"role": names[i], "path": path}).Debug("opened input")
		switch names[i] {
		case "index":
			s.Index = r
		case "barcode":
			s.Barcode = r
		default:
			s.Primary = r
		}
	}
	return s, nil
}
