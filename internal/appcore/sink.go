// internal/appcore/sink.go
package appcore

import (
	"io"

	"github.com/sirupsen/logrus"

	"cfastq/internal/writers"
)

// newSink builds the output writer. Sink lifecycle is reported at debug
// level as "Generating:" and "Generated:" lines.
func newSink(o Options, stdout io.Writer, log logrus.FieldLogger) (*writers.Chunked, error) {
	return writers.NewChunked(writers.ChunkedOptions{
		Prefix:    o.Output,
		Stdout:    stdout,
		ChunkSize: o.ChunkSize,
		Compress:  o.Compress,
		Level:     o.CompressLevel,
		OnOpen:    func(name string) { log.Debugf("Generating: %s", name) },
		OnClose:   func(name string) { log.Debugf("Generated: %s", name) },
	})
}
