// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a per-run logger writing plain text to dst. Debug
// enables the timing and rotation lines; otherwise only warnings and errors
// are shown. Every entry carries a run id shared with the JSON summary.
func NewLogger(dst io.Writer, debug bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(dst)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	l.SetLevel(logrus.WarnLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("run", uuid.NewString())
}

// RunID returns the run id attached by NewLogger, or "".
func RunID(log *logrus.Entry) string {
	id, _ := log.Data["run"].(string)
	return id
}
