// Package logging builds the diagnostic logger enabled by --verbose.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing plain text to w. Debug entries are emitted only
// when verbose is set; otherwise only warnings and errors are written.
func New(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
