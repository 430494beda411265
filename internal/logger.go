package internal

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// NewLogger creates the command line logger. Output goes to stderr, with
// colours only when stderr is a terminal.
func NewLogger(verbose bool) (logger *logrus.Logger) {
	logger = logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
	}

	logger.Level = logrus.WarnLevel
	if verbose {
		logger.Level = logrus.InfoLevel
	}

	return
}
