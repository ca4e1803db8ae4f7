package logger

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options configures the process-wide logrus logger
type Options struct {
	// Verbose switches the level to debug
	Verbose bool
	// DisableColor turns off ANSI level colors
	DisableColor bool
	// HideLogTime drops the timestamp prefix
	HideLogTime bool
	// FileDir, when set, adds a daily rotated stepviz.log in that directory
	FileDir string
	// Quiet discards console output. The TUI sets it because the terminal
	// belongs to the program; file output is unaffected.
	Quiet bool
}

// Init applies opts to the standard logrus logger
func Init(opts Options) error {
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetReportCaller(opts.Verbose)
	logrus.SetFormatter(&Formatter{
		DisableColor: opts.DisableColor,
		HideLogTime:  opts.HideLogTime,
	})

	if opts.Quiet {
		logrus.SetOutput(io.Discard)
	}

	if opts.FileDir != "" {
		fh, err := NewFileHook(opts.FileDir)
		if err != nil {
			return errors.Wrap(err, "failed to init log file hook")
		}
		logrus.AddHook(fh)
	}

	return nil
}
