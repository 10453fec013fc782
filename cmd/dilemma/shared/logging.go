package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SetupLogger builds a charmbracelet logger writing to w (stderr when nil)
// at the named level.
func SetupLogger(w io.Writer, level string, noColor bool) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	if noColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, nil
}
