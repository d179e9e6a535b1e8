package roamstay

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// NewLogger builds the structured logger for one principal kind. Entries
// go to stderr and, when dir is non-empty, to <dir>/<kind>-combined.log.
func NewLogger(dir string, kind string) (zerolog.Logger, error) {
	var out io.Writer = os.Stderr

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Logger{}, err
		}
		f, err := os.OpenFile(filepath.Join(dir, kind+"-combined.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, err
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	return zerolog.New(out).With().Timestamp().Str("scope", kind).Logger(), nil
}
