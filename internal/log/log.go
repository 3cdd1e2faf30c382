// Package log configures structured logging for dashkit using log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the default slog logger on stderr.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// format selects slog.TextHandler ("text" or empty) or slog.JSONHandler
// ("json").
func Setup(verbose, quiet bool, format string) error {
	h, err := NewHandler(os.Stderr, Level(verbose, quiet), format)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// Level maps the verbosity flags to a level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns a handler writing to w in the given format.
func NewHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", FormatText:
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (must be text or json)", format)
	}
}
