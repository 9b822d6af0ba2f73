package logging

import (
	"io"
	"log/slog"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// Format is the output format of the logger
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ErrInvalidFormat is returned for a log format other than console or json
var ErrInvalidFormat = goerr.New("invalid log format")

// ParseFormat converts a flag value to Format
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatConsole, FormatJSON:
		return Format(s), nil
	default:
		return "", goerr.Wrap(ErrInvalidFormat, "unsupported log format", goerr.V("format", s))
	}
}

// ErrInvalidLevel is returned for an unknown level name
var ErrInvalidLevel = goerr.New("invalid log level")

// ParseLevel converts debug, info, warn or error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, goerr.Wrap(ErrInvalidLevel, "unsupported log level", goerr.V("level", s))
	}
	return level, nil
}

// redactor masks credentials before they reach any handler
func redactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("DSN"),
		masq.WithFieldPrefix("Secret"),
	)
}

// New builds a logger writing to w
func New(w io.Writer, format Format, level slog.Level, color bool) *slog.Logger {
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: redactor(),
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(color),
			clog.WithReplaceAttr(redactor()),
			clog.WithSource(true),
		)
	}
	return slog.New(handler)
}
