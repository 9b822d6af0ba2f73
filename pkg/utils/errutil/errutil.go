package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
)

func attrs(err error) []any {
	args := []any{"error", err.Error()}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		args = append(args, "values", ge.Values(), "stack", ge.Stacks())
	}
	return args
}

// report sends err to Sentry when a client is configured
func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if values := goerr.Values(err); len(values) > 0 {
			scope.SetContext("goerr", sentry.Context(values))
		}
		hub.CaptureException(err)
	})
}

// Handle logs the error with a message and reports it.
// The error is returned as-is for the caller to propagate.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logging.From(ctx).Error(msg, attrs(err)...)
	report(ctx, err)
	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHTTP logs the error and writes a JSON error response. Only 5xx
// errors are reported, client errors are logged at warn level.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	args := append([]any{"status", statusCode}, attrs(err)...)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("HTTP error", args...)
		report(ctx, err)
	} else {
		logger.Warn("HTTP error", args...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); err != nil {
		logger.Error("failed to write error response", slog.Any("error", err))
	}
}
