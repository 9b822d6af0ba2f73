package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/service/rest"
	"github.com/secmon-lab/filterschema/pkg/usecase"
	"github.com/secmon-lab/filterschema/pkg/utils/errutil"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
)

// ErrInvalidRequest is returned for a request body that cannot be decoded
var ErrInvalidRequest = goerr.New("invalid request")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.From(r.Context()).Error("failed to write response", "error", err)
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, filter.ErrViewNotFound),
		errors.Is(err, filter.ErrFieldNotFound):
		return http.StatusNotFound
	case errors.Is(err, filter.ErrMissingContextKey),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, usecase.ErrEmptyListID),
		errors.Is(err, usecase.ErrEmptyColumnID):
		return http.StatusBadRequest
	case errors.Is(err, filter.ErrMalformedResponse),
		errors.Is(err, rest.ErrUnexpectedStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(ErrInvalidRequest, err.Error())
	}
	return nil
}
