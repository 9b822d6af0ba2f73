package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
	"github.com/secmon-lab/filterschema/pkg/domain/model/toolbar"
	"github.com/secmon-lab/filterschema/pkg/usecase"
)

func listID(r *http.Request) model.ListID {
	return model.ListID(chi.URLParam(r, "list"))
}

func stateHandler(uc *usecase.ViewStateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := uc.Get(r.Context(), sessionFromContext(r.Context()), listID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, state)
	}
}

func pinHandler(uc *usecase.ViewStateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := uc.TogglePin(r.Context(), sessionFromContext(r.Context()), listID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, state)
	}
}

func columnHandler(uc *usecase.ViewStateUseCase) http.HandlerFunc {
	type request struct {
		Visible bool `json:"visible"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		state, err := uc.SetColumnVisibility(r.Context(), sessionFromContext(r.Context()),
			listID(r), chi.URLParam(r, "column"), req.Visible)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, state)
	}
}

func toolbarHandler(uc *usecase.ViewStateUseCase) http.HandlerFunc {
	type response struct {
		Items []toolbar.Item `json:"items"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req usecase.ToolbarRequest
		if err := decodeBody(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		items, err := uc.Toolbar(r.Context(), sessionFromContext(r.Context()), listID(r), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if items == nil {
			items = []toolbar.Item{}
		}
		writeJSON(w, r, http.StatusOK, response{Items: items})
	}
}
