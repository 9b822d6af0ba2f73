package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/usecase"
)

// resourceContext collects the resource context from query parameters;
// the first value of each key is used
func resourceContext(r *http.Request) filter.ResourceContext {
	rc := filter.ResourceContext{}
	for key, values := range r.URL.Query() {
		if key == "field" || len(values) == 0 {
			continue
		}
		rc[key] = values[0]
	}
	return rc
}

func viewKey(r *http.Request) types.ViewKey {
	return types.ViewKey(chi.URLParam(r, "view"))
}

func viewsHandler(uc *usecase.FilterUseCase) http.HandlerFunc {
	type viewSummary struct {
		Key             types.ViewKey `json:"key"`
		Name            string        `json:"name,omitempty"`
		Fields          int           `json:"fields"`
		RequiredContext []string      `json:"requiredContext,omitempty"`
	}
	type response struct {
		Views []viewSummary `json:"views"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		schemas := uc.Views()
		resp := response{Views: make([]viewSummary, len(schemas))}
		for i, s := range schemas {
			resp.Views[i] = viewSummary{
				Key:             s.Key,
				Name:            s.Name,
				Fields:          len(s.Fields),
				RequiredContext: s.RequiredContextKeys(),
			}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func viewHandler(uc *usecase.FilterUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, err := uc.Schema(viewKey(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, schema.Describe(resourceContext(r)))
	}
}

func optionsHandler(uc *usecase.FilterUseCase) http.HandlerFunc {
	type fieldResponse struct {
		Field   string          `json:"field"`
		Options []filter.Option `json:"options"`
	}
	type allResponse struct {
		Fields []usecase.FieldOptions `json:"fields"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		key := viewKey(r)
		rc := resourceContext(r)

		if field := r.URL.Query().Get("field"); field != "" {
			options, err := uc.LoadOptions(r.Context(), key, field, rc)
			if err != nil {
				handleError(w, r, err)
				return
			}
			writeJSON(w, r, http.StatusOK, fieldResponse{Field: field, Options: options})
			return
		}

		results, err := uc.LoadAllOptions(r.Context(), key, rc)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, allResponse{Fields: results})
	}
}

func filterHandler(uc *usecase.FilterUseCase) http.HandlerFunc {
	type request struct {
		Applied map[string][]string `json:"applied"`
		Default string              `json:"default"`
	}
	type response struct {
		Filter string `json:"filter"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		built, err := uc.BuildFilter(viewKey(r), req.Applied, req.Default)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Filter: built})
	}
}
