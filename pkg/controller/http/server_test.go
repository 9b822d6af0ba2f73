package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/filterschema/pkg/controller/http"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/i18n"
	"github.com/secmon-lab/filterschema/pkg/repository/memory"
	"github.com/secmon-lab/filterschema/pkg/schema"
	"github.com/secmon-lab/filterschema/pkg/service/rest"
	"github.com/secmon-lab/filterschema/pkg/usecase"
)

type stubREST struct {
	mu    sync.Mutex
	paths []string
	body  string
	err   error
}

func (s *stubREST) Get(ctx context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	if s.err != nil {
		return nil, s.err
	}
	if s.body != "" {
		return []byte(s.body), nil
	}
	return []byte(`{"items":[{"id":3,"name":"Portal"}]}`), nil
}

func newServer(t *testing.T) (*server.Server, *stubREST) {
	t.Helper()
	return newServerWith(t, &stubREST{})
}

func newServerWith(t *testing.T, stub *stubREST) (*server.Server, *stubREST) {
	t.Helper()
	tr, err := i18n.New()
	gt.NoError(t, err).Required()
	reg, err := schema.NewRegistry(tr)
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(), reg, tr, usecase.WithREST(stub))
	return server.New(uc), stub
}

func do(t *testing.T, h http.Handler, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

func TestViews(t *testing.T) {
	srv, _ := newServer(t)

	rec := do(t, srv, http.MethodGet, "/api/views", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	resp := decode[struct {
		Views []struct {
			Key    string `json:"key"`
			Fields int    `json:"fields"`
		} `json:"views"`
	}](t, rec)
	gt.Array(t, resp.Views).Length(16).Required()
	gt.Value(t, resp.Views[0].Key).Equal("buildCaseTypes")
	gt.Value(t, resp.Views[0].Fields).Equal(2)
}

func TestView(t *testing.T) {
	srv, _ := newServer(t)

	t.Run("resources resolved with context", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/views/buildComponents?projectId=42", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		d := decode[filter.SchemaDescriptor](t, rec)
		gt.Array(t, d.Fields).Length(4).Required()
		gt.S(t, d.Fields[2].Resource).Contains("projectId eq '42'")
	})

	t.Run("resources left unresolved without context", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/views/buildComponents", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		d := decode[filter.SchemaDescriptor](t, rec)
		gt.Value(t, d.Fields[2].Resource).Equal("")
		gt.Value(t, d.RequiredContext).Equal([]string{"projectId"})
	})

	t.Run("unknown view", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/views/nope", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestOptions(t *testing.T) {
	srv, stub := newServer(t)

	rec := do(t, srv, http.MethodGet, "/api/views/buildComponents/options?field=teamId&projectId=42", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Field   string          `json:"field"`
		Options []filter.Option `json:"options"`
	}](t, rec)
	gt.Value(t, resp.Options).Equal([]filter.Option{{Label: "Portal", Value: "3"}})
	gt.Array(t, stub.paths).Length(1).Required()
	gt.B(t, strings.HasPrefix(stub.paths[0], "/teams?")).True()

	rec = do(t, srv, http.MethodGet, "/api/views/buildComponents/options?field=teamId", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = do(t, srv, http.MethodGet, "/api/views/buildComponents/options?field=nope&projectId=42", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)

	rec = do(t, srv, http.MethodGet, "/api/views/buildComponents/options?projectId=42", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	all := decode[struct {
		Fields []usecase.FieldOptions `json:"fields"`
	}](t, rec)
	gt.Array(t, all.Fields).Length(4)
}

func TestFilter(t *testing.T) {
	srv, _ := newServer(t)

	rec := do(t, srv, http.MethodPost, "/api/views/teams/filter", map[string]any{
		"applied": map[string][]string{"name": {"Solutions"}},
		"default": "projectId eq '42'",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Filter string `json:"filter"`
	}](t, rec)
	gt.Value(t, resp.Filter).Equal("(projectId eq '42') and contains(name, 'Solutions')")

	rec = do(t, srv, http.MethodPost, "/api/views/teams/filter", map[string]any{"unknown": 1})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestLists_Session(t *testing.T) {
	srv, _ := newServer(t)

	rec := do(t, srv, http.MethodPost, "/api/lists/cases/pin", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	cookies := rec.Result().Cookies()
	gt.Array(t, cookies).Length(1).Required()
	gt.B(t, cookies[0].HttpOnly).True()

	state := decode[model.ViewState](t, rec)
	gt.B(t, state.Pin).True()
	gt.Value(t, state.SessionID.String()).Equal(cookies[0].Value)

	rec = do(t, srv, http.MethodGet, "/api/lists/cases/state", nil, cookies[0])
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Array(t, rec.Result().Cookies()).Length(0)
	gt.B(t, decode[model.ViewState](t, rec).Pin).True()

	rec = do(t, srv, http.MethodGet, "/api/lists/cases/state", nil)
	gt.B(t, decode[model.ViewState](t, rec).Pin).False()
}

func TestLists_Columns(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodGet, "/api/lists/cases/state", nil)
	cookie := rec.Result().Cookies()[0]

	rec = do(t, srv, http.MethodPut, "/api/lists/cases/columns/priority", map[string]bool{"visible": false}, cookie)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, decode[model.ViewState](t, rec).HiddenColumns).Equal([]string{"priority"})

	rec = do(t, srv, http.MethodPost, "/api/lists/cases/toolbar", map[string]any{
		"view":    "cases",
		"columns": []map[string]any{{"label": "Priority", "name": "priority"}, {"label": "Name", "name": "name"}},
	}, cookie)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	resp := decode[struct {
		Items []struct {
			Kind    string `json:"kind"`
			Columns []struct {
				Name    string `json:"name"`
				Checked bool   `json:"checked"`
			} `json:"columns"`
		} `json:"items"`
	}](t, rec)
	gt.Array(t, resp.Items).Length(3).Required()
	gt.Value(t, resp.Items[0].Kind).Equal("pin")
	gt.Value(t, resp.Items[2].Kind).Equal("columns")
	gt.B(t, resp.Items[2].Columns[0].Checked).False()
	gt.B(t, resp.Items[2].Columns[1].Checked).True()
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestOptions_BackendFailure(t *testing.T) {
	testCases := []struct {
		name string
		stub *stubREST
		want int
	}{
		{
			name: "non 2xx from backend",
			stub: &stubREST{err: goerr.Wrap(rest.ErrUnexpectedStatus, "resource request failed", goerr.V("status", 503))},
			want: http.StatusBadGateway,
		},
		{
			name: "non JSON body from backend",
			stub: &stubREST{body: "<html>"},
			want: http.StatusBadGateway,
		},
		{
			name: "transport failure",
			stub: &stubREST{err: goerr.New("connection refused")},
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServerWith(t, tc.stub)
			rec := do(t, srv, http.MethodGet, "/api/views/buildComponents/options?field=teamId&projectId=42", nil)
			gt.Value(t, rec.Code).Equal(tc.want)
		})
	}
}
