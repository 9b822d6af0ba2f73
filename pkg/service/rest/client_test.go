package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/i18n"
	"github.com/secmon-lab/filterschema/pkg/schema"
	"github.com/secmon-lab/filterschema/pkg/service/rest"
)

func TestClient_Get(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("filter")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Solutions"}]}`))
	}))
	defer srv.Close()

	c, err := rest.New(srv.URL+"/o/c/", rest.WithToken("tkn"))
	gt.NoError(t, err).Required()

	body, err := c.Get(context.Background(), "/teams?fields=id,name&filter=projectId%20eq%20'42'")
	gt.NoError(t, err).Required()
	gt.S(t, string(body)).Contains("Solutions")
	gt.Value(t, gotPath).Equal("/o/c/teams")
	gt.Value(t, gotQuery).Equal("projectId eq '42'")
	gt.Value(t, gotAuth).Equal("Bearer tkn")
}

func TestClient_BasicAuth(t *testing.T) {
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := rest.New(srv.URL, rest.WithBasicAuth("test@example.com", "test"))
	gt.NoError(t, err).Required()
	_, err = c.Get(context.Background(), "runs?fields=id,name")
	gt.NoError(t, err).Required()
	gt.Value(t, user).Equal("test@example.com")
	gt.Value(t, pass).Equal("test")
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := rest.New(srv.URL)
	gt.NoError(t, err).Required()
	_, err = c.Get(context.Background(), "/projects")
	gt.Error(t, err).Is(rest.ErrUnexpectedStatus)
}

func TestNew_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "ftp://example.com", "://bad"} {
		_, err := rest.New(u)
		gt.Error(t, err)
	}
}

func TestClient_ContextValueStaysInFilter(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	tr, err := i18n.New()
	gt.NoError(t, err).Required()
	catalog, err := schema.NewCatalog(tr)
	gt.NoError(t, err).Required()
	component, err := catalog.Lookup(schema.Component)
	gt.NoError(t, err).Required()

	c, err := rest.New(srv.URL, rest.WithToken("tkn"))
	gt.NoError(t, err).Required()

	testCases := []struct {
		name       string
		projectID  string
		wantFilter string
	}{
		{name: "plain", projectID: "42", wantFilter: "projectId eq '42'"},
		{name: "ampersand", projectID: "1&pageSize=99999", wantFilter: "projectId eq '1&pageSize=99999'"},
		{name: "plus", projectID: "a+b", wantFilter: "projectId eq 'a+b'"},
		{name: "percent", projectID: "50%", wantFilter: "projectId eq '50%'"},
		{name: "hash", projectID: "1#x", wantFilter: "projectId eq '1#x'"},
		{name: "quote", projectID: "it's", wantFilter: "projectId eq 'it''s'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := component.Resource.Resolve(filter.ResourceContext{filter.ContextProjectID: tc.projectID})
			gt.NoError(t, err).Required()

			_, err = c.Get(context.Background(), path)
			gt.NoError(t, err).Required()
			gt.Value(t, got["filter"]).Equal([]string{tc.wantFilter})
			gt.Value(t, got["pageSize"]).Equal([]string{"200"})
			gt.Value(t, got.Get("fields")).Equal("id,name")
		})
	}
}

func TestClient_LiteralPathKeepsEscapes(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := rest.New(srv.URL)
	gt.NoError(t, err).Required()

	_, err = c.Get(context.Background(), "/routines?fields=id,name&sort=name:asc&filter=name eq 'a%26b'")
	gt.NoError(t, err).Required()
	gt.Value(t, rawQuery).Equal("fields=id,name&sort=name:asc&filter=name%20eq%20'a%26b'")
}
