package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/i18n"
	"github.com/secmon-lab/filterschema/pkg/repository/memory"
	"github.com/secmon-lab/filterschema/pkg/schema"
	"github.com/secmon-lab/filterschema/pkg/usecase"
)

// mockREST serves bodies by path prefix and counts requests
type mockREST struct {
	mu     sync.Mutex
	bodies map[string]string
	fail   map[string]bool
	calls  map[string]int
}

func newMockREST() *mockREST {
	return &mockREST{
		bodies: map[string]string{},
		fail:   map[string]bool{},
		calls:  map[string]int{},
	}
}

func (m *mockREST) Get(ctx context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[path]++
	for prefix := range m.fail {
		if strings.HasPrefix(path, prefix) {
			return nil, goerr.New("backend unavailable", goerr.V("path", path))
		}
	}
	for prefix, body := range m.bodies {
		if strings.HasPrefix(path, prefix) {
			return []byte(body), nil
		}
	}
	return []byte(`{"items":[]}`), nil
}

func (m *mockREST) count(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

func (m *mockREST) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func newUseCases(t *testing.T, rest *mockREST, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	tr, err := i18n.New()
	gt.NoError(t, err).Required()
	reg, err := schema.NewRegistry(tr)
	gt.NoError(t, err).Required()

	if rest != nil {
		opts = append(opts, usecase.WithREST(rest))
	}
	return usecase.New(memory.New(), reg, tr, opts...)
}

var project42 = filter.ResourceContext{filter.ContextProjectID: "42"}
