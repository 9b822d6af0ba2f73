package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/utils/async"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const defaultLoadConcurrency = 8

// FieldOptions is the option list of one field of a view. Error is set
// instead of Options when loading that field failed; other fields are not
// affected.
type FieldOptions struct {
	Field   string          `json:"field"`
	Options []filter.Option `json:"options"`
	Error   string          `json:"error,omitempty"`
}

// FilterUseCase serves view schemas and loads their choice options
type FilterUseCase struct {
	registry    *filter.Registry
	rest        interfaces.RESTClient
	cache       *optionCache
	concurrency int
}

type FilterOption func(*FilterUseCase)

// WithOptionCacheTTL sets how long a resource body is reused. Zero disables caching.
func WithOptionCacheTTL(ttl time.Duration) FilterOption {
	return func(uc *FilterUseCase) {
		uc.cache = newOptionCache(ttl)
	}
}

// WithLoadConcurrency bounds the concurrent resource requests of LoadAllOptions
func WithLoadConcurrency(n int) FilterOption {
	return func(uc *FilterUseCase) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// NewFilterUseCase creates a FilterUseCase. rest may be nil when no view
// needs remote options.
func NewFilterUseCase(registry *filter.Registry, rest interfaces.RESTClient, opts ...FilterOption) *FilterUseCase {
	uc := &FilterUseCase{
		registry:    registry,
		rest:        rest,
		cache:       newOptionCache(defaultOptionCacheTTL),
		concurrency: defaultLoadConcurrency,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Views returns every view schema in registration order
func (uc *FilterUseCase) Views() []*filter.Schema {
	return uc.registry.List()
}

// Schema returns the schema of one view
func (uc *FilterUseCase) Schema(key types.ViewKey) (*filter.Schema, error) {
	return uc.registry.Get(key)
}

// ValidateContext checks rc against every resource of the view
func (uc *FilterUseCase) ValidateContext(key types.ViewKey, rc filter.ResourceContext) error {
	return uc.registry.ValidateContext(key, rc)
}

// BuildFilter turns applied form values into the search filter of the view
func (uc *FilterUseCase) BuildFilter(key types.ViewKey, applied map[string][]string, defaultFilter string) (string, error) {
	schema, err := uc.registry.Get(key)
	if err != nil {
		return "", err
	}
	return schema.Apply(applied, defaultFilter), nil
}

// LoadOptions returns the options of one field. A field with a resource is
// loaded from the REST backend even when it also has static options.
func (uc *FilterUseCase) LoadOptions(ctx context.Context, key types.ViewKey, fieldName string, rc filter.ResourceContext) ([]filter.Option, error) {
	schema, err := uc.registry.Get(key)
	if err != nil {
		return nil, err
	}
	field, err := schema.Field(fieldName)
	if err != nil {
		return nil, err
	}

	return uc.loadField(ctx, field, rc)
}

func (uc *FilterUseCase) loadField(ctx context.Context, field filter.Field, rc filter.ResourceContext) ([]filter.Option, error) {
	if !field.HasResource() {
		options := make([]filter.Option, len(field.Options))
		copy(options, field.Options)
		return options, nil
	}

	path, err := field.Resource.Resolve(rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve resource", goerr.V(FieldKey, field.Name))
	}

	body, err := uc.fetch(ctx, path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load options", goerr.V(FieldKey, field.Name))
	}

	return field.OptionsFrom(body)
}

func (uc *FilterUseCase) fetch(ctx context.Context, path string) ([]byte, error) {
	if body, ok := uc.cache.get(path); ok {
		return body, nil
	}
	if uc.rest == nil {
		return nil, goerr.Wrap(ErrNoRESTClient, "cannot fetch resource", goerr.V(PathKey, path))
	}

	body, err := uc.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	uc.cache.set(path, body)

	logging.From(ctx).Debug("resource fetched", "path", path, "size", len(body))
	return body, nil
}

// LoadAllOptions loads the options of every choice field of the view
// concurrently. The context is validated first, so a missing key fails the
// whole call; a failing request only marks its own field.
func (uc *FilterUseCase) LoadAllOptions(ctx context.Context, key types.ViewKey, rc filter.ResourceContext) ([]FieldOptions, error) {
	schema, err := uc.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateContext(rc); err != nil {
		return nil, err
	}

	var fields []filter.Field
	for _, f := range schema.Fields {
		if f.HasResource() || len(f.Options) > 0 {
			fields = append(fields, f)
		}
	}

	results := make([]FieldOptions, len(fields))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)

	for i, f := range fields {
		eg.Go(func() error {
			results[i].Field = f.Name
			options, err := uc.loadField(ctx, f, rc)
			if err != nil {
				logging.From(ctx).Warn("failed to load field options",
					"view", key, "field", f.Name, "error", err)
				results[i].Options = []filter.Option{}
				results[i].Error = err.Error()
				return nil
			}
			results[i].Options = options
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load options", goerr.V(ViewKey, key))
	}

	return results, nil
}

// WarmOptions prefetches, in the background, every resource that needs no
// context. The returned channel is closed when prefetching is done.
func (uc *FilterUseCase) WarmOptions(ctx context.Context) <-chan struct{} {
	return async.Dispatch(ctx, func(ctx context.Context) error {
		if uc.rest == nil {
			return nil
		}

		seen := map[string]bool{}
		var paths []string
		for _, schema := range uc.registry.List() {
			for _, f := range schema.Fields {
				if !f.HasResource() || len(f.Resource.RequiredKeys()) > 0 {
					continue
				}
				path, err := f.Resource.Resolve(nil)
				if err != nil || seen[path] {
					continue
				}
				seen[path] = true
				paths = append(paths, path)
			}
		}

		var (
			mu     sync.Mutex
			failed int
		)
		eg := errgroup.Group{}
		eg.SetLimit(uc.concurrency)
		for _, path := range paths {
			eg.Go(func() error {
				if _, err := uc.fetch(ctx, path); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					logging.From(ctx).Warn("failed to prefetch resource", "path", path, "error", err)
				}
				return nil
			})
		}
		_ = eg.Wait()

		logging.From(ctx).Info("option cache warmed", "resources", len(paths), "failed", failed)
		return nil
	})
}
