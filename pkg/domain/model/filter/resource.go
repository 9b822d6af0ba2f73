package filter

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// ContextProjectID is the ambient context key holding the current project ID
const ContextProjectID = "projectId"

// ResourceContext carries the ambient values a dynamic resource is built from
type ResourceContext map[string]string

// Resource locates the REST collection a field loads its options from.
// It is either a Literal path or a Dynamic path built from a ResourceContext.
type Resource interface {
	// Resolve returns the REST path. Dynamic resources fail with
	// ErrMissingContextKey when a required key is absent or empty.
	Resolve(rc ResourceContext) (string, error)

	// RequiredKeys lists the context keys Resolve reads
	RequiredKeys() []string
}

// LiteralResource is a fixed REST path
type LiteralResource string

// Literal returns a Resource for a fixed path
func Literal(path string) Resource {
	return LiteralResource(path)
}

// Resolve returns the path as is
func (r LiteralResource) Resolve(ResourceContext) (string, error) {
	return string(r), nil
}

// RequiredKeys returns nil
func (r LiteralResource) RequiredKeys() []string {
	return nil
}

// DynamicResource builds its path from context values
type DynamicResource struct {
	keys  []string
	build func(rc ResourceContext) string
}

// Dynamic returns a Resource that calls build once every key in keys is
// present in the context
func Dynamic(build func(rc ResourceContext) string, keys ...string) Resource {
	return &DynamicResource{
		keys:  slices.Clone(keys),
		build: build,
	}
}

// Resolve validates the context and builds the path
func (r *DynamicResource) Resolve(rc ResourceContext) (string, error) {
	if err := CheckContext(rc, r.keys); err != nil {
		return "", err
	}
	return r.build(rc), nil
}

// RequiredKeys returns the context keys the resource reads
func (r *DynamicResource) RequiredKeys() []string {
	return slices.Clone(r.keys)
}

// CheckContext returns ErrMissingContextKey for the first key in keys that is
// absent or empty in rc
func CheckContext(rc ResourceContext, keys []string) error {
	for _, key := range keys {
		if v, ok := rc[key]; !ok || v == "" {
			return goerr.Wrap(ErrMissingContextKey, "resource context is incomplete",
				goerr.V(ContextKeyKey, key))
		}
	}
	return nil
}
