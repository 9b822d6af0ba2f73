package filter

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// Schema is the assembled, ordered filter field list of one view
type Schema struct {
	Key     types.ViewKey
	Name    string
	Fields  []Field
	OnApply ApplyFunc
}

// Field returns the field with the given request name
func (s *Schema) Field(name string) (Field, error) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Clone(), nil
		}
	}
	return Field{}, goerr.Wrap(ErrFieldNotFound, "no such field in view",
		goerr.V(ViewKeyKey, s.Key), goerr.V(FieldNameKey, name))
}

// RequiredContextKeys returns the sorted set of context keys read by the
// resources of this view
func (s *Schema) RequiredContextKeys() []string {
	var keys []string
	for _, f := range s.Fields {
		if f.Resource == nil {
			continue
		}
		for _, k := range f.Resource.RequiredKeys() {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

// ValidateContext fails with ErrMissingContextKey when rc lacks a key that a
// resource of this view needs
func (s *Schema) ValidateContext(rc ResourceContext) error {
	if err := CheckContext(rc, s.RequiredContextKeys()); err != nil {
		return goerr.Wrap(err, "view context is incomplete", goerr.V(ViewKeyKey, s.Key))
	}
	return nil
}

func (s *Schema) clone() *Schema {
	cloned := *s
	cloned.Fields = make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		cloned.Fields[i] = f.Clone()
	}
	return &cloned
}

// Registry maps view keys to assembled schemas.
// It is built once by NewRegistry and read-only afterwards.
type Registry struct {
	catalog *Catalog
	views   map[types.ViewKey]*Schema
	order   []types.ViewKey
}

// NewRegistry assembles every view definition against catalog
func NewRegistry(catalog *Catalog, defs ...ViewDef) (*Registry, error) {
	r := &Registry{
		catalog: catalog,
		views:   make(map[types.ViewKey]*Schema, len(defs)),
		order:   make([]types.ViewKey, 0, len(defs)),
	}

	for _, def := range defs {
		if _, exists := r.views[def.Key]; exists {
			return nil, goerr.Wrap(ErrDuplicateView, "view key registered twice", goerr.V(ViewKeyKey, def.Key))
		}

		schema, err := def.assemble(catalog)
		if err != nil {
			return nil, err
		}

		r.views[def.Key] = schema
		r.order = append(r.order, def.Key)
	}

	return r, nil
}

// Catalog returns the catalog the registry was assembled from
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Get returns a copy of the schema of the view
func (r *Registry) Get(key types.ViewKey) (*Schema, error) {
	schema, ok := r.views[key]
	if !ok {
		return nil, goerr.Wrap(ErrViewNotFound, "view is not registered", goerr.V(ViewKeyKey, key))
	}
	return schema.clone(), nil
}

// Keys returns view keys in registration order
func (r *Registry) Keys() []types.ViewKey {
	keys := make([]types.ViewKey, len(r.order))
	copy(keys, r.order)
	return keys
}

// List returns copies of all schemas in registration order
func (r *Registry) List() []*Schema {
	result := make([]*Schema, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.views[key].clone())
	}
	return result
}

// ValidateContext checks rc against the resources of view key
func (r *Registry) ValidateContext(key types.ViewKey, rc ResourceContext) error {
	schema, ok := r.views[key]
	if !ok {
		return goerr.Wrap(ErrViewNotFound, "view is not registered", goerr.V(ViewKeyKey, key))
	}
	return schema.ValidateContext(rc)
}
