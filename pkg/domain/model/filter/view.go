package filter

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// FieldSource produces one field of a view when the registry is assembled
type FieldSource interface {
	resolve(c *Catalog) (Field, error)
}

type baseSource struct {
	key types.CatalogKey
}

func (s baseSource) resolve(c *Catalog) (Field, error) {
	return c.Lookup(s.key)
}

type overrideSource struct {
	key   types.CatalogKey
	patch Patch
}

func (s overrideSource) resolve(c *Catalog) (Field, error) {
	base, err := c.Lookup(s.key)
	if err != nil {
		return Field{}, err
	}
	return WithOverrides(base, s.patch), nil
}

type inlineSource struct {
	field Field
}

func (s inlineSource) resolve(*Catalog) (Field, error) {
	return s.field.Clone(), nil
}

// Base uses the catalog entry verbatim
func Base(key types.CatalogKey) FieldSource {
	return baseSource{key: key}
}

// Override uses the catalog entry with patch applied on top of it
func Override(key types.CatalogKey, patch Patch) FieldSource {
	return overrideSource{key: key, patch: patch}
}

// Inline uses a field that has no catalog backing
func Inline(field Field) FieldSource {
	return inlineSource{field: field}
}

// ApplyFunc turns applied filter values into a search filter string
type ApplyFunc func(vars FilterVariables) string

// ViewDef is the authored definition of a view before assembly
type ViewDef struct {
	Key     types.ViewKey
	Name    string
	Sources []FieldSource
	OnApply ApplyFunc
}

// View starts a view definition with its fields in render order
func View(key types.ViewKey, sources ...FieldSource) ViewDef {
	return ViewDef{Key: key, Sources: sources}
}

// Named sets the display name of the view
func (d ViewDef) Named(name string) ViewDef {
	d.Name = name
	return d
}

// WithApply replaces the default filter builder of the view
func (d ViewDef) WithApply(fn ApplyFunc) ViewDef {
	d.OnApply = fn
	return d
}

// assemble resolves every source against the catalog and checks the result
func (d ViewDef) assemble(c *Catalog) (*Schema, error) {
	if len(d.Sources) == 0 {
		return nil, goerr.Wrap(ErrEmptyView, "view must have at least one field", goerr.V(ViewKeyKey, d.Key))
	}

	schema := &Schema{
		Key:     d.Key,
		Name:    d.Name,
		Fields:  make([]Field, 0, len(d.Sources)),
		OnApply: d.OnApply,
	}
	names := make(map[string]bool, len(d.Sources))

	for i, src := range d.Sources {
		field, err := src.resolve(c)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve view field",
				goerr.V(ViewKeyKey, d.Key), goerr.V(FieldIndexKey, i))
		}
		if err := field.validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid view field",
				goerr.V(ViewKeyKey, d.Key), goerr.V(FieldIndexKey, i))
		}
		if names[field.Name] {
			return nil, goerr.Wrap(ErrDuplicateFieldName, "field name must be unique within a view",
				goerr.V(ViewKeyKey, d.Key), goerr.V(FieldNameKey, field.Name), goerr.V(FieldIndexKey, i))
		}
		names[field.Name] = true
		schema.Fields = append(schema.Fields, field)
	}

	return schema, nil
}
