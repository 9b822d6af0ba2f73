package filter

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
)

// CatalogEntry pairs a catalog key with its base field
type CatalogEntry struct {
	Key   types.CatalogKey
	Field Field
}

// Entry is a shorthand for building a CatalogEntry
func Entry(key types.CatalogKey, field Field) CatalogEntry {
	return CatalogEntry{Key: key, Field: field}
}

// Catalog is the shared table of reusable field descriptors.
// It is filled once by NewCatalog and read-only afterwards.
type Catalog struct {
	entries map[types.CatalogKey]Field
	order   []types.CatalogKey
}

// NewCatalog builds a catalog from entries, keeping their order
func NewCatalog(entries ...CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[types.CatalogKey]Field, len(entries)),
		order:   make([]types.CatalogKey, 0, len(entries)),
	}

	for i, entry := range entries {
		if _, exists := c.entries[entry.Key]; exists {
			return nil, goerr.Wrap(ErrDuplicateCatalogKey, "catalog key registered twice",
				goerr.V(CatalogKeyKey, entry.Key), goerr.V(FieldIndexKey, i))
		}
		if err := entry.Field.validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid catalog entry", goerr.V(CatalogKeyKey, entry.Key))
		}

		c.entries[entry.Key] = entry.Field.Clone()
		c.order = append(c.order, entry.Key)
	}

	return c, nil
}

// Lookup returns a copy of the field registered under key
func (c *Catalog) Lookup(key types.CatalogKey) (Field, error) {
	field, ok := c.entries[key]
	if !ok {
		return Field{}, goerr.Wrap(ErrUnknownFieldKey, "field is not in the catalog",
			goerr.V(CatalogKeyKey, key))
	}
	return field.Clone(), nil
}

// Keys returns catalog keys in registration order
func (c *Catalog) Keys() []types.CatalogKey {
	keys := make([]types.CatalogKey, len(c.order))
	copy(keys, c.order)
	return keys
}

// Len returns the number of catalog entries
func (c *Catalog) Len() int {
	return len(c.order)
}
