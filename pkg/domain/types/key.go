package types

// CatalogKey identifies a reusable field descriptor in the field catalog.
// It is not necessarily equal to the field's request parameter name.
type CatalogKey string

// String returns the string representation of CatalogKey
func (k CatalogKey) String() string {
	return string(k)
}

// ViewKey identifies a listing screen that owns a filter schema
type ViewKey string

// String returns the string representation of ViewKey
func (k ViewKey) String() string {
	return string(k)
}
