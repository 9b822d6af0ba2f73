package filter

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for filter schema construction and resolution
var (
	ErrUnknownFieldKey     = goerr.New("unknown field catalog key")
	ErrDuplicateCatalogKey = goerr.New("duplicate field catalog key")
	ErrMissingContextKey   = goerr.New("resource context key is missing")
	ErrMalformedResponse   = goerr.New("malformed options response")
	ErrViewNotFound        = goerr.New("view not found")
	ErrDuplicateView       = goerr.New("duplicate view key")
	ErrEmptyView           = goerr.New("view has no fields")
	ErrDuplicateFieldName  = goerr.New("duplicate field name in view")
	ErrFieldNotFound       = goerr.New("field not found in view")
	ErrInvalidFieldType    = goerr.New("invalid field type")
	ErrInvalidOperator     = goerr.New("invalid operator")
	ErrMissingFieldName    = goerr.New("field name is required")
)

// Context keys for error values
const (
	CatalogKeyKey = "catalog_key"
	ViewKeyKey    = "view_key"
	FieldNameKey  = "field_name"
	FieldIndexKey = "field_index"
	FieldTypeKey  = "field_type"
	OperatorKey   = "operator"
	ContextKeyKey = "context_key"
)
