package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrInvalidFieldType = goerr.New("invalid field type")
	ErrInvalidOperator  = goerr.New("invalid operator")
	ErrMissingName      = goerr.New("name is required")
	ErrMissingKey       = goerr.New("view key is required")
	ErrInvalidResource  = goerr.New("invalid resource template")
	ErrInvalidContext   = goerr.New("invalid context value")
	ErrInvalidBackend   = goerr.New("invalid repository backend")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	ViewKeyKey    = "view_key"
	FieldIndexKey = "field_index"
	FieldTypeKey  = "field_type"
	OperatorKey   = "operator"
	ResourceKey   = "resource"
)
