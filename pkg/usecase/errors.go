package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrNoRESTClient  = errors.New("REST client is not configured")
	ErrEmptyListID   = errors.New("list ID is required")
	ErrEmptySession  = errors.New("session ID is required")
	ErrEmptyColumnID = errors.New("column name is required")
)

// Context keys for error values
const (
	ViewKey      = "view"
	FieldKey     = "field"
	PathKey      = "path"
	SessionIDKey = "session_id"
	ListIDKey    = "list_id"
)
