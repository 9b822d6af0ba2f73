package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
)

// ErrNotFound is returned by repositories when the requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	ViewState() ViewStateRepository
	Close() error
}

// ViewStateRepository defines the interface for per session list state
type ViewStateRepository interface {
	// Get retrieves the state of one list. ErrNotFound when it was never stored.
	Get(ctx context.Context, sessionID model.SessionID, listID model.ListID) (*model.ViewState, error)

	// Put creates or replaces the state of one list
	Put(ctx context.Context, state *model.ViewState) (*model.ViewState, error)

	// Update applies fn to the current state of one list and stores the
	// result atomically. fn receives a new state when none was stored.
	Update(ctx context.Context, sessionID model.SessionID, listID model.ListID, fn func(*model.ViewState)) (*model.ViewState, error)

	// ListBySession retrieves every list state of the session, most recently updated first
	ListBySession(ctx context.Context, sessionID model.SessionID) ([]*model.ViewState, error)
}
