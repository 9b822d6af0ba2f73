package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one browser session holding list state
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func (id SessionID) String() string {
	return string(id)
}

// ListID identifies a list view whose toolbar state is kept per session
type ListID string

func (id ListID) String() string {
	return string(id)
}

// ViewState is the shared list state the toolbar reads and changes: the pin
// flag and the columns hidden by the user
type ViewState struct {
	SessionID     SessionID `json:"sessionId"`
	ListID        ListID    `json:"listId"`
	Pin           bool      `json:"pin"`
	HiddenColumns []string  `json:"hiddenColumns"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewViewState returns the state of a list nobody touched yet
func NewViewState(sessionID SessionID, listID ListID) *ViewState {
	return &ViewState{
		SessionID:     sessionID,
		ListID:        listID,
		HiddenColumns: []string{},
	}
}

// Copy returns a deep copy
func (s *ViewState) Copy() *ViewState {
	copied := *s
	copied.HiddenColumns = slices.Clone(s.HiddenColumns)
	if copied.HiddenColumns == nil {
		copied.HiddenColumns = []string{}
	}
	return &copied
}

// IsColumnVisible reports whether column is shown
func (s *ViewState) IsColumnVisible(column string) bool {
	return !slices.Contains(s.HiddenColumns, column)
}

// SetColumnVisible shows or hides column. Hidden columns stay sorted.
func (s *ViewState) SetColumnVisible(column string, visible bool) {
	idx := slices.Index(s.HiddenColumns, column)
	switch {
	case visible && idx >= 0:
		s.HiddenColumns = slices.Delete(s.HiddenColumns, idx, idx+1)
	case !visible && idx < 0:
		s.HiddenColumns = append(s.HiddenColumns, column)
		slices.Sort(s.HiddenColumns)
	}
}
