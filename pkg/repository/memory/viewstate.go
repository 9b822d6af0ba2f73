package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
)

type viewStateKey struct {
	sessionID model.SessionID
	listID    model.ListID
}

type viewStateRepository struct {
	mu     sync.RWMutex
	states map[viewStateKey]*model.ViewState
}

func newViewStateRepository() *viewStateRepository {
	return &viewStateRepository{
		states: make(map[viewStateKey]*model.ViewState),
	}
}

func (r *viewStateRepository) Get(ctx context.Context, sessionID model.SessionID, listID model.ListID) (*model.ViewState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.states[viewStateKey{sessionID: sessionID, listID: listID}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "view state not found",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	return state.Copy(), nil
}

func (r *viewStateRepository) Put(ctx context.Context, state *model.ViewState) (*model.ViewState, error) {
	if state.SessionID == "" || state.ListID == "" {
		return nil, goerr.New("session ID and list ID are required",
			goerr.V("sessionID", state.SessionID), goerr.V("listID", state.ListID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := state.Copy()
	stored.UpdatedAt = time.Now().UTC()
	r.states[viewStateKey{sessionID: state.SessionID, listID: state.ListID}] = stored

	return stored.Copy(), nil
}

func (r *viewStateRepository) Update(ctx context.Context, sessionID model.SessionID, listID model.ListID, fn func(*model.ViewState)) (*model.ViewState, error) {
	if sessionID == "" || listID == "" {
		return nil, goerr.New("session ID and list ID are required",
			goerr.V("sessionID", sessionID), goerr.V("listID", listID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := viewStateKey{sessionID: sessionID, listID: listID}
	state := model.NewViewState(sessionID, listID)
	if current, exists := r.states[key]; exists {
		state = current.Copy()
	}

	fn(state)
	state.SessionID, state.ListID = sessionID, listID
	state.UpdatedAt = time.Now().UTC()
	r.states[key] = state

	return state.Copy(), nil
}

func (r *viewStateRepository) ListBySession(ctx context.Context, sessionID model.SessionID) ([]*model.ViewState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]*model.ViewState, 0)
	for key, state := range r.states {
		if key.sessionID == sessionID {
			states = append(states, state.Copy())
		}
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].UpdatedAt.Equal(states[j].UpdatedAt) {
			return states[i].ListID < states[j].ListID
		}
		return states[i].UpdatedAt.After(states[j].UpdatedAt)
	})

	return states, nil
}
