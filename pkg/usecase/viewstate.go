package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
	"github.com/secmon-lab/filterschema/pkg/domain/model"
	"github.com/secmon-lab/filterschema/pkg/domain/model/toolbar"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

// ToolbarRequest describes the list whose toolbar is composed
type ToolbarRequest struct {
	View     types.ViewKey    `json:"view"`
	Columns  []toolbar.Column `json:"columns"`
	Disabled bool             `json:"disabled"`
	Display  *toolbar.Display `json:"display"`
	Buttons  []toolbar.Item   `json:"buttons"`
	Actions  toolbar.Actions  `json:"actions"`
	CanAdd   bool             `json:"canAdd"`
}

// ViewStateUseCase keeps the per session list state read by the toolbar
type ViewStateUseCase struct {
	repo    interfaces.Repository
	filters *FilterUseCase
	tr      i18n.Translator
}

func NewViewStateUseCase(repo interfaces.Repository, filters *FilterUseCase, tr i18n.Translator) *ViewStateUseCase {
	return &ViewStateUseCase{
		repo:    repo,
		filters: filters,
		tr:      tr,
	}
}

func validateKeys(sessionID model.SessionID, listID model.ListID) error {
	if sessionID == "" {
		return goerr.Wrap(ErrEmptySession, "invalid view state key")
	}
	if listID == "" {
		return goerr.Wrap(ErrEmptyListID, "invalid view state key", goerr.V(SessionIDKey, sessionID))
	}
	return nil
}

// Get returns the stored state, or the initial state of a list never touched
func (uc *ViewStateUseCase) Get(ctx context.Context, sessionID model.SessionID, listID model.ListID) (*model.ViewState, error) {
	if err := validateKeys(sessionID, listID); err != nil {
		return nil, err
	}

	state, err := uc.repo.ViewState().Get(ctx, sessionID, listID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return model.NewViewState(sessionID, listID), nil
		}
		return nil, goerr.Wrap(err, "failed to get view state",
			goerr.V(SessionIDKey, sessionID), goerr.V(ListIDKey, listID))
	}
	return state, nil
}

func (uc *ViewStateUseCase) update(ctx context.Context, sessionID model.SessionID, listID model.ListID, fn func(*model.ViewState)) (*model.ViewState, error) {
	if err := validateKeys(sessionID, listID); err != nil {
		return nil, err
	}

	stored, err := uc.repo.ViewState().Update(ctx, sessionID, listID, fn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update view state",
			goerr.V(SessionIDKey, sessionID), goerr.V(ListIDKey, listID))
	}
	return stored, nil
}

// TogglePin flips the pin flag of the list, the SET_PIN action of the toolbar
func (uc *ViewStateUseCase) TogglePin(ctx context.Context, sessionID model.SessionID, listID model.ListID) (*model.ViewState, error) {
	return uc.update(ctx, sessionID, listID, func(s *model.ViewState) {
		s.Pin = !s.Pin
	})
}

// SetColumnVisibility shows or hides one column of the list
func (uc *ViewStateUseCase) SetColumnVisibility(ctx context.Context, sessionID model.SessionID, listID model.ListID, column string, visible bool) (*model.ViewState, error) {
	if column == "" {
		return nil, goerr.Wrap(ErrEmptyColumnID, "invalid column", goerr.V(ListIDKey, listID))
	}
	return uc.update(ctx, sessionID, listID, func(s *model.ViewState) {
		s.SetColumnVisible(column, visible)
	})
}

// Toolbar composes the toolbar of the list from its stored state. Column
// check marks come from the state, not from the request.
func (uc *ViewStateUseCase) Toolbar(ctx context.Context, sessionID model.SessionID, listID model.ListID, req ToolbarRequest) ([]toolbar.Item, error) {
	state, err := uc.Get(ctx, sessionID, listID)
	if err != nil {
		return nil, err
	}

	in := toolbar.Input{
		Pin:      state.Pin,
		Disabled: req.Disabled,
		Display:  req.Display,
		Buttons:  req.Buttons,
		Actions:  req.Actions,
		CanAdd:   req.CanAdd,
	}

	if req.View != "" {
		schema, err := uc.filters.Schema(req.View)
		if err != nil {
			return nil, err
		}
		in.Schema = schema
	}

	for _, c := range req.Columns {
		c.Checked = state.IsColumnVisible(c.Name)
		in.Columns = append(in.Columns, c)
	}

	return toolbar.Build(uc.tr, in), nil
}
