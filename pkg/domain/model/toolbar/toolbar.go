// Package toolbar composes the right hand side of a list management toolbar.
package toolbar

import (
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

// Kind tells the renderer which control an item is
type Kind string

const (
	KindPin     Kind = "pin"
	KindFilter  Kind = "filter"
	KindColumns Kind = "columns"
	KindButton  Kind = "button"
	KindCreate  Kind = "create"
)

// ActionSetPin is dispatched to the view state store by the pin toggle
const ActionSetPin = "SET_PIN"

// Column is one entry of the column visibility menu
type Column struct {
	Label   string `json:"label"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// Item is one toolbar control, in display order
type Item struct {
	Kind     Kind          `json:"kind"`
	Label    string        `json:"label,omitempty"`
	Title    string        `json:"title,omitempty"`
	Symbol   string        `json:"symbol,omitempty"`
	Action   string        `json:"action,omitempty"`
	Disabled bool          `json:"disabled,omitempty"`
	View     types.ViewKey `json:"view,omitempty"`
	Columns  []Column      `json:"columns,omitempty"`
}

// Display switches optional controls. A nil Display shows the column menu.
type Display struct {
	Columns bool `json:"columns"`
}

// Actions are the permissions of the current user on the list
type Actions struct {
	Create bool `json:"create"`
}

// Input is everything the toolbar is composed from
type Input struct {
	Schema   *filter.Schema
	Pin      bool
	Columns  []Column
	Disabled bool
	Display  *Display
	Buttons  []Item
	Actions  Actions

	// CanAdd is set when the caller provides a handler for the create action
	CanAdd bool
}

func (in Input) showColumns() bool {
	return in.Display == nil || in.Display.Columns
}

// Build returns the toolbar items for in
func Build(tr i18n.Translator, in Input) []Item {
	var items []Item

	if in.Schema != nil && len(in.Schema.Fields) > 0 {
		caption := tr.Translate("pin")
		if in.Pin {
			caption = tr.Translate("unpin")
		}
		items = append(items,
			Item{
				Kind:   KindPin,
				Label:  tr.Translate("add-pin"),
				Title:  caption,
				Symbol: caption,
				Action: ActionSetPin,
			},
			Item{
				Kind: KindFilter,
				View: in.Schema.Key,
			},
		)
	}

	if in.showColumns() {
		columns := make([]Column, len(in.Columns))
		copy(columns, in.Columns)
		items = append(items, Item{
			Kind:     KindColumns,
			Title:    tr.Translate("columns"),
			Symbol:   "columns",
			Disabled: in.Disabled,
			Columns:  columns,
		})
	}

	for _, b := range in.Buttons {
		b.Kind = KindButton
		items = append(items, b)
	}

	if in.Actions.Create && in.CanAdd {
		items = append(items, Item{
			Kind:   KindCreate,
			Title:  tr.Translate("new"),
			Symbol: "plus",
		})
	}

	return items
}
