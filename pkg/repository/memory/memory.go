package memory

import (
	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
)

// ErrNotFound is returned when a stored entity does not exist
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	viewState *viewStateRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		viewState: newViewStateRepository(),
	}
}

func (m *Memory) ViewState() interfaces.ViewStateRepository {
	return m.viewState
}

func (m *Memory) Close() error {
	return nil
}
