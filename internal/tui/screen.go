package tui

import (
	"sync"

	"fishinv/internal/inventory"
)

// screen is the inventory view-model. The controller renders into it from
// command goroutines; the tea model reads snapshots in View. onChange asks the
// program for a redraw.
type screen struct {
	mu         sync.Mutex
	rows       []inventory.RowView
	status     string
	dirtyLabel string
	clearSeq   int

	onChange func()
}

type screenState struct {
	rows       []inventory.RowView
	status     string
	dirtyLabel string
	clearSeq   int
}

func newScreen() *screen { return &screen{} }

func (s *screen) RenderRows(rows []inventory.RowView) {
	s.mu.Lock()
	s.rows = append([]inventory.RowView(nil), rows...)
	s.mu.Unlock()
	s.changed()
}

func (s *screen) RenderPreview(id int64, amount string) {
	s.mu.Lock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Amount = amount
		}
	}
	s.mu.Unlock()
	s.changed()
}

func (s *screen) RenderStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.changed()
}

func (s *screen) RenderDirtyCount(label string) {
	s.mu.Lock()
	s.dirtyLabel = label
	s.mu.Unlock()
	s.changed()
}

func (s *screen) ClearAddForm() {
	s.mu.Lock()
	s.clearSeq++
	s.mu.Unlock()
	s.changed()
}

// setCell mirrors what the user typed into a cell, like an input element
// holding its own value.
func (s *screen) setCell(id int64, f inventory.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		switch f {
		case inventory.FieldFish:
			s.rows[i].Fish = value
		case inventory.FieldSize:
			s.rows[i].Size = value
		case inventory.FieldQty:
			s.rows[i].Qty = value
		case inventory.FieldUnitPrice:
			s.rows[i].UnitPrice = value
		}
		s.rows[i].Dirty = true
	}
}

func (s *screen) snapshot() screenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return screenState{
		rows:       append([]inventory.RowView(nil), s.rows...),
		status:     s.status,
		dirtyLabel: s.dirtyLabel,
		clearSeq:   s.clearSeq,
	}
}

func (s *screen) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
