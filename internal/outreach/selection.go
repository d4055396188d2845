package outreach

import (
	"sync"
)

// SelectionStore accumulates the user's cross-page contact selection. It
// keeps the full record (not just the id) so the payload can be built
// without re-fetching, and remembers insertion order so snapshots and
// payloads are deterministic.
type SelectionStore struct {
	mu       sync.Mutex
	selected map[string]Contact
	order    []string
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		selected: make(map[string]Contact),
	}
}

// Toggle adds the contact if absent, removes it if present. Returns true
// when the contact is selected after the call.
func (s *SelectionStore) Toggle(contact Contact) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[contact.ID]; ok {
		s.remove(contact.ID)
		return false
	}
	s.add(contact)
	return true
}

// BulkToggleVisible implements the select-all checkbox over the currently
// visible page: if every visible contact is already selected they are all
// removed, otherwise all visible contacts are added. Selections on other
// pages are untouched. The "all selected" check is recomputed on every
// call. Returns true when contacts were added.
func (s *SelectionStore) BulkToggleVisible(visible []Contact) bool {
	if len(visible) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allSelected := true
	for _, contact := range visible {
		if _, ok := s.selected[contact.ID]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		for _, contact := range visible {
			s.remove(contact.ID)
		}
		return false
	}
	for _, contact := range visible {
		if _, ok := s.selected[contact.ID]; !ok {
			s.add(contact)
		}
	}
	return true
}

func (s *SelectionStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

func (s *SelectionStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Values returns the selected contacts in insertion order.
func (s *SelectionStore) Values() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]Contact, 0, len(s.order))
	for _, id := range s.order {
		values = append(values, s.selected[id])
	}
	return values
}

func (s *SelectionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]Contact)
	s.order = nil
}

// add and remove assume the lock is held.
func (s *SelectionStore) add(contact Contact) {
	s.selected[contact.ID] = contact
	s.order = append(s.order, contact.ID)
}

func (s *SelectionStore) remove(id string) {
	if _, ok := s.selected[id]; !ok {
		return
	}
	delete(s.selected, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
