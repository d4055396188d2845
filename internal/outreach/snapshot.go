package outreach

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// SelectionPair is one persisted (id, contact) entry. It marshals as a
// two-element JSON array so a snapshot slot holds [[id, contact], ...].
type SelectionPair struct {
	ID      string
	Contact Contact
}

func (p SelectionPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.ID, p.Contact})
}

func (p *SelectionPair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Contact)
}

type snapshotEntry struct {
	data    []byte
	touched time.Time
}

// SnapshotStore persists selection snapshots per workflow id so an
// in-progress selection survives a page reload. Slots are session-scoped:
// entries expire after the configured TTL and are purged lazily.
type SnapshotStore struct {
	mu    sync.Mutex
	slots map[string]snapshotEntry
	ttl   time.Duration
}

func NewSnapshotStore(ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		slots: make(map[string]snapshotEntry),
		ttl:   ttl,
	}
}

func slotKey(workflowID string) string {
	return fmt.Sprintf("selection-%s", workflowID)
}

// Save serializes the store's entries in insertion order. Called after
// every selection mutation (write-through) so no toggle is ever lost.
func (s *SnapshotStore) Save(workflowID string, selection *SelectionStore) {
	values := selection.Values()
	pairs := make([]SelectionPair, 0, len(values))
	for _, contact := range values {
		pairs = append(pairs, SelectionPair{ID: contact.ID, Contact: contact})
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		log.Printf("Error serializing selection snapshot for %s: %v", workflowID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired()
	s.slots[slotKey(workflowID)] = snapshotEntry{data: data, touched: time.Now()}
}

// Load rebuilds a selection store from the persisted slot. A missing or
// unparseable slot yields an empty store; corruption never propagates.
func (s *SnapshotStore) Load(workflowID string) *SelectionStore {
	s.mu.Lock()
	s.purgeExpired()
	entry, ok := s.slots[slotKey(workflowID)]
	s.mu.Unlock()

	selection := NewSelectionStore()
	if !ok {
		return selection
	}

	var pairs []SelectionPair
	if err := json.Unmarshal(entry.data, &pairs); err != nil {
		log.Printf("Discarding corrupt selection snapshot for %s: %v", workflowID, err)
		return selection
	}

	for _, pair := range pairs {
		contact := pair.Contact
		if contact.ID == "" {
			contact.ID = pair.ID
		}
		selection.Toggle(contact)
	}
	return selection
}

// Discard removes the slot for a finished or abandoned workflow.
func (s *SnapshotStore) Discard(workflowID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slotKey(workflowID))
}

// purgeExpired assumes the lock is held.
func (s *SnapshotStore) purgeExpired() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for key, entry := range s.slots {
		if entry.touched.Before(cutoff) {
			delete(s.slots, key)
		}
	}
}
