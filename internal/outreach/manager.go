package outreach

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager tracks live wizard sessions by token and owns the shared
// snapshot store. Idle sessions expire with the configured TTL; their
// selection snapshot survives until its own TTL runs out, so a returning
// user gets their picks back in a fresh session.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Wizard
	snapshots *SnapshotStore
	ttl       time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions:  make(map[string]*Wizard),
		snapshots: NewSnapshotStore(ttl),
		ttl:       ttl,
	}
}

// Start opens a wizard session for a press release, rehydrating any prior
// selection snapshot stored under that workflow id.
func (m *Manager) Start(pressReleaseID string) *Wizard {
	wizard := newWizard(uuid.NewString(), pressReleaseID, m.snapshots)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeStale()
	m.sessions[wizard.Token] = wizard
	return wizard
}

func (m *Manager) Get(token string) (*Wizard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeStale()
	wizard, ok := m.sessions[token]
	return wizard, ok
}

// End drops the session. The snapshot is kept unless the wizard completed,
// in which case MarkSent already discarded it.
func (m *Manager) End(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// purgeStale assumes the lock is held.
func (m *Manager) purgeStale() {
	if m.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.ttl)
	for token, wizard := range m.sessions {
		if wizard.lastTouched().Before(cutoff) {
			delete(m.sessions, token)
		}
	}
}
