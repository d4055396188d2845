package outreach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStartAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	w := m.Start("42")
	require.NotEmpty(t, w.Token)
	assert.Equal(t, "42", w.PressReleaseID)

	got, ok := m.Get(w.Token)
	require.True(t, ok)
	assert.Same(t, w, got)

	_, ok = m.Get("unknown-token")
	assert.False(t, ok)
}

func TestManagerTokensAreUnique(t *testing.T) {
	m := NewManager(time.Hour)
	a := m.Start("42")
	b := m.Start("42")
	assert.NotEqual(t, a.Token, b.Token)
}

func TestManagerEndKeepsSnapshot(t *testing.T) {
	m := NewManager(time.Hour)

	w := m.Start("42")
	w.ToggleContact(Contact{ID: "1", Email: "a@x.com"})
	m.End(w.Token)

	_, ok := m.Get(w.Token)
	assert.False(t, ok)

	resumed := m.Start("42")
	assert.Equal(t, 1, resumed.SelectionSize(), "selection outlives the session")
}

func TestManagerPurgesIdleSessions(t *testing.T) {
	m := NewManager(time.Minute)

	w := m.Start("42")
	w.mu.Lock()
	w.touched = time.Now().Add(-2 * time.Minute)
	w.mu.Unlock()

	_, ok := m.Get(w.Token)
	assert.False(t, ok, "idle sessions expire")
}

func TestManagerZeroTTLNeverPurges(t *testing.T) {
	m := NewManager(0)

	w := m.Start("42")
	w.mu.Lock()
	w.touched = time.Now().Add(-24 * time.Hour)
	w.mu.Unlock()

	_, ok := m.Get(w.Token)
	assert.True(t, ok)
}
