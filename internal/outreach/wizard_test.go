package outreach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWizard(t *testing.T) *Wizard {
	t.Helper()
	return newWizard("token", "42", NewSnapshotStore(time.Hour))
}

func TestWizardHappyPath(t *testing.T) {
	w := testWizard(t)
	require.Equal(t, StepSelectStaff, w.Step())

	w.SetStaff([]StaffMember{{ID: "1", Name: "Jo", Email: "jo@sway.pr"}})
	require.NoError(t, w.Next())
	require.Equal(t, StepSelectRecipients, w.Step())

	w.ToggleContact(Contact{ID: "1", Email: "a@x.com"})
	require.NoError(t, w.Next())
	require.Equal(t, StepConfirm, w.Step())

	w.SetSubject("Launch announcement")
	require.NoError(t, w.MarkSent())
	assert.Equal(t, StepSent, w.Step())
}

func TestWizardStaffGuard(t *testing.T) {
	w := testWizard(t)

	err := w.Next()
	assert.ErrorIs(t, err, ErrNoStaffSelected)
	assert.Equal(t, StepSelectStaff, w.Step(), "a failed guard keeps the wizard in place")
}

func TestWizardRecipientsGuard(t *testing.T) {
	w := testWizard(t)
	w.SetStaff([]StaffMember{{ID: "1"}})
	require.NoError(t, w.Next())

	err := w.Next()
	assert.ErrorIs(t, err, ErrNoRecipients)

	// A media list satisfies the guard even with no individual contacts.
	w.SetMediaLists([]string{"7"})
	assert.NoError(t, w.Next())
}

func TestWizardSubjectGuard(t *testing.T) {
	w := testWizard(t)
	w.SetStaff([]StaffMember{{ID: "1"}})
	require.NoError(t, w.Next())
	w.ToggleContact(Contact{ID: "1", Email: "a@x.com"})
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.MarkSent(), ErrSubjectRequired)
	assert.Equal(t, StepConfirm, w.Step())
	assert.Equal(t, 1, w.SelectionSize(), "selection survives the failed send")

	w.SetSubject("   \t")
	assert.ErrorIs(t, w.MarkSent(), ErrSubjectRequired, "whitespace is not a subject")

	w.SetSubject("Follow up")
	assert.NoError(t, w.MarkSent())
}

func TestWizardCannotSendEarly(t *testing.T) {
	w := testWizard(t)
	w.SetSubject("too soon")
	assert.ErrorIs(t, w.MarkSent(), ErrNotReadyToSend)

	w.SetStaff([]StaffMember{{ID: "1"}})
	require.NoError(t, w.Next())
	assert.ErrorIs(t, w.MarkSent(), ErrNotReadyToSend)
}

func TestWizardFinishedIsTerminal(t *testing.T) {
	w := testWizard(t)
	w.SetStaff([]StaffMember{{ID: "1"}})
	require.NoError(t, w.Next())
	w.ToggleContact(Contact{ID: "1", Email: "a@x.com"})
	require.NoError(t, w.Next())
	w.SetSubject("subject")
	require.NoError(t, w.MarkSent())

	assert.ErrorIs(t, w.Next(), ErrWizardFinished)
	assert.ErrorIs(t, w.MarkSent(), ErrWizardFinished)
}

func TestWizardSnapshotRehydration(t *testing.T) {
	snapshots := NewSnapshotStore(time.Hour)

	first := newWizard("t1", "42", snapshots)
	first.ToggleContact(Contact{ID: "1", ContactName: "Alice", Email: "a@x.com"})
	first.ToggleContact(Contact{ID: "2", ContactName: "Bob", Email: "b@y.com"})

	// A later session on the same press release picks the selection up.
	second := newWizard("t2", "42", snapshots)
	assert.Equal(t, 2, second.SelectionSize())

	// A different press release starts clean.
	other := newWizard("t3", "43", snapshots)
	assert.Equal(t, 0, other.SelectionSize())
}

func TestWizardSentDiscardsSnapshot(t *testing.T) {
	snapshots := NewSnapshotStore(time.Hour)

	w := newWizard("t1", "42", snapshots)
	w.SetStaff([]StaffMember{{ID: "1"}})
	require.NoError(t, w.Next())
	w.ToggleContact(Contact{ID: "1", Email: "a@x.com"})
	require.NoError(t, w.Next())
	w.SetSubject("subject")
	require.NoError(t, w.MarkSent())

	next := newWizard("t2", "42", snapshots)
	assert.Equal(t, 0, next.SelectionSize(), "completed workflows leave no snapshot behind")
}

func TestWizardToggleVisiblePersists(t *testing.T) {
	snapshots := NewSnapshotStore(time.Hour)
	w := newWizard("t1", "42", snapshots)

	visible := []Contact{{ID: "1", Email: "a@x.com"}, {ID: "2", Email: "b@y.com"}}
	assert.True(t, w.ToggleVisible(visible))
	assert.Equal(t, 2, newWizard("t2", "42", snapshots).SelectionSize())

	assert.False(t, w.ToggleVisible(visible))
	assert.Equal(t, 0, newWizard("t3", "42", snapshots).SelectionSize())
}

func TestWizardBuildPayload(t *testing.T) {
	w := testWizard(t)
	w.ToggleContact(Contact{ID: "1", ContactName: "Alice", Email: "A@X.com"})
	w.ToggleContact(Contact{ID: "2", ContactName: "Alicia", Email: "a@x.com"})

	payload := w.BuildPayload()
	require.NotNil(t, payload.PressReleaseID)
	assert.Equal(t, "42", *payload.PressReleaseID)
	assert.Equal(t, 1, payload.Total)
}
