package outreach

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Step is a state of the outreach wizard.
type Step int

const (
	StepSelectStaff Step = iota + 1
	StepSelectRecipients
	StepConfirm
	StepSent
)

func (s Step) String() string {
	switch s {
	case StepSelectStaff:
		return "select_staff"
	case StepSelectRecipients:
		return "select_recipients"
	case StepConfirm:
		return "confirm"
	case StepSent:
		return "sent"
	default:
		return "unknown"
	}
}

// Guard failures. Each keeps the wizard on its current step with all state
// intact; the caller surfaces the message and the user retries.
var (
	ErrNoStaffSelected = errors.New("select at least one staff member")
	ErrNoRecipients    = errors.New("select at least one contact or media list")
	ErrSubjectRequired = errors.New("a subject line is required")
	ErrWizardFinished  = errors.New("outreach workflow already completed")
	ErrNotReadyToSend  = errors.New("workflow is not on the confirm step")
)

// StaffMember is the staff selection carried through the wizard.
type StaffMember struct {
	ID    string `json:"id"`
	Name  string `json:"staff_name"`
	Email string `json:"staff_email"`
}

// Wizard owns all state of one outreach workflow instance: the chosen
// staff, the cross-page contact selection, optional media-list ids and the
// subject line. It replaces the ad hoc per-screen globals with a single
// guarded state machine.
type Wizard struct {
	mu sync.Mutex

	Token          string
	PressReleaseID string

	step      Step
	staff     []StaffMember
	selection *SelectionStore
	listIDs   []string
	subject   string

	snapshots *SnapshotStore
	touched   time.Time
}

func newWizard(token, pressReleaseID string, snapshots *SnapshotStore) *Wizard {
	return &Wizard{
		Token:          token,
		PressReleaseID: pressReleaseID,
		step:           StepSelectStaff,
		selection:      snapshots.Load(pressReleaseID),
		snapshots:      snapshots,
		touched:        time.Now(),
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Staff() []StaffMember {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]StaffMember(nil), w.staff...)
}

func (w *Wizard) MediaListIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.listIDs...)
}

func (w *Wizard) Subject() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.subject
}

func (w *Wizard) SelectionSize() int {
	return w.selection.Size()
}

func (w *Wizard) SetStaff(staff []StaffMember) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.staff = append([]StaffMember(nil), staff...)
	w.touch()
}

func (w *Wizard) SetMediaLists(ids []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listIDs = append([]string(nil), ids...)
	w.touch()
}

func (w *Wizard) SetSubject(subject string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subject = subject
	w.touch()
}

// ToggleContact flips one contact's membership and persists the snapshot
// immediately, so a reload mid-wizard never loses a toggle.
func (w *Wizard) ToggleContact(contact Contact) bool {
	selected := w.selection.Toggle(contact)
	w.saveSnapshot()
	return selected
}

// ToggleVisible applies the select-all toggle over the visible page and
// persists the result.
func (w *Wizard) ToggleVisible(visible []Contact) bool {
	added := w.selection.BulkToggleVisible(visible)
	w.saveSnapshot()
	return added
}

// Next advances to the following step if the current step's guard passes.
// On guard failure the wizard stays put and the error carries the
// validation message.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	switch w.step {
	case StepSelectStaff:
		if len(w.staff) == 0 {
			return ErrNoStaffSelected
		}
		w.step = StepSelectRecipients
		return nil
	case StepSelectRecipients:
		if w.selection.Size() == 0 && len(w.listIDs) == 0 {
			return ErrNoRecipients
		}
		w.step = StepConfirm
		return nil
	case StepConfirm:
		return ErrNotReadyToSend // Confirm -> Sent only through MarkSent
	default:
		return ErrWizardFinished
	}
}

// BuildPayload produces the wire payload for the current selection.
func (w *Wizard) BuildPayload() Payload {
	return BuildPayload(w.PressReleaseID, w.selection)
}

// MarkSent performs the Confirm -> Sent transition. It requires a non-empty
// subject; on success the persisted snapshot is discarded and the workflow
// terminates.
func (w *Wizard) MarkSent() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepSent {
		return ErrWizardFinished
	}
	if w.step != StepConfirm {
		return ErrNotReadyToSend
	}
	if strings.TrimSpace(w.subject) == "" {
		return ErrSubjectRequired
	}

	w.step = StepSent
	w.snapshots.Discard(w.PressReleaseID)
	w.selection.Clear()
	return nil
}

func (w *Wizard) saveSnapshot() {
	w.snapshots.Save(w.PressReleaseID, w.selection)
	w.mu.Lock()
	w.touch()
	w.mu.Unlock()
}

// touch assumes the lock is held.
func (w *Wizard) touch() {
	w.touched = time.Now()
}

func (w *Wizard) lastTouched() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touched
}
