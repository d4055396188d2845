package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contact(id string) Contact {
	return Contact{ID: id, ContactName: "Contact " + id, Email: id + "@example.com"}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewSelectionStore()

	assert.True(t, s.Toggle(contact("1")))
	assert.True(t, s.Contains("1"))
	assert.Equal(t, 1, s.Size())

	assert.False(t, s.Toggle(contact("1")))
	assert.False(t, s.Contains("1"))
	assert.Equal(t, 0, s.Size())
}

func TestValuesInsertionOrder(t *testing.T) {
	s := NewSelectionStore()
	s.Toggle(contact("3"))
	s.Toggle(contact("1"))
	s.Toggle(contact("2"))

	values := s.Values()
	assert.Equal(t, []string{"3", "1", "2"}, []string{values[0].ID, values[1].ID, values[2].ID})

	// Removing and re-adding moves the contact to the end.
	s.Toggle(contact("3"))
	s.Toggle(contact("3"))
	values = s.Values()
	assert.Equal(t, []string{"1", "2", "3"}, []string{values[0].ID, values[1].ID, values[2].ID})
}

func TestBulkToggleVisibleAddsWhenAnyUnselected(t *testing.T) {
	s := NewSelectionStore()
	visible := []Contact{contact("1"), contact("2"), contact("3")}
	s.Toggle(contact("2"))

	added := s.BulkToggleVisible(visible)

	assert.True(t, added)
	assert.Equal(t, 3, s.Size())
}

func TestBulkToggleVisibleRemovesWhenAllSelected(t *testing.T) {
	s := NewSelectionStore()
	visible := []Contact{contact("1"), contact("2")}
	s.BulkToggleVisible(visible)
	s.Toggle(contact("9")) // selection on another page

	added := s.BulkToggleVisible(visible)

	assert.False(t, added)
	assert.Equal(t, 1, s.Size(), "other-page selection is untouched")
	assert.True(t, s.Contains("9"))
}

func TestBulkToggleVisibleDoubleApplyRestoresOriginal(t *testing.T) {
	s := NewSelectionStore()
	s.Toggle(contact("5"))
	visible := []Contact{contact("1"), contact("2")}

	s.BulkToggleVisible(visible)
	s.BulkToggleVisible(visible)

	assert.Equal(t, 1, s.Size())
	assert.True(t, s.Contains("5"))
}

func TestBulkToggleVisibleEmptyPage(t *testing.T) {
	s := NewSelectionStore()
	assert.False(t, s.BulkToggleVisible(nil), "nothing was added")
	assert.Equal(t, 0, s.Size())

	s.Toggle(contact("1"))
	assert.False(t, s.BulkToggleVisible([]Contact{}))
	assert.Equal(t, 1, s.Size(), "an empty page never touches the selection")
}

func TestClear(t *testing.T) {
	s := NewSelectionStore()
	s.Toggle(contact("1"))
	s.Toggle(contact("2"))

	s.Clear()

	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.Values())
}
