package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("A@X.com"))
	assert.Equal(t, "a@x.com", NormalizeEmail("  a@x.com  "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestDedupeCaseInsensitive(t *testing.T) {
	contacts := []Contact{
		{ID: "1", ContactName: "Alice", Email: "A@X.com"},
		{ID: "2", ContactName: "Alicia", Email: "a@x.com"},
		{ID: "3", ContactName: "Bob", Email: "b@y.com"},
	}

	result := Dedupe(contacts)

	assert.Len(t, result, 2)
	assert.Equal(t, "A@X.com", result[0].Email, "first occurrence wins and keeps its casing")
	assert.Equal(t, "b@y.com", result[1].Email)
}

func TestDedupeDropsEmptyEmails(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Email: ""},
		{ID: "2", Email: "   "},
		{ID: "3", Email: "c@z.com"},
	}

	result := Dedupe(contacts)

	assert.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)
}

func TestDedupePreservesOrder(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Email: "c@z.com"},
		{ID: "2", Email: "a@x.com"},
		{ID: "3", Email: "b@y.com"},
		{ID: "4", Email: "a@x.com"},
	}

	result := Dedupe(contacts)

	ids := []string{result[0].ID, result[1].ID, result[2].ID}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestDedupeIdempotent(t *testing.T) {
	contacts := []Contact{
		{ID: "1", Email: "A@X.com"},
		{ID: "2", Email: "a@x.com"},
		{ID: "3", Email: "b@y.com"},
	}

	once := Dedupe(contacts)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
}

func TestDedupeEmptyInput(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]Contact{}))
}
