package outreach

import "strings"

// Contact is one media-contact candidate for an outreach send. The email is
// the identity used for deduplication; ID is the stable row identifier used
// by the selection store.
type Contact struct {
	ID          string   `json:"id"`
	ContactName string   `json:"contactName"`
	Email       string   `json:"email"`
	OutletName  string   `json:"outletName,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// NormalizeEmail produces the deduplication key for an email address:
// trimmed and lowercased. Display always keeps the original casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Dedupe filters contacts to the first occurrence of each normalized email.
// Contacts without an email are dropped. Relative order of survivors is
// preserved, so the result is stable and Dedupe(Dedupe(x)) == Dedupe(x).
func Dedupe(contacts []Contact) []Contact {
	seen := make(map[string]bool, len(contacts))
	result := make([]Contact, 0, len(contacts))
	for _, contact := range contacts {
		key := NormalizeEmail(contact.Email)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, contact)
	}
	return result
}
