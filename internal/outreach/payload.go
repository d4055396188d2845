package outreach

// PayloadContact is one recipient in the outreach wire payload.
type PayloadContact struct {
	ContactID   string   `json:"contactId"`
	ContactName string   `json:"contactName"`
	Email       string   `json:"email"`
	OutletName  *string  `json:"outletName"`
	Categories  []string `json:"categories,omitempty"`
}

// Payload is the body posted to the follow-up webhook.
type Payload struct {
	PressReleaseID   *string          `json:"pressReleaseId"`
	SelectedContacts []PayloadContact `json:"selectedContacts"`
	Total            int              `json:"total"`
}

// BuildPayload projects the deduplicated selection into the wire payload.
// Deterministic for a given selection: the store's insertion order fixes
// the dedupe order, and Total always equals len(SelectedContacts).
func BuildPayload(pressReleaseID string, selection *SelectionStore) Payload {
	contacts := Dedupe(selection.Values())

	selected := make([]PayloadContact, 0, len(contacts))
	for _, contact := range contacts {
		entry := PayloadContact{
			ContactID:   contact.ID,
			ContactName: contact.ContactName,
			Email:       contact.Email,
		}
		if contact.OutletName != "" {
			outlet := contact.OutletName
			entry.OutletName = &outlet
		}
		if len(contact.Categories) > 0 {
			entry.Categories = contact.Categories
		}
		selected = append(selected, entry)
	}

	payload := Payload{
		SelectedContacts: selected,
		Total:            len(selected),
	}
	if pressReleaseID != "" {
		id := pressReleaseID
		payload.PressReleaseID = &id
	}
	return payload
}
