package domain

import "time"

// EventType identifies a journal entry lifecycle event.
type EventType string

const (
	EventEntryParked   EventType = "ENTRY_PARKED"
	EventEntryPosted   EventType = "ENTRY_POSTED"
	EventEntryReversed EventType = "ENTRY_REVERSED"
)

// Event is returned by the mutating aggregate operations instead of being
// accumulated on the aggregate itself; the caller decides where it goes.
type Event struct {
	Type           EventType `json:"type"`
	JournalEntryID string    `json:"journalEntryID"`
	DocumentNumber string    `json:"documentNumber,omitempty"`
	CompanyCode    string    `json:"companyCode"`
	FiscalYear     int       `json:"fiscalYear"`
	TenantID       string    `json:"tenantID"`
	OccurredAt     time.Time `json:"occurredAt"`
}
