package repositories

import (
	"context"
	"time"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves an entry with its line items.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a token-paginated list of entries for a company
	// code within a tenant. It returns the entries, a token for the next page, and
	// an error.
	ListJournalEntries(ctx context.Context, tenantID, companyCode string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveJournalEntry persists an entry and its line items atomically.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntry rewrites the header and line items of a Draft or Parked entry.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntryStatus transitions the entry's lifecycle fields after a
	// park, post, or reversal mark.
	UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.EntryStatus, documentNumber *string, postedAt *time.Time, updatedBy string, updatedAt time.Time) error

	// SaveReversalPair persists a newly posted reversal entry and marks the
	// original Reversed within one storage transaction.
	SaveReversalPair(ctx context.Context, reversal domain.JournalEntry, original domain.JournalEntry) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities.
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
