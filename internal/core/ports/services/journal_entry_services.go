package services

import (
	"context"

	"github.com/modulerp/ledgercore/internal/core/domain"
	"github.com/modulerp/ledgercore/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries.
type JournalEntryReaderSvc interface {
	// GetJournalEntryByID retrieves an entry with its line items.
	GetJournalEntryByID(ctx context.Context, tenantID string, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a token-paginated list of entries.
	ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalEntryWriterSvc defines the lifecycle operations on journal entries.
type JournalEntryWriterSvc interface {
	// CreateJournalEntry validates and persists a new Draft entry.
	CreateJournalEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// ParkJournalEntry moves a balanced entry to Parked.
	ParkJournalEntry(ctx context.Context, tenantID string, journalEntryID string, actorID string) (*domain.JournalEntry, error)

	// PostJournalEntry posts a balanced entry, assigning its document number.
	// An empty documentNumber lets the service derive one.
	PostJournalEntry(ctx context.Context, tenantID string, journalEntryID string, documentNumber string, actorID string) (*domain.JournalEntry, error)

	// ReverseJournalEntry creates and posts a reversal entry and marks the
	// original Reversed, atomically.
	ReverseJournalEntry(ctx context.Context, tenantID string, journalEntryID string, req dto.ReverseJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// UpdateJournalEntry updates header fields and/or replaces the line set of a
	// Draft or Parked entry.
	UpdateJournalEntry(ctx context.Context, tenantID string, journalEntryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal-entry service interfaces.
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
