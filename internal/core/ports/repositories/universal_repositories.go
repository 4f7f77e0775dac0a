package repositories

import (
	"context"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

// UniversalLedgerStore is the native storage of canonical universal journal
// entries. Unlike the subledger sources it accepts the complete filter, which
// the implementation translates to its own query language.
type UniversalLedgerStore interface {
	// FetchEntries returns every entry matching the full filter.
	FetchEntries(ctx context.Context, filter domain.UniversalJournalFilter) ([]domain.UniversalJournalEntry, error)

	// FindByKey looks up one entry by its composite natural key. Returns
	// apperrors.ErrNotFound when absent.
	FindByKey(ctx context.Context, key domain.UniversalJournalKey) (*domain.UniversalJournalEntry, error)
}

// The subledger sources only evaluate the pushable filter subset (company codes,
// fiscal-year range, posting-date range) natively and return their own row
// shapes; canonical conversion and residual filtering happen in the federation
// service.

// PayablesSource reads open items from the accounts payable subledger.
type PayablesSource interface {
	FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.PayablesOpenItem, error)
}

// ReceivablesSource reads open items from the accounts receivable subledger.
type ReceivablesSource interface {
	FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.ReceivablesOpenItem, error)
}

// CostAllocationSource reads allocation run lines from the controlling module.
type CostAllocationSource interface {
	FetchAllocationLines(ctx context.Context, filter domain.SourceFilter) ([]domain.AllocationLine, error)
}

// TreasurySource reads bank-statement and payment lines from the treasury module.
type TreasurySource interface {
	FetchItems(ctx context.Context, filter domain.SourceFilter) ([]domain.TreasuryItem, error)
}
