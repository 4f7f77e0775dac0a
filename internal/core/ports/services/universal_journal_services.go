package services

import (
	"context"

	"github.com/modulerp/ledgercore/internal/core/domain"
	"github.com/modulerp/ledgercore/internal/dto"
)

// UniversalJournalSvcFacade is the single queryable surface over the native
// ledger store and the federated subledger sources.
type UniversalJournalSvcFacade interface {
	// Query returns one page of the filtered, globally ordered result set.
	Query(ctx context.Context, filter domain.UniversalJournalFilter, page dto.PageRequest, orderBy dto.OrderBy) ([]domain.UniversalJournalEntry, dto.PageResponse, error)

	// Stream returns the complete filtered result set in global order.
	Stream(ctx context.Context, filter domain.UniversalJournalFilter, orderBy dto.OrderBy) ([]domain.UniversalJournalEntry, error)

	// StreamBatched delivers the ordered result set in fixed-size batches over a
	// bounded channel. The error channel yields at most one error; both channels
	// are closed when production ends. Cancelling ctx stops production promptly.
	StreamBatched(ctx context.Context, filter domain.UniversalJournalFilter, orderBy dto.OrderBy, batchSize int) (<-chan []domain.UniversalJournalEntry, <-chan error)

	// GetByKey performs a point lookup: native store first, then the federated
	// sources. Returns apperrors.ErrNotFound when no source has the key.
	GetByKey(ctx context.Context, key domain.UniversalJournalKey) (*domain.UniversalJournalEntry, error)

	// Aggregate computes an in-memory group-by-sum over the filtered entries.
	Aggregate(ctx context.Context, filter domain.UniversalJournalFilter, dimensions []string, measureField string) ([]domain.AggregationRow, error)
}
