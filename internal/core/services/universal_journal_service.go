package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
	"github.com/modulerp/ledgercore/internal/dto"
	"github.com/modulerp/ledgercore/internal/middleware"
)

const (
	defaultStreamBatchSize = 100
	streamChannelCapacity  = 4
)

// universalJournalService federates the native ledger store and the subledger
// sources behind one canonical query surface.
type universalJournalService struct {
	native      portsrepo.UniversalLedgerStore
	payables    portsrepo.PayablesSource
	receivables portsrepo.ReceivablesSource
	allocation  portsrepo.CostAllocationSource
	treasury    portsrepo.TreasurySource
}

// NewUniversalJournalService creates the federated query service. Any source
// may be nil, in which case it is simply skipped during fan-out.
func NewUniversalJournalService(
	native portsrepo.UniversalLedgerStore,
	payables portsrepo.PayablesSource,
	receivables portsrepo.ReceivablesSource,
	allocation portsrepo.CostAllocationSource,
	treasury portsrepo.TreasurySource,
) portssvc.UniversalJournalSvcFacade {
	return &universalJournalService{
		native:      native,
		payables:    payables,
		receivables: receivables,
		allocation:  allocation,
		treasury:    treasury,
	}
}

var _ portssvc.UniversalJournalSvcFacade = (*universalJournalService)(nil)

// wantsModule reports whether the filter admits entries from the given module.
func wantsModule(filter *domain.UniversalJournalFilter, module domain.SourceModule) bool {
	if len(filter.SourceModules) == 0 {
		return true
	}
	for _, m := range filter.SourceModules {
		if m == module {
			return true
		}
	}
	return false
}

// fetchAll fans out to every configured source concurrently and merges the
// results. The native store evaluates the whole filter itself; subledger rows
// come back prefiltered only on the pushable subset, so each converted entry is
// re-checked against the full filter before it joins the merged set. The first
// source error cancels the remaining fetches.
func (s *universalJournalService) fetchAll(ctx context.Context, filter domain.UniversalJournalFilter) ([]domain.UniversalJournalEntry, error) {
	g, gctx := errgroup.WithContext(ctx)
	sourceFilter := filter.SourceSubset()

	var nativeEntries, apEntries, arEntries, coEntries, trEntries []domain.UniversalJournalEntry

	if s.native != nil {
		g.Go(func() error {
			entries, err := s.native.FetchEntries(gctx, filter)
			if err != nil {
				return fmt.Errorf("native ledger fetch failed: %w", err)
			}
			nativeEntries = entries
			return nil
		})
	}

	if s.payables != nil && wantsModule(&filter, domain.SourceAP) {
		g.Go(func() error {
			items, err := s.payables.FetchOpenItems(gctx, sourceFilter)
			if err != nil {
				return fmt.Errorf("payables fetch failed: %w", err)
			}
			for _, item := range items {
				entry := payablesToUniversal(item)
				if filter.Matches(&entry) {
					apEntries = append(apEntries, entry)
				}
			}
			return nil
		})
	}

	if s.receivables != nil && wantsModule(&filter, domain.SourceAR) {
		g.Go(func() error {
			items, err := s.receivables.FetchOpenItems(gctx, sourceFilter)
			if err != nil {
				return fmt.Errorf("receivables fetch failed: %w", err)
			}
			for _, item := range items {
				entry := receivablesToUniversal(item)
				if filter.Matches(&entry) {
					arEntries = append(arEntries, entry)
				}
			}
			return nil
		})
	}

	if s.allocation != nil && wantsModule(&filter, domain.SourceCO) {
		g.Go(func() error {
			lines, err := s.allocation.FetchAllocationLines(gctx, sourceFilter)
			if err != nil {
				return fmt.Errorf("cost allocation fetch failed: %w", err)
			}
			for _, line := range lines {
				entry := allocationToUniversal(line)
				if filter.Matches(&entry) {
					coEntries = append(coEntries, entry)
				}
			}
			return nil
		})
	}

	if s.treasury != nil && wantsModule(&filter, domain.SourceTR) {
		g.Go(func() error {
			items, err := s.treasury.FetchItems(gctx, sourceFilter)
			if err != nil {
				return fmt.Errorf("treasury fetch failed: %w", err)
			}
			for _, item := range items {
				entry := treasuryToUniversal(item)
				if filter.Matches(&entry) {
					trEntries = append(trEntries, entry)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]domain.UniversalJournalEntry, 0, len(nativeEntries)+len(apEntries)+len(arEntries)+len(coEntries)+len(trEntries))
	merged = append(merged, nativeEntries...)
	merged = append(merged, apEntries...)
	merged = append(merged, arEntries...)
	merged = append(merged, coEntries...)
	merged = append(merged, trEntries...)
	return merged, nil
}

// sortUniversalEntries orders the merged set. The default order is posting date
// descending; document number and document line ascending break every tie so
// the global order is total and stable across runs.
func sortUniversalEntries(entries []domain.UniversalJournalEntry, orderBy dto.OrderBy) {
	primary := func(a, b *domain.UniversalJournalEntry) int {
		switch orderBy.Field {
		case "document_number":
			switch {
			case a.DocumentNumber < b.DocumentNumber:
				return -1
			case a.DocumentNumber > b.DocumentNumber:
				return 1
			}
			return 0
		case "amount":
			return a.Amount.Cmp(b.Amount)
		case "gl_account":
			switch {
			case a.GLAccount < b.GLAccount:
				return -1
			case a.GLAccount > b.GLAccount:
				return 1
			}
			return 0
		default: // posting_date
			switch {
			case a.PostingDate.Before(b.PostingDate):
				return -1
			case a.PostingDate.After(b.PostingDate):
				return 1
			}
			return 0
		}
	}

	descending := orderBy.Descending
	if orderBy.Field == "" {
		descending = true
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if c := primary(a, b); c != 0 {
			if descending {
				return c > 0
			}
			return c < 0
		}
		if a.DocumentNumber != b.DocumentNumber {
			return a.DocumentNumber < b.DocumentNumber
		}
		return a.DocumentLine < b.DocumentLine
	})
}

// Query materializes the filtered result set, orders it globally, and returns
// the requested window.
func (s *universalJournalService) Query(ctx context.Context, filter domain.UniversalJournalFilter, page dto.PageRequest, orderBy dto.OrderBy) ([]domain.UniversalJournalEntry, dto.PageResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.fetchAll(ctx, filter)
	if err != nil {
		logger.Error("Federated query failed", slog.String("error", err.Error()))
		return nil, dto.PageResponse{}, err
	}
	sortUniversalEntries(entries, orderBy)

	total := len(entries)
	limit := page.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	logger.Info("Federated query served", slog.Int("total", total), slog.Int("returned", end-offset))
	return entries[offset:end], dto.PageResponse{
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    end < total,
	}, nil
}

// Stream returns the complete filtered result set in global order.
func (s *universalJournalService) Stream(ctx context.Context, filter domain.UniversalJournalFilter, orderBy dto.OrderBy) ([]domain.UniversalJournalEntry, error) {
	entries, err := s.fetchAll(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Federated stream failed", slog.String("error", err.Error()))
		return nil, err
	}
	sortUniversalEntries(entries, orderBy)
	return entries, nil
}

// StreamBatched delivers the ordered result set in fixed-size batches. The
// result set is materialized and sorted up front; batching bounds only what the
// consumer holds at a time, not producer memory.
func (s *universalJournalService) StreamBatched(ctx context.Context, filter domain.UniversalJournalFilter, orderBy dto.OrderBy, batchSize int) (<-chan []domain.UniversalJournalEntry, <-chan error) {
	if batchSize <= 0 {
		batchSize = defaultStreamBatchSize
	}
	out := make(chan []domain.UniversalJournalEntry, streamChannelCapacity)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		entries, err := s.fetchAll(ctx, filter)
		if err != nil {
			errc <- err
			return
		}
		sortUniversalEntries(entries, orderBy)

		for start := 0; start < len(entries); start += batchSize {
			end := start + batchSize
			if end > len(entries) {
				end = len(entries)
			}
			select {
			case out <- entries[start:end]:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}

// GetByKey performs a point lookup. The native store is consulted first; on a
// miss the federated sources are scanned with a key-derived filter.
func (s *universalJournalService) GetByKey(ctx context.Context, key domain.UniversalJournalKey) (*domain.UniversalJournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.native != nil {
		entry, err := s.native.FindByKey(ctx, key)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Native key lookup failed", slog.String("error", err.Error()), slog.String("document_number", key.DocumentNumber))
			return nil, err
		}
	}

	filter := domain.UniversalJournalFilter{
		Ledgers:        []string{key.Ledger},
		CompanyCodes:   []string{key.CompanyCode},
		FiscalYearFrom: &key.FiscalYear,
		FiscalYearTo:   &key.FiscalYear,
	}
	entries, err := s.fetchAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Key() == key {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: universal journal entry %s/%s/%d/%s/%d", apperrors.ErrNotFound,
		key.Ledger, key.CompanyCode, key.FiscalYear, key.DocumentNumber, key.DocumentLine)
}

// aggregationDimension extracts the bucket value for the first recognized
// dimension name. Unrecognized or empty dimension lists collapse everything
// into a single "ALL" bucket.
func aggregationDimension(entry *domain.UniversalJournalEntry, dimensions []string) string {
	for _, dim := range dimensions {
		switch dim {
		case "gl_account":
			return entry.GLAccount
		case "cost_center":
			return entry.CostCenter
		case "profit_center":
			return entry.ProfitCenter
		case "company_code":
			return entry.CompanyCode
		case "document_type":
			return entry.DocumentType
		case "source_module":
			return string(entry.SourceModule)
		}
	}
	return "ALL"
}

// Aggregate computes a group-by-sum over the filtered entries. The measure is
// summed as-is, so bucket totals always add up to the measure total of the
// filtered set.
func (s *universalJournalService) Aggregate(ctx context.Context, filter domain.UniversalJournalFilter, dimensions []string, measureField string) ([]domain.AggregationRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.fetchAll(ctx, filter)
	if err != nil {
		logger.Error("Federated aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for i := range entries {
		entry := &entries[i]
		bucket := aggregationDimension(entry, dimensions)

		measure := entry.Amount
		if measureField == "local_amount" {
			measure = entry.LocalAmount
		}

		totals[bucket] = totals[bucket].Add(measure)
		counts[bucket]++
	}

	rows := make([]domain.AggregationRow, 0, len(totals))
	for bucket, total := range totals {
		rows = append(rows, domain.AggregationRow{
			DimensionValue: bucket,
			TotalAmount:    total,
			RecordCount:    counts[bucket],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DimensionValue < rows[j].DimensionValue })

	logger.Info("Federated aggregation served", slog.Int("buckets", len(rows)), slog.Int("records", len(entries)))
	return rows, nil
}
