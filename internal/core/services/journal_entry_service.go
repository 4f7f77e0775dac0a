package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
	"github.com/modulerp/ledgercore/internal/dto"
	"github.com/modulerp/ledgercore/internal/middleware"
)

// journalEntryService provides the journal entry lifecycle operations.
type journalEntryService struct {
	entryRepo portsrepo.JournalEntryRepositoryWithTx
	events    portssvc.EventPublisher
}

// NewJournalEntryService creates a new journal entry service. A nil publisher
// falls back to discarding events.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryWithTx, events portssvc.EventPublisher) portssvc.JournalEntrySvcFacade {
	if events == nil {
		events = portssvc.NoopEventPublisher{}
	}
	return &journalEntryService{
		entryRepo: entryRepo,
		events:    events,
	}
}

// Ensure journalEntryService implements the facade.
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// CreateJournalEntry validates the request and persists a new Draft entry.
func (s *journalEntryService) CreateJournalEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, li := range req.Lines {
		if li.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, li.AccountID)
		}
	}

	localCurrency := req.LocalCurrency
	if localCurrency == "" {
		localCurrency = req.Currency
	}

	entry, err := domain.NewJournalEntry(domain.NewJournalEntryParams{
		CompanyCode:   req.CompanyCode,
		FiscalYear:    req.FiscalYear,
		PostingDate:   req.PostingDate,
		DocumentDate:  req.DocumentDate,
		Currency:      req.Currency,
		LocalCurrency: localCurrency,
		Reference:     req.Reference,
		Lines:         dto.ToDomainLineItems(req.Lines),
		TenantID:      tenantID,
		LedgerGroup:   req.LedgerGroup,
		CreatedBy:     actorID,
		Now:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveJournalEntry(ctx, *entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("company_code", req.CompanyCode))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", entry.JournalEntryID), slog.String("company_code", entry.CompanyCode))
	return entry, nil
}

// GetJournalEntryByID retrieves a specific entry with its line items.
func (s *journalEntryService) GetJournalEntryByID(ctx context.Context, tenantID string, journalEntryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	// Obscure existence across tenants.
	if entry.TenantID != tenantID {
		logger.Warn("Journal entry belongs to a different tenant", slog.String("journal_entry_id", journalEntryID))
		return nil, apperrors.ErrNotFound
	}

	return entry, nil
}

// ListJournalEntries retrieves a token-paginated list of entries.
func (s *journalEntryService) ListJournalEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.entryRepo.ListJournalEntries(ctx, tenantID, params.CompanyCode, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()), slog.String("company_code", params.CompanyCode))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	logger.Info("Journal entries listed", slog.Int("count", len(entries)))
	return &dto.ListJournalEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}, nil
}

// ParkJournalEntry moves a balanced Draft entry to Parked.
func (s *journalEntryService) ParkJournalEntry(ctx context.Context, tenantID string, journalEntryID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetJournalEntryByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event, err := entry.Park(actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateJournalEntryStatus(ctx, entry.JournalEntryID, entry.Status, nil, nil, actorID, now); err != nil {
		logger.Error("Failed to persist parked status", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to park journal entry: %w", err)
	}

	s.publish(ctx, event)
	logger.Info("Journal entry parked", slog.String("journal_entry_id", journalEntryID))
	return entry, nil
}

// PostJournalEntry posts a balanced entry, assigning its document number. An
// empty documentNumber derives one from the entry id.
func (s *journalEntryService) PostJournalEntry(ctx context.Context, tenantID string, journalEntryID string, documentNumber string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetJournalEntryByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}

	if documentNumber == "" {
		documentNumber = deriveDocumentNumber(entry)
	}

	now := time.Now().UTC()
	event, err := entry.Post(documentNumber, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateJournalEntryStatus(ctx, entry.JournalEntryID, entry.Status, entry.DocumentNumber, entry.PostedAt, actorID, now); err != nil {
		logger.Error("Failed to persist posted status", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	s.publish(ctx, event)
	logger.Info("Journal entry posted", slog.String("journal_entry_id", journalEntryID), slog.String("document_number", documentNumber))
	return entry, nil
}

// ReverseJournalEntry builds and posts the reversal entry and marks the
// original Reversed. Both writes happen in one storage transaction.
func (s *journalEntryService) ReverseJournalEntry(ctx context.Context, tenantID string, journalEntryID string, req dto.ReverseJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetJournalEntryByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal, postEvent, err := original.CreateReversal(req.ReversalDate, actorID, now)
	if err != nil {
		return nil, err
	}

	reverseEvent, err := original.MarkReversed(actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveReversalPair(ctx, *reversal, *original); err != nil {
		logger.Error("Failed to save reversal pair", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	s.publish(ctx, postEvent, reverseEvent)
	logger.Info("Journal entry reversed", slog.String("journal_entry_id", journalEntryID), slog.String("reversal_id", reversal.JournalEntryID))
	return reversal, nil
}

// UpdateJournalEntry updates header fields and/or replaces the line set of a
// Draft or Parked entry.
func (s *journalEntryService) UpdateJournalEntry(ctx context.Context, tenantID string, journalEntryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetJournalEntryByID(ctx, tenantID, journalEntryID)
	if err != nil {
		return nil, err
	}

	params := domain.UpdateJournalEntryParams{
		PostingDate:  req.PostingDate,
		DocumentDate: req.DocumentDate,
		Reference:    req.Reference,
	}
	if req.Lines != nil {
		for _, li := range *req.Lines {
			if li.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, li.AccountID)
			}
		}
		lines := dto.ToDomainLineItems(*req.Lines)
		params.Lines = &lines
	}

	if err := entry.Update(params, actorID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.entryRepo.UpdateJournalEntry(ctx, *entry); err != nil {
		logger.Error("Failed to save journal entry update", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to save journal entry update: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("journal_entry_id", journalEntryID))
	return entry, nil
}

// publish forwards events to the configured sink. Publication failures are
// logged and swallowed; the business operation has already succeeded.
func (s *journalEntryService) publish(ctx context.Context, events ...domain.Event) {
	if err := s.events.Publish(ctx, events...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish domain events", slog.String("error", err.Error()))
	}
}

// deriveDocumentNumber builds a document number when the caller supplies none.
func deriveDocumentNumber(entry *domain.JournalEntry) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("%s-%d-%s", entry.CompanyCode, entry.FiscalYear, suffix)
}
