package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	"github.com/modulerp/ledgercore/internal/models"
	"github.com/modulerp/ledgercore/internal/utils/mapping"
	"github.com/modulerp/ledgercore/internal/utils/pagination"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

const journalEntryColumns = `
	journal_entry_id, document_number, company_code, fiscal_year, posting_date, document_date,
	currency, local_currency, group_currency, chart_of_accounts, status, reference,
	tenant_id, ledger_group, default_ledger, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const journalEntryLineColumns = `
	line_item_id, journal_entry_id, line_number, account_id, debit_credit,
	amount, local_amount, ledger, ledger_type, ledger_amount,
	special_gl_indicator, item_text,
	cost_center, profit_center, business_area, controlling_area, financial_area,
	account_assignment, business_partner, business_partner_type,
	transaction_type_code, trading_partner_company, details`

// insertEntryInTx inserts the header row and batches the line rows within tx.
func (r *PgxJournalEntryRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, headerQuery,
		modelEntry.JournalEntryID,
		modelEntry.DocumentNumber,
		modelEntry.CompanyCode,
		modelEntry.FiscalYear,
		modelEntry.PostingDate,
		modelEntry.DocumentDate,
		modelEntry.Currency,
		modelEntry.LocalCurrency,
		modelEntry.GroupCurrency,
		modelEntry.ChartOfAccounts,
		modelEntry.Status,
		modelEntry.Reference,
		modelEntry.TenantID,
		modelEntry.LedgerGroup,
		modelEntry.DefaultLedger,
		modelEntry.PostedAt,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.JournalEntryID, err)
	}

	return r.insertLinesInTx(ctx, tx, entry)
}

// insertLinesInTx batches the line inserts for one entry within tx.
func (r *PgxJournalEntryRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	lineQuery := `
		INSERT INTO journal_entry_lines (` + journalEntryLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	batch := &pgx.Batch{}
	for _, li := range entry.Lines {
		modelLine, err := mapping.ToModelJournalEntryLine(entry.JournalEntryID, li)
		if err != nil {
			return apperrors.NewAppError(500, "failed to map line item "+li.LineItemID, err)
		}
		batch.Queue(lineQuery,
			modelLine.LineItemID,
			modelLine.JournalEntryID,
			modelLine.LineNumber,
			modelLine.AccountID,
			modelLine.DebitCredit,
			modelLine.Amount,
			modelLine.LocalAmount,
			modelLine.Ledger,
			modelLine.LedgerType,
			modelLine.LedgerAmount,
			modelLine.SpecialGLIndicator,
			modelLine.ItemText,
			modelLine.CostCenter,
			modelLine.ProfitCenter,
			modelLine.BusinessArea,
			modelLine.ControllingArea,
			modelLine.FinancialArea,
			modelLine.AccountAssignment,
			modelLine.BusinessPartner,
			modelLine.BusinessPartnerType,
			modelLine.TransactionTypeCode,
			modelLine.TradingPartnerCompany,
			modelLine.Details,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for journal entry "+entry.JournalEntryID, err)
	}
	return nil
}

// SaveJournalEntry persists the entry header and its lines within a DB transaction.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := r.insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// scanJournalEntryRow scans one header row into a model.
func scanJournalEntryRow(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.DocumentNumber,
		&m.CompanyCode,
		&m.FiscalYear,
		&m.PostingDate,
		&m.DocumentDate,
		&m.Currency,
		&m.LocalCurrency,
		&m.GroupCurrency,
		&m.ChartOfAccounts,
		&m.Status,
		&m.Reference,
		&m.TenantID,
		&m.LedgerGroup,
		&m.DefaultLedger,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindJournalEntryByID retrieves an entry with its line items.
func (r *PgxJournalEntryRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE journal_entry_id = $1;
	`
	modelEntry, err := scanJournalEntryRow(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+journalEntryID, err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}

	domainEntry := mapping.ToDomainJournalEntry(modelEntry)
	domainEntry.Lines = linesByEntry[journalEntryID]
	return &domainEntry, nil
}

// findLinesByEntryIDs retrieves the lines for a set of entries, keyed by entry ID
// and ordered by line number.
func (r *PgxJournalEntryRepository) findLinesByEntryIDs(ctx context.Context, journalEntryIDs []string) (map[string][]domain.LineItem, error) {
	if len(journalEntryIDs) == 0 {
		return map[string][]domain.LineItem{}, nil
	}

	query := `
		SELECT ` + journalEntryLineColumns + `
		FROM journal_entry_lines
		WHERE journal_entry_id = ANY($1)
		ORDER BY journal_entry_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.LineItem)
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(
			&m.LineItemID,
			&m.JournalEntryID,
			&m.LineNumber,
			&m.AccountID,
			&m.DebitCredit,
			&m.Amount,
			&m.LocalAmount,
			&m.Ledger,
			&m.LedgerType,
			&m.LedgerAmount,
			&m.SpecialGLIndicator,
			&m.ItemText,
			&m.CostCenter,
			&m.ProfitCenter,
			&m.BusinessArea,
			&m.ControllingArea,
			&m.FinancialArea,
			&m.AccountAssignment,
			&m.BusinessPartner,
			&m.BusinessPartnerType,
			&m.TransactionTypeCode,
			&m.TradingPartnerCompany,
			&m.Details,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry line row", err)
		}
		li, err := mapping.ToDomainLineItem(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map journal entry line "+m.LineItemID, err)
		}
		linesByEntry[m.JournalEntryID] = append(linesByEntry[m.JournalEntryID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry line rows", err)
	}
	return linesByEntry, nil
}

// ListJournalEntries retrieves a token-paginated page of entries for a company
// code within a tenant, newest posting date first.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, tenantID, companyCode string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND company_code = $2
	`
	// Ordering must be stable: posting_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{tenantID, companyCode}

	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (posting_date, created_at) < ($3, $4)`
		args = append(args, lastPostingDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyCode, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row for company "+companyCode, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows for company "+companyCode, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1] // The actual last item of the current page
		newToken := pagination.EncodeToken(lastEntry.PostingDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entryIDs := make([]string, len(results))
	for i, m := range results {
		entryIDs[i] = m.JournalEntryID
	}
	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, nil, err
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
		domainEntries[i].Lines = linesByEntry[m.JournalEntryID]
	}
	return domainEntries, nextTokenVal, nil
}

// UpdateJournalEntry rewrites the header and replaces the line set of an entry.
func (r *PgxJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET posting_date = $2,
		    document_date = $3,
		    reference = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_entry_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		modelEntry.JournalEntryID,
		modelEntry.PostingDate,
		modelEntry.DocumentDate,
		modelEntry.Reference,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+modelEntry.JournalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + modelEntry.JournalEntryID + " not found for update")
	}

	// Replace the whole line set; line rows have no identity outside their entry.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, entry.JournalEntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal entry "+entry.JournalEntryID, err)
	}
	if err := r.insertLinesInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateJournalEntryStatus transitions the lifecycle columns of an entry.
func (r *PgxJournalEntryRepository) UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.EntryStatus, documentNumber *string, postedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    document_number = COALESCE($3, document_number),
		    posted_at = COALESCE($4, posted_at),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		journalEntryID,
		status,
		documentNumber,
		postedAt,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal entry "+journalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + journalEntryID + " not found for status update")
	}
	return nil
}

// SaveReversalPair inserts the posted reversal entry and marks the original
// Reversed within one DB transaction.
func (r *PgxJournalEntryRepository) SaveReversalPair(ctx context.Context, reversal domain.JournalEntry, original domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryInTx(ctx, tx, reversal); err != nil {
		return err
	}

	statusQuery := `
		UPDATE journal_entries
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE journal_entry_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, statusQuery,
		original.JournalEntryID,
		original.Status,
		original.LastUpdatedAt,
		original.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal entry "+original.JournalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + original.JournalEntryID + " not found for reversal")
	}

	return r.Commit(ctx, tx)
}
