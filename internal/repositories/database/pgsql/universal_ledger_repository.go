package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	"github.com/modulerp/ledgercore/internal/models"
	"github.com/modulerp/ledgercore/internal/utils/mapping"
)

type PgxUniversalLedgerRepository struct {
	BaseRepository
}

// newPgxUniversalLedgerRepository creates a new repository over the native
// universal journal store.
func newPgxUniversalLedgerRepository(pool *pgxpool.Pool) portsrepo.UniversalLedgerStore {
	return &PgxUniversalLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UniversalLedgerStore = (*PgxUniversalLedgerRepository)(nil)

const universalJournalColumns = `
	ledger, company_code, fiscal_year, document_number, document_line,
	document_type, posting_date, document_date, currency, reference, header_text,
	gl_account, account_type, posting_key, debit_credit, amount, local_amount, item_text, tax_code,
	cost_center, profit_center, segment, business_area, business_partner,
	special_gl_indicator, clearing_document, clearing_date, source_module, extension_fields`

// filterBuilder accumulates WHERE conditions with positional arguments.
type filterBuilder struct {
	conditions []string
	args       []interface{}
}

func (b *filterBuilder) add(condition string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(condition, len(b.args)))
}

func (b *filterBuilder) addAllowList(column string, values []string) {
	if len(values) > 0 {
		b.add(column+" = ANY($%d)", values)
	}
}

func (b *filterBuilder) whereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// buildUniversalFilter translates the full filter into SQL conditions. This is
// the native store's full push-down: every predicate the federation service
// applies in memory for subledger rows is evaluated here by the database.
func buildUniversalFilter(filter domain.UniversalJournalFilter) *filterBuilder {
	b := &filterBuilder{}

	b.addAllowList("ledger", filter.Ledgers)
	b.addAllowList("company_code", filter.CompanyCodes)
	if filter.FiscalYearFrom != nil {
		b.add("fiscal_year >= $%d", *filter.FiscalYearFrom)
	}
	if filter.FiscalYearTo != nil {
		b.add("fiscal_year <= $%d", *filter.FiscalYearTo)
	}
	b.addAllowList("document_type", filter.DocumentTypes)
	if filter.PostingDateFrom != nil {
		b.add("posting_date >= $%d", *filter.PostingDateFrom)
	}
	if filter.PostingDateTo != nil {
		b.add("posting_date <= $%d", *filter.PostingDateTo)
	}
	if filter.DocumentDateFrom != nil {
		b.add("document_date >= $%d", *filter.DocumentDateFrom)
	}
	if filter.DocumentDateTo != nil {
		b.add("document_date <= $%d", *filter.DocumentDateTo)
	}
	b.addAllowList("gl_account", filter.GLAccounts)
	b.addAllowList("business_partner", filter.BusinessPartners)
	b.addAllowList("cost_center", filter.CostCenters)
	b.addAllowList("profit_center", filter.ProfitCenters)
	b.addAllowList("segment", filter.Segments)
	b.addAllowList("business_area", filter.BusinessAreas)
	if len(filter.SourceModules) > 0 {
		modules := make([]string, len(filter.SourceModules))
		for i, m := range filter.SourceModules {
			modules[i] = string(m)
		}
		b.addAllowList("source_module", modules)
	}
	if filter.OnlyOpenItems {
		b.conditions = append(b.conditions, "clearing_document = ''")
	}
	if filter.OnlyClearedItems {
		b.conditions = append(b.conditions, "clearing_document <> ''")
	}
	if len(filter.SpecialGLTypes) > 0 {
		codes := make([]string, len(filter.SpecialGLTypes))
		for i, t := range filter.SpecialGLTypes {
			codes[i] = t.ExternalCode()
		}
		b.addAllowList("special_gl_indicator", codes)
	}
	if filter.SearchText != "" {
		pattern := "%" + filter.SearchText + "%"
		b.add("(document_number ILIKE $%[1]d OR header_text ILIKE $%[1]d OR item_text ILIKE $%[1]d)", pattern)
	}
	return b
}

func scanUniversalJournalRow(row pgx.Row) (models.UniversalJournalEntry, error) {
	var m models.UniversalJournalEntry
	err := row.Scan(
		&m.Ledger,
		&m.CompanyCode,
		&m.FiscalYear,
		&m.DocumentNumber,
		&m.DocumentLine,
		&m.DocumentType,
		&m.PostingDate,
		&m.DocumentDate,
		&m.Currency,
		&m.Reference,
		&m.HeaderText,
		&m.GLAccount,
		&m.AccountType,
		&m.PostingKey,
		&m.DebitCredit,
		&m.Amount,
		&m.LocalAmount,
		&m.ItemText,
		&m.TaxCode,
		&m.CostCenter,
		&m.ProfitCenter,
		&m.Segment,
		&m.BusinessArea,
		&m.BusinessPartner,
		&m.SpecialGLIndicator,
		&m.ClearingDocument,
		&m.ClearingDate,
		&m.SourceModule,
		&m.ExtensionFields,
	)
	return m, err
}

// FetchEntries returns every stored entry matching the full filter.
func (r *PgxUniversalLedgerRepository) FetchEntries(ctx context.Context, filter domain.UniversalJournalFilter) ([]domain.UniversalJournalEntry, error) {
	b := buildUniversalFilter(filter)
	query := `
		SELECT ` + universalJournalColumns + `
		FROM universal_journal_entries
		` + b.whereClause() + `
		ORDER BY posting_date DESC, document_number, document_line;
	`
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query universal journal entries", err)
	}
	defer rows.Close()

	var entries []domain.UniversalJournalEntry
	for rows.Next() {
		m, scanErr := scanUniversalJournalRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan universal journal row", scanErr)
		}
		entry, mapErr := mapping.ToDomainUniversalJournalEntry(m)
		if mapErr != nil {
			return nil, apperrors.NewAppError(500, "failed to map universal journal row", mapErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating universal journal rows", err)
	}
	return entries, nil
}

// FindByKey looks up one entry by its composite natural key.
func (r *PgxUniversalLedgerRepository) FindByKey(ctx context.Context, key domain.UniversalJournalKey) (*domain.UniversalJournalEntry, error) {
	query := `
		SELECT ` + universalJournalColumns + `
		FROM universal_journal_entries
		WHERE ledger = $1 AND company_code = $2 AND fiscal_year = $3
		  AND document_number = $4 AND document_line = $5;
	`
	m, err := scanUniversalJournalRow(r.Pool.QueryRow(ctx, query,
		key.Ledger, key.CompanyCode, key.FiscalYear, key.DocumentNumber, key.DocumentLine))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find universal journal entry "+key.DocumentNumber, err)
	}
	entry, err := mapping.ToDomainUniversalJournalEntry(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map universal journal entry "+key.DocumentNumber, err)
	}
	return &entry, nil
}
