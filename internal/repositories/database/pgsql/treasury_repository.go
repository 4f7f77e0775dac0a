package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
)

type PgxTreasuryRepository struct {
	BaseRepository
}

// newPgxTreasuryRepository creates a read-only source over the TR
// bank-statement and payment lines.
func newPgxTreasuryRepository(pool *pgxpool.Pool) portsrepo.TreasurySource {
	return &PgxTreasuryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TreasurySource = (*PgxTreasuryRepository)(nil)

// FetchItems returns the treasury items matching the pushable filter subset.
func (r *PgxTreasuryRepository) FetchItems(ctx context.Context, filter domain.SourceFilter) ([]domain.TreasuryItem, error) {
	b := buildSourceFilter(filter)
	query := `
		SELECT item_id, kind, company_code, fiscal_year, document_number, document_line,
		       value_date, posting_date, bank_account, amount, currency,
		       counterparty, statement_ref, item_text
		FROM tr_treasury_items
		` + b.whereClause() + `
		ORDER BY posting_date DESC, document_number, document_line;
	`
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query treasury items", err)
	}
	defer rows.Close()

	var items []domain.TreasuryItem
	for rows.Next() {
		var item domain.TreasuryItem
		if err := rows.Scan(
			&item.ItemID,
			&item.Kind,
			&item.CompanyCode,
			&item.FiscalYear,
			&item.DocumentNumber,
			&item.DocumentLine,
			&item.ValueDate,
			&item.PostingDate,
			&item.BankAccount,
			&item.Amount,
			&item.Currency,
			&item.Counterparty,
			&item.StatementRef,
			&item.ItemText,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan treasury item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating treasury item rows", err)
	}
	return items, nil
}
