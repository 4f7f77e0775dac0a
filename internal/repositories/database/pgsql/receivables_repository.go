package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
)

type PgxReceivablesRepository struct {
	BaseRepository
}

// newPgxReceivablesRepository creates a read-only source over the AR open items.
func newPgxReceivablesRepository(pool *pgxpool.Pool) portsrepo.ReceivablesSource {
	return &PgxReceivablesRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReceivablesSource = (*PgxReceivablesRepository)(nil)

// FetchOpenItems returns the customer open items matching the pushable filter subset.
func (r *PgxReceivablesRepository) FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.ReceivablesOpenItem, error) {
	b := buildSourceFilter(filter)
	query := `
		SELECT open_item_id, company_code, fiscal_year, document_number, document_line,
		       customer_id, invoice_date, posting_date, due_date,
		       amount, currency, local_amount, reference, item_text,
		       special_gl_code, dunning_level, clearing_document, clearing_date
		FROM ar_open_items
		` + b.whereClause() + `
		ORDER BY posting_date DESC, document_number, document_line;
	`
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query AR open items", err)
	}
	defer rows.Close()

	var items []domain.ReceivablesOpenItem
	for rows.Next() {
		var item domain.ReceivablesOpenItem
		if err := rows.Scan(
			&item.OpenItemID,
			&item.CompanyCode,
			&item.FiscalYear,
			&item.DocumentNumber,
			&item.DocumentLine,
			&item.CustomerID,
			&item.InvoiceDate,
			&item.PostingDate,
			&item.DueDate,
			&item.Amount,
			&item.Currency,
			&item.LocalAmount,
			&item.Reference,
			&item.ItemText,
			&item.SpecialGLCode,
			&item.DunningLevel,
			&item.ClearingDocument,
			&item.ClearingDate,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan AR open item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating AR open item rows", err)
	}
	return items, nil
}
