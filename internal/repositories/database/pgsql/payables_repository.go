package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
)

type PgxPayablesRepository struct {
	BaseRepository
}

// newPgxPayablesRepository creates a read-only source over the AP open items.
func newPgxPayablesRepository(pool *pgxpool.Pool) portsrepo.PayablesSource {
	return &PgxPayablesRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PayablesSource = (*PgxPayablesRepository)(nil)

// FetchOpenItems returns the vendor open items matching the pushable filter subset.
func (r *PgxPayablesRepository) FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.PayablesOpenItem, error) {
	b := buildSourceFilter(filter)
	query := `
		SELECT open_item_id, company_code, fiscal_year, document_number, document_line,
		       vendor_id, invoice_date, posting_date, due_date,
		       amount, currency, local_amount, reference, item_text,
		       special_gl_code, clearing_document, clearing_date, payment_block_reason
		FROM ap_open_items
		` + b.whereClause() + `
		ORDER BY posting_date DESC, document_number, document_line;
	`
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query AP open items", err)
	}
	defer rows.Close()

	var items []domain.PayablesOpenItem
	for rows.Next() {
		var item domain.PayablesOpenItem
		if err := rows.Scan(
			&item.OpenItemID,
			&item.CompanyCode,
			&item.FiscalYear,
			&item.DocumentNumber,
			&item.DocumentLine,
			&item.VendorID,
			&item.InvoiceDate,
			&item.PostingDate,
			&item.DueDate,
			&item.Amount,
			&item.Currency,
			&item.LocalAmount,
			&item.Reference,
			&item.ItemText,
			&item.SpecialGLCode,
			&item.ClearingDocument,
			&item.ClearingDate,
			&item.PaymentBlockReason,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan AP open item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating AP open item rows", err)
	}
	return items, nil
}
