package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
)

type PgxCostAllocationRepository struct {
	BaseRepository
}

// newPgxCostAllocationRepository creates a read-only source over the CO
// allocation run lines.
func newPgxCostAllocationRepository(pool *pgxpool.Pool) portsrepo.CostAllocationSource {
	return &PgxCostAllocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CostAllocationSource = (*PgxCostAllocationRepository)(nil)

// FetchAllocationLines returns the allocation lines matching the pushable filter subset.
func (r *PgxCostAllocationRepository) FetchAllocationLines(ctx context.Context, filter domain.SourceFilter) ([]domain.AllocationLine, error) {
	b := buildSourceFilter(filter)
	query := `
		SELECT allocation_id, run_id, company_code, fiscal_year, document_number, document_line,
		       posting_date, cost_center, cost_element, amount, currency, is_sender,
		       cycle_name, segment_name
		FROM co_allocation_lines
		` + b.whereClause() + `
		ORDER BY posting_date DESC, document_number, document_line;
	`
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query CO allocation lines", err)
	}
	defer rows.Close()

	var lines []domain.AllocationLine
	for rows.Next() {
		var line domain.AllocationLine
		if err := rows.Scan(
			&line.AllocationID,
			&line.RunID,
			&line.CompanyCode,
			&line.FiscalYear,
			&line.DocumentNumber,
			&line.DocumentLine,
			&line.PostingDate,
			&line.CostCenter,
			&line.CostElement,
			&line.Amount,
			&line.Currency,
			&line.IsSender,
			&line.CycleName,
			&line.SegmentName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan CO allocation line row", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating CO allocation line rows", err)
	}
	return lines, nil
}
