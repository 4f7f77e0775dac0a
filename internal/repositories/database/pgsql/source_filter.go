package pgsql

import (
	"github.com/modulerp/ledgercore/internal/core/domain"
)

// buildSourceFilter translates the pushable filter subset shared by every
// subledger source. Residual predicates are re-applied by the federation
// service after canonical conversion.
func buildSourceFilter(filter domain.SourceFilter) *filterBuilder {
	b := &filterBuilder{}
	b.addAllowList("company_code", filter.CompanyCodes)
	if filter.FiscalYearFrom != nil {
		b.add("fiscal_year >= $%d", *filter.FiscalYearFrom)
	}
	if filter.FiscalYearTo != nil {
		b.add("fiscal_year <= $%d", *filter.FiscalYearTo)
	}
	if filter.PostingDateFrom != nil {
		b.add("posting_date >= $%d", *filter.PostingDateFrom)
	}
	if filter.PostingDateTo != nil {
		b.add("posting_date <= $%d", *filter.PostingDateTo)
	}
	return b
}
