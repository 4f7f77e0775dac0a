package dto

import (
	"github.com/modulerp/ledgercore/internal/core/domain"
)

// PageRequest selects a window of the materialized result set.
type PageRequest struct {
	Offset int `json:"offset" form:"offset" binding:"min=0"`
	Limit  int `json:"limit" form:"limit" binding:"min=0,max=1000"`
}

// PageResponse describes the window that was returned.
type PageResponse struct {
	TotalCount int  `json:"totalCount"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	HasMore    bool `json:"hasMore"`
}

// OrderBy selects the primary sort field. An empty field means the canonical
// ordering: posting date descending. Document number and document line are
// always appended as tie-breakers so the global order stays deterministic.
type OrderBy struct {
	Field      string `json:"field" binding:"omitempty,oneof=posting_date document_number amount gl_account"`
	Descending bool   `json:"descending"`
}

// UniversalJournalQueryRequest is the body of a federated query call.
type UniversalJournalQueryRequest struct {
	Filter  domain.UniversalJournalFilter `json:"filter"`
	Page    PageRequest                   `json:"page"`
	OrderBy OrderBy                       `json:"orderBy"`
}

// UniversalJournalQueryResponse is one page of canonical entries.
type UniversalJournalQueryResponse struct {
	Entries []domain.UniversalJournalEntry `json:"entries"`
	Page    PageResponse                   `json:"page"`
}

// AggregateRequest is the body of a dimensional aggregation call.
type AggregateRequest struct {
	Filter       domain.UniversalJournalFilter `json:"filter"`
	Dimensions   []string                      `json:"dimensions"`
	MeasureField string                        `json:"measureField" binding:"omitempty,oneof=amount local_amount"`
}

// AggregateResponse holds the aggregation buckets.
type AggregateResponse struct {
	Rows []domain.AggregationRow `json:"rows"`
}
