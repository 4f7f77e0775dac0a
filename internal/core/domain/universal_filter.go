package domain

import (
	"strings"
	"time"
)

// SourceFilter is the subset of UniversalJournalFilter that every subledger
// source can evaluate natively: company codes, fiscal-year range, posting-date
// range. Everything else is re-applied in memory after conversion.
type SourceFilter struct {
	CompanyCodes    []string
	FiscalYearFrom  *int
	FiscalYearTo    *int
	PostingDateFrom *time.Time
	PostingDateTo   *time.Time
}

// UniversalJournalFilter narrows a federated query. All fields are optional and
// combine with AND semantics. OnlyOpenItems and OnlyClearedItems are intended to
// be mutually exclusive; setting both matches nothing.
type UniversalJournalFilter struct {
	Ledgers          []string        `json:"ledgers,omitempty"`
	CompanyCodes     []string        `json:"companyCodes,omitempty"`
	FiscalYearFrom   *int            `json:"fiscalYearFrom,omitempty"`
	FiscalYearTo     *int            `json:"fiscalYearTo,omitempty"`
	DocumentTypes    []string        `json:"documentTypes,omitempty"`
	PostingDateFrom  *time.Time      `json:"postingDateFrom,omitempty"`
	PostingDateTo    *time.Time      `json:"postingDateTo,omitempty"`
	DocumentDateFrom *time.Time      `json:"documentDateFrom,omitempty"`
	DocumentDateTo   *time.Time      `json:"documentDateTo,omitempty"`
	GLAccounts       []string        `json:"glAccounts,omitempty"`
	BusinessPartners []string        `json:"businessPartners,omitempty"`
	CostCenters      []string        `json:"costCenters,omitempty"`
	ProfitCenters    []string        `json:"profitCenters,omitempty"`
	Segments         []string        `json:"segments,omitempty"`
	BusinessAreas    []string        `json:"businessAreas,omitempty"`
	SourceModules    []SourceModule  `json:"sourceModules,omitempty"`
	OnlyOpenItems    bool            `json:"onlyOpenItems,omitempty"`
	OnlyClearedItems bool            `json:"onlyClearedItems,omitempty"`
	SpecialGLTypes   []SpecialGLType `json:"specialGLTypes,omitempty"`
	SearchText       string          `json:"searchText,omitempty"`
}

// SourceSubset extracts the predicates that can be pushed down to subledger
// storage. The native ledger store receives the whole filter instead.
func (f *UniversalJournalFilter) SourceSubset() SourceFilter {
	return SourceFilter{
		CompanyCodes:    f.CompanyCodes,
		FiscalYearFrom:  f.FiscalYearFrom,
		FiscalYearTo:    f.FiscalYearTo,
		PostingDateFrom: f.PostingDateFrom,
		PostingDateTo:   f.PostingDateTo,
	}
}

// Matches applies the full filter to one canonical entry. This is the single
// in-memory predicate used for every federated source regardless of origin, so
// partially pushed-down sources end up filtered exactly like the native store.
func (f *UniversalJournalFilter) Matches(e *UniversalJournalEntry) bool {
	if !matchesAllowList(f.Ledgers, e.Ledger) {
		return false
	}
	if !matchesAllowList(f.CompanyCodes, e.CompanyCode) {
		return false
	}
	if f.FiscalYearFrom != nil && e.FiscalYear < *f.FiscalYearFrom {
		return false
	}
	if f.FiscalYearTo != nil && e.FiscalYear > *f.FiscalYearTo {
		return false
	}
	if !matchesAllowList(f.DocumentTypes, e.DocumentType) {
		return false
	}
	if f.PostingDateFrom != nil && e.PostingDate.Before(*f.PostingDateFrom) {
		return false
	}
	if f.PostingDateTo != nil && e.PostingDate.After(*f.PostingDateTo) {
		return false
	}
	if f.DocumentDateFrom != nil && e.DocumentDate.Before(*f.DocumentDateFrom) {
		return false
	}
	if f.DocumentDateTo != nil && e.DocumentDate.After(*f.DocumentDateTo) {
		return false
	}
	if !matchesAllowList(f.GLAccounts, e.GLAccount) {
		return false
	}
	if !matchesAllowList(f.BusinessPartners, e.BusinessPartner) {
		return false
	}
	if !matchesAllowList(f.CostCenters, e.CostCenter) {
		return false
	}
	if !matchesAllowList(f.ProfitCenters, e.ProfitCenter) {
		return false
	}
	if !matchesAllowList(f.Segments, e.Segment) {
		return false
	}
	if !matchesAllowList(f.BusinessAreas, e.BusinessArea) {
		return false
	}
	if len(f.SourceModules) > 0 {
		found := false
		for _, m := range f.SourceModules {
			if e.SourceModule == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.OnlyOpenItems && !e.IsOpenItem() {
		return false
	}
	if f.OnlyClearedItems && e.IsOpenItem() {
		return false
	}
	if len(f.SpecialGLTypes) > 0 {
		found := false
		for _, t := range f.SpecialGLTypes {
			if e.SpecialGLIndicator == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		haystack := strings.ToLower(e.DocumentNumber + " " + e.HeaderText + " " + e.ItemText)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func matchesAllowList(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
