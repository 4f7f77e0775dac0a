package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

func intPtr(i int) *int { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func sampleEntry() domain.UniversalJournalEntry {
	return domain.UniversalJournalEntry{
		Ledger:          "0L",
		CompanyCode:     "1000",
		FiscalYear:      2025,
		DocumentNumber:  "1000-2025-AB12",
		DocumentLine:    1,
		DocumentType:    "KR",
		PostingDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DocumentDate:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		GLAccount:       "160000",
		AccountType:     domain.AccountTypeVendor,
		DebitCredit:     domain.Credit,
		Amount:          decimal.RequireFromString("500"),
		LocalAmount:     decimal.RequireFromString("500"),
		ItemText:        "office supplies invoice",
		CostCenter:      "CC-100",
		ProfitCenter:    "PC-200",
		Segment:         "SEG-A",
		BusinessArea:    "BA-1",
		BusinessPartner: "V-100",
		SourceModule:    domain.SourceAP,
	}
}

func TestUniversalJournalFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.UniversalJournalFilter
		mutate func(*domain.UniversalJournalEntry)
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: domain.UniversalJournalFilter{},
			want:   true,
		},
		{
			name:   "company code in allow list",
			filter: domain.UniversalJournalFilter{CompanyCodes: []string{"2000", "1000"}},
			want:   true,
		},
		{
			name:   "company code not in allow list",
			filter: domain.UniversalJournalFilter{CompanyCodes: []string{"2000"}},
			want:   false,
		},
		{
			name:   "fiscal year within range",
			filter: domain.UniversalJournalFilter{FiscalYearFrom: intPtr(2024), FiscalYearTo: intPtr(2025)},
			want:   true,
		},
		{
			name:   "fiscal year below range",
			filter: domain.UniversalJournalFilter{FiscalYearFrom: intPtr(2026)},
			want:   false,
		},
		{
			name: "posting date range inclusive of boundary",
			filter: domain.UniversalJournalFilter{
				PostingDateFrom: timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
				PostingDateTo:   timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
			},
			want: true,
		},
		{
			name: "posting date after range",
			filter: domain.UniversalJournalFilter{
				PostingDateTo: timePtr(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)),
			},
			want: false,
		},
		{
			name:   "source module match",
			filter: domain.UniversalJournalFilter{SourceModules: []domain.SourceModule{domain.SourceAP, domain.SourceGL}},
			want:   true,
		},
		{
			name:   "source module mismatch",
			filter: domain.UniversalJournalFilter{SourceModules: []domain.SourceModule{domain.SourceTR}},
			want:   false,
		},
		{
			name:   "open items only matches uncleared line",
			filter: domain.UniversalJournalFilter{OnlyOpenItems: true},
			want:   true,
		},
		{
			name:   "open items only rejects cleared line",
			filter: domain.UniversalJournalFilter{OnlyOpenItems: true},
			mutate: func(e *domain.UniversalJournalEntry) { e.ClearingDocument = "CLR-1" },
			want:   false,
		},
		{
			name:   "cleared items only matches cleared line",
			filter: domain.UniversalJournalFilter{OnlyClearedItems: true},
			mutate: func(e *domain.UniversalJournalEntry) { e.ClearingDocument = "CLR-1" },
			want:   true,
		},
		{
			name:   "open and cleared both set matches nothing",
			filter: domain.UniversalJournalFilter{OnlyOpenItems: true, OnlyClearedItems: true},
			want:   false,
		},
		{
			name:   "special gl type match",
			filter: domain.UniversalJournalFilter{SpecialGLTypes: []domain.SpecialGLType{domain.SpecialGLDownPayment}},
			mutate: func(e *domain.UniversalJournalEntry) { e.SpecialGLIndicator = domain.SpecialGLDownPayment },
			want:   true,
		},
		{
			name:   "special gl type mismatch",
			filter: domain.UniversalJournalFilter{SpecialGLTypes: []domain.SpecialGLType{domain.SpecialGLDownPayment}},
			want:   false,
		},
		{
			name:   "search text is case-insensitive substring over item text",
			filter: domain.UniversalJournalFilter{SearchText: "OFFICE"},
			want:   true,
		},
		{
			name:   "search text over document number",
			filter: domain.UniversalJournalFilter{SearchText: "2025-ab"},
			want:   true,
		},
		{
			name:   "search text with no match",
			filter: domain.UniversalJournalFilter{SearchText: "freight"},
			want:   false,
		},
		{
			name: "all predicates combine with AND",
			filter: domain.UniversalJournalFilter{
				CompanyCodes:  []string{"1000"},
				GLAccounts:    []string{"160000"},
				SourceModules: []domain.SourceModule{domain.SourceAP},
				CostCenters:   []string{"CC-999"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := sampleEntry()
			if tt.mutate != nil {
				tt.mutate(&entry)
			}
			assert.Equal(t, tt.want, tt.filter.Matches(&entry))
		})
	}
}

func TestSourceSubset(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.UniversalJournalFilter{
		CompanyCodes:    []string{"1000"},
		FiscalYearFrom:  intPtr(2024),
		FiscalYearTo:    intPtr(2025),
		PostingDateFrom: &from,
		GLAccounts:      []string{"160000"},
		SearchText:      "invoice",
	}

	subset := filter.SourceSubset()
	assert.Equal(t, []string{"1000"}, subset.CompanyCodes)
	assert.Equal(t, 2024, *subset.FiscalYearFrom)
	assert.Equal(t, 2025, *subset.FiscalYearTo)
	assert.Equal(t, from, *subset.PostingDateFrom)
	assert.Nil(t, subset.PostingDateTo)
}

func TestUniversalJournalEntryKey(t *testing.T) {
	entry := sampleEntry()
	key := entry.Key()
	assert.Equal(t, domain.UniversalJournalKey{
		Ledger:         "0L",
		CompanyCode:    "1000",
		FiscalYear:     2025,
		DocumentNumber: "1000-2025-AB12",
		DocumentLine:   1,
	}, key)
}
