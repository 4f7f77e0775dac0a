package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEntry(t *testing.T, lines []domain.LineItem) *domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewJournalEntry(domain.NewJournalEntryParams{
		CompanyCode:   "1000",
		FiscalYear:    2025,
		PostingDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DocumentDate:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Currency:      "EUR",
		LocalCurrency: "EUR",
		Reference:     "INV-001",
		Lines:         lines,
		TenantID:      "tenant-1",
		CreatedBy:     "user-1",
		Now:           testNow,
	})
	require.NoError(t, err)
	return entry
}

func balancedLines(amount string) []domain.LineItem {
	amt := decimal.RequireFromString(amount)
	return []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: amt, LocalAmount: amt},
		{AccountID: "160000", DebitCredit: domain.Credit, Amount: amt, LocalAmount: amt},
	}
}

func TestNewJournalEntry(t *testing.T) {
	entry := newTestEntry(t, balancedLines("1000"))

	assert.NotEmpty(t, entry.JournalEntryID)
	assert.Nil(t, entry.DocumentNumber)
	assert.Equal(t, domain.Draft, entry.Status)
	assert.Equal(t, "1000", entry.CompanyCode)
	assert.Equal(t, testNow, entry.CreatedAt)

	require.Len(t, entry.Lines, 2)
	assert.Equal(t, 1, entry.Lines[0].LineNumber)
	assert.Equal(t, 2, entry.Lines[1].LineNumber)
	assert.NotEmpty(t, entry.Lines[0].LineItemID)
	assert.Equal(t, domain.DefaultLedger, entry.Lines[0].Ledger)
	assert.Equal(t, domain.LedgerLeading, entry.Lines[0].LedgerType)
	assert.Equal(t, domain.SpecialGLNormal, entry.Lines[0].SpecialGLIndicator)
}

func TestNewJournalEntryEmptyLines(t *testing.T) {
	_, err := domain.NewJournalEntry(domain.NewJournalEntryParams{
		CompanyCode: "1000",
		FiscalYear:  2025,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyLines)
}

func TestValidateBalance(t *testing.T) {
	tests := []struct {
		name       string
		lines      []domain.LineItem
		wantErr    bool
		wantDebit  string
		wantCredit string
	}{
		{
			name:  "balanced entry",
			lines: balancedLines("1000"),
		},
		{
			name: "single debit with no credit",
			lines: []domain.LineItem{
				{AccountID: "400000", DebitCredit: domain.Debit, Amount: decimal.RequireFromString("500")},
			},
			wantErr:    true,
			wantDebit:  "500",
			wantCredit: "0",
		},
		{
			name: "off by a cent",
			lines: []domain.LineItem{
				{AccountID: "400000", DebitCredit: domain.Debit, Amount: decimal.RequireFromString("100.00")},
				{AccountID: "160000", DebitCredit: domain.Credit, Amount: decimal.RequireFromString("99.99")},
			},
			wantErr:    true,
			wantDebit:  "100",
			wantCredit: "99.99",
		},
		{
			name: "multi-line split balances",
			lines: []domain.LineItem{
				{AccountID: "400000", DebitCredit: domain.Debit, Amount: decimal.RequireFromString("60")},
				{AccountID: "400100", DebitCredit: domain.Debit, Amount: decimal.RequireFromString("40")},
				{AccountID: "160000", DebitCredit: domain.Credit, Amount: decimal.RequireFromString("100")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := newTestEntry(t, tt.lines)
			err := entry.ValidateBalance()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var balErr *domain.BalanceError
			require.ErrorAs(t, err, &balErr)
			assert.True(t, decimal.RequireFromString(tt.wantDebit).Equal(balErr.DebitTotal))
			assert.True(t, decimal.RequireFromString(tt.wantCredit).Equal(balErr.CreditTotal))
		})
	}
}

func TestValidateBalanceByLedger(t *testing.T) {
	hundred := decimal.RequireFromString("100")

	// Balanced in aggregate but each ledger one-sided.
	entry := newTestEntry(t, []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: hundred, Ledger: "0L"},
		{AccountID: "160000", DebitCredit: domain.Credit, Amount: hundred, Ledger: "2L"},
	})
	assert.NoError(t, entry.ValidateBalance())

	err := entry.ValidateBalanceByLedger()
	var ledgerErr *domain.LedgerBalanceError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Len(t, ledgerErr.Ledgers, 2)
	assert.Contains(t, ledgerErr.Ledgers, "0L")
	assert.Contains(t, ledgerErr.Ledgers, "2L")

	// Each ledger balanced on its own passes.
	entry = newTestEntry(t, []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: hundred, Ledger: "0L"},
		{AccountID: "160000", DebitCredit: domain.Credit, Amount: hundred, Ledger: "0L"},
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: hundred, Ledger: "2L"},
		{AccountID: "160000", DebitCredit: domain.Credit, Amount: hundred, Ledger: "2L"},
	})
	assert.NoError(t, entry.ValidateBalanceByLedger())
}

func TestPark(t *testing.T) {
	entry := newTestEntry(t, balancedLines("250"))

	event, err := entry.Park("user-2", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Parked, entry.Status)
	assert.Equal(t, "user-2", entry.LastUpdatedBy)
	assert.Equal(t, domain.EventEntryParked, event.Type)
	assert.Equal(t, entry.JournalEntryID, event.JournalEntryID)

	// Unbalanced entries cannot be parked.
	unbalanced := newTestEntry(t, []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: decimal.RequireFromString("10")},
	})
	_, err = unbalanced.Park("user-2", testNow)
	var balErr *domain.BalanceError
	assert.ErrorAs(t, err, &balErr)
}

func TestPost(t *testing.T) {
	entry := newTestEntry(t, balancedLines("1000"))

	event, err := entry.Post("1000-2025-AB12", "user-2", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
	require.NotNil(t, entry.DocumentNumber)
	assert.Equal(t, "1000-2025-AB12", *entry.DocumentNumber)
	require.NotNil(t, entry.PostedAt)
	assert.Equal(t, testNow, *entry.PostedAt)
	assert.Equal(t, domain.EventEntryPosted, event.Type)
	assert.Equal(t, "1000-2025-AB12", event.DocumentNumber)

	// Posting twice is rejected.
	_, err = entry.Post("1000-2025-CD34", "user-2", testNow)
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
	assert.Equal(t, "1000-2025-AB12", *entry.DocumentNumber)
}

func TestPostFromParked(t *testing.T) {
	entry := newTestEntry(t, balancedLines("42"))
	_, err := entry.Park("user-1", testNow)
	require.NoError(t, err)

	_, err = entry.Post("1000-2025-EF56", "user-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, entry.Status)
}

func TestUpdate(t *testing.T) {
	entry := newTestEntry(t, balancedLines("100"))

	newRef := "INV-002"
	newDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	newLines := balancedLines("200")
	err := entry.Update(domain.UpdateJournalEntryParams{
		PostingDate: &newDate,
		Reference:   &newRef,
		Lines:       &newLines,
	}, "user-3", testNow)
	require.NoError(t, err)
	assert.Equal(t, "INV-002", entry.Reference)
	assert.Equal(t, newDate, entry.PostingDate)
	require.Len(t, entry.Lines, 2)
	assert.True(t, decimal.RequireFromString("200").Equal(entry.Lines[0].Amount))
	assert.Equal(t, 1, entry.Lines[0].LineNumber)

	// Replacing lines with an empty set is rejected.
	empty := []domain.LineItem{}
	err = entry.Update(domain.UpdateJournalEntryParams{Lines: &empty}, "user-3", testNow)
	assert.ErrorIs(t, err, domain.ErrEmptyLines)
	assert.Len(t, entry.Lines, 2)

	// Posted entries are immutable.
	_, err = entry.Post("1000-2025-GH78", "user-3", testNow)
	require.NoError(t, err)
	err = entry.Update(domain.UpdateJournalEntryParams{Reference: &newRef}, "user-3", testNow)
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
}

func TestCreateReversal(t *testing.T) {
	amt := decimal.RequireFromString("750")
	entry := newTestEntry(t, []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: amt, LocalAmount: amt},
		{AccountID: "170000", DebitCredit: domain.Credit, Amount: amt, LocalAmount: amt,
			SpecialGLIndicator: domain.SpecialGLDownPayment, BusinessPartner: "V-100"},
	})
	_, err := entry.Post("1000-2025-XY99", "user-1", testNow)
	require.NoError(t, err)

	reversalDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	reversal, event, err := entry.CreateReversal(reversalDate, "user-2", testNow)
	require.NoError(t, err)

	// The reversal is a new, independently posted document.
	assert.NotEqual(t, entry.JournalEntryID, reversal.JournalEntryID)
	assert.Equal(t, domain.Posted, reversal.Status)
	require.NotNil(t, reversal.DocumentNumber)
	assert.Equal(t, "R-1000-2025-XY99", *reversal.DocumentNumber)
	assert.Equal(t, reversalDate, reversal.PostingDate)
	assert.Equal(t, domain.EventEntryPosted, event.Type)

	// Every line direction flipped; amounts, indicators and dimensions kept.
	require.Len(t, reversal.Lines, 2)
	assert.Equal(t, domain.Credit, reversal.Lines[0].DebitCredit)
	assert.Equal(t, domain.Debit, reversal.Lines[1].DebitCredit)
	assert.True(t, amt.Equal(reversal.Lines[0].Amount))
	assert.Equal(t, domain.SpecialGLDownPayment, reversal.Lines[1].SpecialGLIndicator)
	assert.Equal(t, "V-100", reversal.Lines[1].BusinessPartner)
	assert.Equal(t, "reversal of 1000-2025-XY99", reversal.Lines[0].ItemText)
	assert.NotEqual(t, entry.Lines[0].LineItemID, reversal.Lines[0].LineItemID)
	assert.NoError(t, reversal.ValidateBalance())

	// The original is untouched until the caller marks it.
	assert.Equal(t, domain.Posted, entry.Status)
	revEvent, err := entry.MarkReversed("user-2", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Reversed, entry.Status)
	assert.Equal(t, domain.EventEntryReversed, revEvent.Type)
}

func TestCreateReversalRequiresPosted(t *testing.T) {
	entry := newTestEntry(t, balancedLines("100"))
	_, _, err := entry.CreateReversal(testNow, "user-1", testNow)
	assert.ErrorIs(t, err, domain.ErrNotPosted)

	_, err = entry.MarkReversed("user-1", testNow)
	assert.ErrorIs(t, err, domain.ErrNotPosted)
}

func TestSpecialGLLineHelpers(t *testing.T) {
	amt := decimal.RequireFromString("100")
	mixed := newTestEntry(t, []domain.LineItem{
		{AccountID: "400000", DebitCredit: domain.Debit, Amount: amt},
		{AccountID: "170000", DebitCredit: domain.Credit, Amount: amt,
			SpecialGLIndicator: domain.SpecialGLDownPayment},
	})

	assert.True(t, mixed.HasSpecialGLLines())
	assert.True(t, mixed.IsMixedSpecialGL())
	assert.False(t, mixed.IsPureSpecialGL())
	assert.Len(t, mixed.SpecialGLLines(), 1)
	assert.Len(t, mixed.LinesWithSpecialGL(domain.SpecialGLDownPayment), 1)
	assert.Empty(t, mixed.LinesWithSpecialGL(domain.SpecialGLBillOfExchange))

	normal := newTestEntry(t, balancedLines("100"))
	assert.False(t, normal.HasSpecialGLLines())
	assert.False(t, normal.IsMixedSpecialGL())
	assert.False(t, normal.IsPureSpecialGL())
}
