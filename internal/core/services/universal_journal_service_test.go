package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portsrepo "github.com/modulerp/ledgercore/internal/core/ports/repositories"
	"github.com/modulerp/ledgercore/internal/core/services"
	"github.com/modulerp/ledgercore/internal/dto"
)

// MockUniversalLedgerStore is a mock implementation of the native ledger store.
type MockUniversalLedgerStore struct {
	mock.Mock
}

var _ portsrepo.UniversalLedgerStore = (*MockUniversalLedgerStore)(nil)

func (m *MockUniversalLedgerStore) FetchEntries(ctx context.Context, filter domain.UniversalJournalFilter) ([]domain.UniversalJournalEntry, error) {
	args := m.Called(ctx, filter)
	var entries []domain.UniversalJournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.UniversalJournalEntry)
	}
	return entries, args.Error(1)
}

func (m *MockUniversalLedgerStore) FindByKey(ctx context.Context, key domain.UniversalJournalKey) (*domain.UniversalJournalEntry, error) {
	args := m.Called(ctx, key)
	var entry *domain.UniversalJournalEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.UniversalJournalEntry)
	}
	return entry, args.Error(1)
}

// MockPayablesSource is a mock implementation of the AP subledger source.
type MockPayablesSource struct {
	mock.Mock
}

var _ portsrepo.PayablesSource = (*MockPayablesSource)(nil)

func (m *MockPayablesSource) FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.PayablesOpenItem, error) {
	args := m.Called(ctx, filter)
	var items []domain.PayablesOpenItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.PayablesOpenItem)
	}
	return items, args.Error(1)
}

// MockReceivablesSource is a mock implementation of the AR subledger source.
type MockReceivablesSource struct {
	mock.Mock
}

var _ portsrepo.ReceivablesSource = (*MockReceivablesSource)(nil)

func (m *MockReceivablesSource) FetchOpenItems(ctx context.Context, filter domain.SourceFilter) ([]domain.ReceivablesOpenItem, error) {
	args := m.Called(ctx, filter)
	var items []domain.ReceivablesOpenItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.ReceivablesOpenItem)
	}
	return items, args.Error(1)
}

// MockCostAllocationSource is a mock implementation of the CO allocation source.
type MockCostAllocationSource struct {
	mock.Mock
}

var _ portsrepo.CostAllocationSource = (*MockCostAllocationSource)(nil)

func (m *MockCostAllocationSource) FetchAllocationLines(ctx context.Context, filter domain.SourceFilter) ([]domain.AllocationLine, error) {
	args := m.Called(ctx, filter)
	var lines []domain.AllocationLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.AllocationLine)
	}
	return lines, args.Error(1)
}

// MockTreasurySource is a mock implementation of the TR treasury source.
type MockTreasurySource struct {
	mock.Mock
}

var _ portsrepo.TreasurySource = (*MockTreasurySource)(nil)

func (m *MockTreasurySource) FetchItems(ctx context.Context, filter domain.SourceFilter) ([]domain.TreasuryItem, error) {
	args := m.Called(ctx, filter)
	var items []domain.TreasuryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.TreasuryItem)
	}
	return items, args.Error(1)
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func glEntry(doc string, line int, postingDay int, amount string) domain.UniversalJournalEntry {
	return domain.UniversalJournalEntry{
		Ledger:         domain.DefaultLedger,
		CompanyCode:    "1000",
		FiscalYear:     2025,
		DocumentNumber: doc,
		DocumentLine:   line,
		DocumentType:   "SA",
		PostingDate:    day(postingDay),
		DocumentDate:   day(postingDay),
		GLAccount:      "400000",
		AccountType:    domain.AccountTypeGL,
		DebitCredit:    domain.Debit,
		Amount:         decimal.RequireFromString(amount),
		LocalAmount:    decimal.RequireFromString(amount),
		SourceModule:   domain.SourceGL,
	}
}

func apOpenItem(doc string, line int, postingDay int, amount string) domain.PayablesOpenItem {
	return domain.PayablesOpenItem{
		OpenItemID:     "ap-" + doc,
		CompanyCode:    "1000",
		FiscalYear:     2025,
		DocumentNumber: doc,
		DocumentLine:   line,
		VendorID:       "V-100",
		InvoiceDate:    day(postingDay),
		PostingDate:    day(postingDay),
		DueDate:        day(postingDay + 30),
		Amount:         decimal.RequireFromString(amount),
		Currency:       "EUR",
		LocalAmount:    decimal.RequireFromString(amount),
	}
}

func TestQueryMergesAndOrdersAllSources(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	payables := new(MockPayablesSource)
	svc := services.NewUniversalJournalService(native, payables, nil, nil, nil)
	ctx := context.Background()

	filter := domain.UniversalJournalFilter{CompanyCodes: []string{"1000"}}
	native.On("FetchEntries", mock.Anything, filter).Return([]domain.UniversalJournalEntry{
		glEntry("GL-002", 1, 12, "200"),
		glEntry("GL-001", 2, 10, "100"),
		glEntry("GL-001", 1, 10, "100"),
	}, nil)
	payables.On("FetchOpenItems", mock.Anything, filter.SourceSubset()).Return([]domain.PayablesOpenItem{
		apOpenItem("AP-001", 1, 11, "300"),
	}, nil)

	entries, page, err := svc.Query(ctx, filter, dto.PageRequest{}, dto.OrderBy{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Default order: posting date descending, then document number and line ascending.
	assert.Equal(t, "GL-002", entries[0].DocumentNumber)
	assert.Equal(t, "AP-001", entries[1].DocumentNumber)
	assert.Equal(t, "GL-001", entries[2].DocumentNumber)
	assert.Equal(t, 1, entries[2].DocumentLine)
	assert.Equal(t, "GL-001", entries[3].DocumentNumber)
	assert.Equal(t, 2, entries[3].DocumentLine)

	// The AP item arrives converted to the canonical shape.
	assert.Equal(t, domain.SourceAP, entries[1].SourceModule)
	assert.Equal(t, domain.AccountTypeVendor, entries[1].AccountType)
	assert.Equal(t, "31", entries[1].PostingKey)
	assert.Equal(t, domain.Credit, entries[1].DebitCredit)
	assert.Equal(t, "V-100", entries[1].BusinessPartner)

	assert.Equal(t, 4, page.TotalCount)
	assert.False(t, page.HasMore)
	native.AssertExpectations(t)
	payables.AssertExpectations(t)
}

func TestQueryPagination(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	native.On("FetchEntries", mock.Anything, mock.Anything).Return([]domain.UniversalJournalEntry{
		glEntry("GL-001", 1, 10, "100"),
		glEntry("GL-002", 1, 11, "100"),
		glEntry("GL-003", 1, 12, "100"),
	}, nil)

	entries, page, err := svc.Query(ctx, domain.UniversalJournalFilter{}, dto.PageRequest{Offset: 1, Limit: 1}, dto.OrderBy{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GL-002", entries[0].DocumentNumber)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 1, page.Offset)
	assert.True(t, page.HasMore)

	// Offset beyond the result set yields an empty window.
	entries, page, err = svc.Query(ctx, domain.UniversalJournalFilter{}, dto.PageRequest{Offset: 10, Limit: 1}, dto.OrderBy{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, page.HasMore)

	// A negative offset is clamped to the start of the result set.
	entries, page, err = svc.Query(ctx, domain.UniversalJournalFilter{}, dto.PageRequest{Offset: -5, Limit: 2}, dto.OrderBy{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "GL-003", entries[0].DocumentNumber)
	assert.Equal(t, 0, page.Offset)
	assert.True(t, page.HasMore)
}

func TestQueryOrderByAmountAscending(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	native.On("FetchEntries", mock.Anything, mock.Anything).Return([]domain.UniversalJournalEntry{
		glEntry("GL-001", 1, 10, "300"),
		glEntry("GL-002", 1, 11, "100"),
		glEntry("GL-003", 1, 12, "200"),
	}, nil)

	entries, _, err := svc.Query(ctx, domain.UniversalJournalFilter{}, dto.PageRequest{}, dto.OrderBy{Field: "amount"})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "GL-002", entries[0].DocumentNumber)
	assert.Equal(t, "GL-003", entries[1].DocumentNumber)
	assert.Equal(t, "GL-001", entries[2].DocumentNumber)
}

func TestQuerySkipsUnwantedModules(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	payables := new(MockPayablesSource)
	treasury := new(MockTreasurySource)
	svc := services.NewUniversalJournalService(native, payables, nil, nil, treasury)
	ctx := context.Background()

	filter := domain.UniversalJournalFilter{SourceModules: []domain.SourceModule{domain.SourceAP}}
	native.On("FetchEntries", mock.Anything, filter).Return(nil, nil)
	payables.On("FetchOpenItems", mock.Anything, mock.Anything).Return([]domain.PayablesOpenItem{
		apOpenItem("AP-001", 1, 11, "300"),
	}, nil)

	entries, _, err := svc.Query(ctx, filter, dto.PageRequest{}, dto.OrderBy{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SourceAP, entries[0].SourceModule)

	// Treasury is pruned by the module filter before any fetch happens.
	treasury.AssertNotCalled(t, "FetchItems", mock.Anything, mock.Anything)
}

func TestQueryAppliesResidualFilterToSubledgerRows(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	payables := new(MockPayablesSource)
	svc := services.NewUniversalJournalService(native, payables, nil, nil, nil)
	ctx := context.Background()

	cleared := apOpenItem("AP-CLEARED", 1, 10, "100")
	cleared.ClearingDocument = "CLR-1"
	open := apOpenItem("AP-OPEN", 1, 11, "200")

	filter := domain.UniversalJournalFilter{OnlyOpenItems: true}
	native.On("FetchEntries", mock.Anything, filter).Return(nil, nil)
	payables.On("FetchOpenItems", mock.Anything, mock.Anything).Return([]domain.PayablesOpenItem{cleared, open}, nil)

	entries, _, err := svc.Query(ctx, filter, dto.PageRequest{}, dto.OrderBy{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "AP-OPEN", entries[0].DocumentNumber)
}

func TestQuerySourceErrorPropagates(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	payables := new(MockPayablesSource)
	svc := services.NewUniversalJournalService(native, payables, nil, nil, nil)
	ctx := context.Background()

	sourceErr := errors.New("subledger unavailable")
	native.On("FetchEntries", mock.Anything, mock.Anything).Return(nil, nil)
	payables.On("FetchOpenItems", mock.Anything, mock.Anything).Return(nil, sourceErr)

	_, _, err := svc.Query(ctx, domain.UniversalJournalFilter{}, dto.PageRequest{}, dto.OrderBy{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sourceErr)
	assert.Contains(t, err.Error(), "payables fetch failed")
}

func TestGetByKeyNativeHit(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	want := glEntry("GL-001", 1, 10, "100")
	native.On("FindByKey", ctx, want.Key()).Return(&want, nil)

	got, err := svc.GetByKey(ctx, want.Key())
	require.NoError(t, err)
	assert.Equal(t, &want, got)
	native.AssertNotCalled(t, "FetchEntries", mock.Anything, mock.Anything)
}

func TestGetByKeyFallsBackToFederatedScan(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	payables := new(MockPayablesSource)
	svc := services.NewUniversalJournalService(native, payables, nil, nil, nil)
	ctx := context.Background()

	item := apOpenItem("AP-001", 1, 11, "300")
	key := domain.UniversalJournalKey{
		Ledger:         domain.DefaultLedger,
		CompanyCode:    "1000",
		FiscalYear:     2025,
		DocumentNumber: "AP-001",
		DocumentLine:   1,
	}
	native.On("FindByKey", ctx, key).Return(nil, apperrors.ErrNotFound)
	native.On("FetchEntries", mock.Anything, mock.Anything).Return(nil, nil)
	payables.On("FetchOpenItems", mock.Anything, mock.Anything).Return([]domain.PayablesOpenItem{item}, nil)

	got, err := svc.GetByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, got.Key())
	assert.Equal(t, domain.SourceAP, got.SourceModule)
}

func TestGetByKeyNotFound(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	key := domain.UniversalJournalKey{
		Ledger:         domain.DefaultLedger,
		CompanyCode:    "1000",
		FiscalYear:     2025,
		DocumentNumber: "MISSING",
		DocumentLine:   1,
	}
	native.On("FindByKey", ctx, key).Return(nil, apperrors.ErrNotFound)
	native.On("FetchEntries", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.GetByKey(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByKeyNativeErrorStopsLookup(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	storeErr := errors.New("connection reset")
	entry := glEntry("GL-001", 1, 10, "100")
	key := entry.Key()
	native.On("FindByKey", ctx, key).Return(nil, storeErr)

	_, err := svc.GetByKey(ctx, key)
	assert.ErrorIs(t, err, storeErr)
	native.AssertNotCalled(t, "FetchEntries", mock.Anything, mock.Anything)
}

func TestStreamBatched(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	native.On("FetchEntries", mock.Anything, mock.Anything).Return([]domain.UniversalJournalEntry{
		glEntry("GL-001", 1, 10, "100"),
		glEntry("GL-002", 1, 11, "100"),
		glEntry("GL-003", 1, 12, "100"),
		glEntry("GL-004", 1, 13, "100"),
		glEntry("GL-005", 1, 14, "100"),
	}, nil)

	out, errc := svc.StreamBatched(ctx, domain.UniversalJournalFilter{}, dto.OrderBy{}, 2)

	var batchSizes []int
	var total int
	for batch := range out {
		batchSizes = append(batchSizes, len(batch))
		total += len(batch)
	}
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
	assert.Equal(t, 5, total)
	assert.NoError(t, <-errc)
}

func TestStreamBatchedPropagatesError(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	fetchErr := errors.New("fetch failed")
	native.On("FetchEntries", mock.Anything, mock.Anything).Return(nil, fetchErr)

	out, errc := svc.StreamBatched(ctx, domain.UniversalJournalFilter{}, dto.OrderBy{}, 2)

	for range out {
		t.Fatal("no batches expected on fetch failure")
	}
	assert.ErrorIs(t, <-errc, fetchErr)
}

func TestAggregate(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	debitA := glEntry("GL-001", 1, 10, "100")
	debitA.CostCenter = "CC-A"
	creditA := glEntry("GL-001", 2, 10, "40")
	creditA.CostCenter = "CC-A"
	creditA.DebitCredit = domain.Credit
	debitB := glEntry("GL-002", 1, 11, "25")
	debitB.CostCenter = "CC-B"

	native.On("FetchEntries", mock.Anything, mock.Anything).Return([]domain.UniversalJournalEntry{debitA, creditA, debitB}, nil)

	rows, err := svc.Aggregate(ctx, domain.UniversalJournalFilter{}, []string{"cost_center"}, "amount")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Rows come back sorted by dimension value; the measure sums regardless of
	// posting direction.
	assert.Equal(t, "CC-A", rows[0].DimensionValue)
	assert.True(t, decimal.RequireFromString("140").Equal(rows[0].TotalAmount))
	assert.Equal(t, 2, rows[0].RecordCount)
	assert.Equal(t, "CC-B", rows[1].DimensionValue)
	assert.True(t, decimal.RequireFromString("25").Equal(rows[1].TotalAmount))
	assert.Equal(t, 1, rows[1].RecordCount)
}

func TestAggregateConservesTotals(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	debit := glEntry("GL-001", 1, 10, "100")
	debit.GLAccount = "400000"
	credit := glEntry("GL-001", 2, 10, "100")
	credit.GLAccount = "160000"
	credit.DebitCredit = domain.Credit

	entries := []domain.UniversalJournalEntry{debit, credit}
	native.On("FetchEntries", mock.Anything, mock.Anything).Return(entries, nil)

	rows, err := svc.Aggregate(ctx, domain.UniversalJournalFilter{}, []string{"gl_account"}, "amount")
	require.NoError(t, err)

	// Bucket totals and counts add up to the totals over all contributing entries.
	bucketSum := decimal.Zero
	recordCount := 0
	for _, row := range rows {
		bucketSum = bucketSum.Add(row.TotalAmount)
		recordCount += row.RecordCount
	}
	entrySum := decimal.Zero
	for i := range entries {
		entrySum = entrySum.Add(entries[i].Amount)
	}
	assert.True(t, entrySum.Equal(bucketSum))
	assert.Equal(t, len(entries), recordCount)
}

func TestAggregateFallbackBucket(t *testing.T) {
	native := new(MockUniversalLedgerStore)
	svc := services.NewUniversalJournalService(native, nil, nil, nil, nil)
	ctx := context.Background()

	native.On("FetchEntries", mock.Anything, mock.Anything).Return([]domain.UniversalJournalEntry{
		glEntry("GL-001", 1, 10, "100"),
		glEntry("GL-002", 1, 11, "50"),
	}, nil)

	rows, err := svc.Aggregate(ctx, domain.UniversalJournalFilter{}, nil, "amount")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ALL", rows[0].DimensionValue)
	assert.True(t, decimal.RequireFromString("150").Equal(rows[0].TotalAmount))
	assert.Equal(t, 2, rows[0].RecordCount)
}
