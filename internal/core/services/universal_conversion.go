package services

import (
	"strconv"
	"time"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

// Fixed source-to-canonical mappings. They are lossy where the source has no
// analog for a canonical column: such fields stay unset rather than guessed.

// payablesToUniversal maps an AP open item. Vendor open items are always the
// credit side of the invoice posting: account type Vendor, posting key "31".
func payablesToUniversal(item domain.PayablesOpenItem) domain.UniversalJournalEntry {
	return domain.UniversalJournalEntry{
		Ledger:             domain.DefaultLedger,
		CompanyCode:        item.CompanyCode,
		FiscalYear:         item.FiscalYear,
		DocumentNumber:     item.DocumentNumber,
		DocumentLine:       item.DocumentLine,
		DocumentType:       "KR",
		PostingDate:        item.PostingDate,
		DocumentDate:       item.InvoiceDate,
		Currency:           item.Currency,
		Reference:          item.Reference,
		AccountType:        domain.AccountTypeVendor,
		PostingKey:         "31",
		DebitCredit:        domain.Credit,
		Amount:             item.Amount,
		LocalAmount:        item.LocalAmount,
		ItemText:           item.ItemText,
		BusinessPartner:    item.VendorID,
		SpecialGLIndicator: domain.SpecialGLFromExternalCode(item.SpecialGLCode),
		ClearingDocument:   item.ClearingDocument,
		ClearingDate:       item.ClearingDate,
		SourceModule:       domain.SourceAP,
		ExtensionFields: map[string]string{
			"vendorID":           item.VendorID,
			"dueDate":            item.DueDate.Format(time.RFC3339),
			"paymentBlockReason": item.PaymentBlockReason,
		},
	}
}

// receivablesToUniversal maps an AR open item: account type Customer, posting
// key "01", debit side.
func receivablesToUniversal(item domain.ReceivablesOpenItem) domain.UniversalJournalEntry {
	return domain.UniversalJournalEntry{
		Ledger:             domain.DefaultLedger,
		CompanyCode:        item.CompanyCode,
		FiscalYear:         item.FiscalYear,
		DocumentNumber:     item.DocumentNumber,
		DocumentLine:       item.DocumentLine,
		DocumentType:       "DR",
		PostingDate:        item.PostingDate,
		DocumentDate:       item.InvoiceDate,
		Currency:           item.Currency,
		Reference:          item.Reference,
		AccountType:        domain.AccountTypeCustomer,
		PostingKey:         "01",
		DebitCredit:        domain.Debit,
		Amount:             item.Amount,
		LocalAmount:        item.LocalAmount,
		ItemText:           item.ItemText,
		BusinessPartner:    item.CustomerID,
		SpecialGLIndicator: domain.SpecialGLFromExternalCode(item.SpecialGLCode),
		ClearingDocument:   item.ClearingDocument,
		ClearingDate:       item.ClearingDate,
		SourceModule:       domain.SourceAR,
		ExtensionFields: map[string]string{
			"customerID":   item.CustomerID,
			"dueDate":      item.DueDate.Format(time.RFC3339),
			"dunningLevel": strconv.Itoa(item.DunningLevel),
		},
	}
}

// allocationToUniversal maps one side of a CO allocation run. Senders are
// credited (posting key "50"), receivers debited (posting key "40").
func allocationToUniversal(line domain.AllocationLine) domain.UniversalJournalEntry {
	postingKey := "40"
	debitCredit := domain.Debit
	if line.IsSender {
		postingKey = "50"
		debitCredit = domain.Credit
	}
	return domain.UniversalJournalEntry{
		Ledger:         domain.DefaultLedger,
		CompanyCode:    line.CompanyCode,
		FiscalYear:     line.FiscalYear,
		DocumentNumber: line.DocumentNumber,
		DocumentLine:   line.DocumentLine,
		DocumentType:   "CO",
		PostingDate:    line.PostingDate,
		DocumentDate:   line.PostingDate,
		Currency:       line.Currency,
		GLAccount:      line.CostElement,
		AccountType:    domain.AccountTypeGL,
		PostingKey:     postingKey,
		DebitCredit:    debitCredit,
		Amount:         line.Amount,
		LocalAmount:    line.Amount,
		CostCenter:     line.CostCenter,
		SourceModule:   domain.SourceCO,
		ExtensionFields: map[string]string{
			"runID":       line.RunID,
			"cycleName":   line.CycleName,
			"segmentName": line.SegmentName,
		},
	}
}

// treasuryToUniversal maps a TR bank-statement or payment line. Treasury
// amounts arrive signed; the canonical record carries the magnitude and the
// direction separately.
func treasuryToUniversal(item domain.TreasuryItem) domain.UniversalJournalEntry {
	postingKey := "40"
	debitCredit := domain.Debit
	amount := item.Amount
	if amount.IsNegative() {
		postingKey = "50"
		debitCredit = domain.Credit
		amount = amount.Abs()
	}
	return domain.UniversalJournalEntry{
		Ledger:         domain.DefaultLedger,
		CompanyCode:    item.CompanyCode,
		FiscalYear:     item.FiscalYear,
		DocumentNumber: item.DocumentNumber,
		DocumentLine:   item.DocumentLine,
		DocumentType:   "TR",
		PostingDate:    item.PostingDate,
		DocumentDate:   item.ValueDate,
		Currency:       item.Currency,
		Reference:      item.StatementRef,
		GLAccount:      item.BankAccount,
		AccountType:    domain.AccountTypeGL,
		PostingKey:     postingKey,
		DebitCredit:    debitCredit,
		Amount:         amount,
		LocalAmount:    amount,
		ItemText:       item.ItemText,
		SourceModule:   domain.SourceTR,
		ExtensionFields: map[string]string{
			"kind":         string(item.Kind),
			"counterparty": item.Counterparty,
			"valueDate":    item.ValueDate.Format(time.RFC3339),
		},
	}
}
