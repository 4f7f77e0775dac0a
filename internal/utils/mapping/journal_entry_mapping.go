package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/modulerp/ledgercore/internal/core/domain"
	"github.com/modulerp/ledgercore/internal/models"
)

// lineItemDetails is the JSONB payload holding the sparse substructures of a
// line. Absent substructures are omitted entirely so an all-empty line persists
// a NULL details column.
type lineItemDetails struct {
	PaymentExecution           *domain.PaymentExecution   `json:"paymentExecution,omitempty"`
	PaymentTermsDetail         *domain.PaymentTermsDetail `json:"paymentTermsDetail,omitempty"`
	InvoiceReference           *domain.InvoiceReference   `json:"invoiceReference,omitempty"`
	DunningDetail              *domain.DunningDetail      `json:"dunningDetail,omitempty"`
	ObjectCurrencyAmount       *domain.CurrencyAmount     `json:"objectCurrencyAmount,omitempty"`
	ProfitCenterCurrencyAmount *domain.CurrencyAmount     `json:"profitCenterCurrencyAmount,omitempty"`
	GroupCurrencyAmount        *domain.CurrencyAmount     `json:"groupCurrencyAmount,omitempty"`
}

func (d lineItemDetails) isEmpty() bool {
	return d.PaymentExecution == nil && d.PaymentTermsDetail == nil &&
		d.InvoiceReference == nil && d.DunningDetail == nil &&
		d.ObjectCurrencyAmount == nil && d.ProfitCenterCurrencyAmount == nil &&
		d.GroupCurrencyAmount == nil
}

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:  d.JournalEntryID,
		DocumentNumber:  d.DocumentNumber,
		CompanyCode:     d.CompanyCode,
		FiscalYear:      d.FiscalYear,
		PostingDate:     d.PostingDate,
		DocumentDate:    d.DocumentDate,
		Currency:        d.Currency,
		LocalCurrency:   d.LocalCurrency,
		GroupCurrency:   d.GroupCurrency,
		ChartOfAccounts: d.ChartOfAccounts,
		Status:          models.EntryStatus(d.Status),
		Reference:       d.Reference,
		TenantID:        d.TenantID,
		LedgerGroup:     d.LedgerGroup,
		DefaultLedger:   d.DefaultLedger,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry header back to the domain.
// Lines are loaded and attached separately.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:  m.JournalEntryID,
		DocumentNumber:  m.DocumentNumber,
		CompanyCode:     m.CompanyCode,
		FiscalYear:      m.FiscalYear,
		PostingDate:     m.PostingDate,
		DocumentDate:    m.DocumentDate,
		Currency:        m.Currency,
		LocalCurrency:   m.LocalCurrency,
		GroupCurrency:   m.GroupCurrency,
		ChartOfAccounts: m.ChartOfAccounts,
		Status:          domain.EntryStatus(m.Status),
		Reference:       m.Reference,
		TenantID:        m.TenantID,
		LedgerGroup:     m.LedgerGroup,
		DefaultLedger:   m.DefaultLedger,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain LineItem to its persisted row shape.
func ToModelJournalEntryLine(journalEntryID string, li domain.LineItem) (models.JournalEntryLine, error) {
	m := models.JournalEntryLine{
		LineItemID:            li.LineItemID,
		JournalEntryID:        journalEntryID,
		LineNumber:            li.LineNumber,
		AccountID:             li.AccountID,
		DebitCredit:           string(li.DebitCredit),
		Amount:                li.Amount,
		LocalAmount:           li.LocalAmount,
		Ledger:                li.Ledger,
		LedgerType:            string(li.LedgerType),
		LedgerAmount:          li.LedgerAmount,
		SpecialGLIndicator:    li.SpecialGLIndicator.ExternalCode(),
		ItemText:              li.ItemText,
		CostCenter:            li.CostCenter,
		ProfitCenter:          li.ProfitCenter,
		BusinessArea:          li.BusinessArea,
		ControllingArea:       li.ControllingArea,
		FinancialArea:         li.FinancialArea,
		AccountAssignment:     li.AccountAssignment,
		BusinessPartner:       li.BusinessPartner,
		BusinessPartnerType:   li.BusinessPartnerType,
		TransactionTypeCode:   li.TransactionTypeCode,
		TradingPartnerCompany: li.TradingPartnerCompany,
	}

	details := lineItemDetails{
		PaymentExecution:           li.PaymentExecution,
		PaymentTermsDetail:         li.PaymentTermsDetail,
		InvoiceReference:           li.InvoiceReference,
		DunningDetail:              li.DunningDetail,
		ObjectCurrencyAmount:       li.ObjectCurrencyAmount,
		ProfitCenterCurrencyAmount: li.ProfitCenterCurrencyAmount,
		GroupCurrencyAmount:        li.GroupCurrencyAmount,
	}
	if !details.isEmpty() {
		raw, err := json.Marshal(details)
		if err != nil {
			return models.JournalEntryLine{}, fmt.Errorf("failed to marshal line item details for line %s: %w", li.LineItemID, err)
		}
		m.Details = raw
	}
	return m, nil
}

// ToDomainLineItem converts a persisted line row back to the domain.
func ToDomainLineItem(m models.JournalEntryLine) (domain.LineItem, error) {
	li := domain.LineItem{
		LineItemID:            m.LineItemID,
		LineNumber:            m.LineNumber,
		AccountID:             m.AccountID,
		DebitCredit:           domain.DebitCredit(m.DebitCredit),
		Amount:                m.Amount,
		LocalAmount:           m.LocalAmount,
		Ledger:                m.Ledger,
		LedgerType:            domain.LedgerType(m.LedgerType),
		LedgerAmount:          m.LedgerAmount,
		SpecialGLIndicator:    domain.SpecialGLFromExternalCode(m.SpecialGLIndicator),
		ItemText:              m.ItemText,
		CostCenter:            m.CostCenter,
		ProfitCenter:          m.ProfitCenter,
		BusinessArea:          m.BusinessArea,
		ControllingArea:       m.ControllingArea,
		FinancialArea:         m.FinancialArea,
		AccountAssignment:     m.AccountAssignment,
		BusinessPartner:       m.BusinessPartner,
		BusinessPartnerType:   m.BusinessPartnerType,
		TransactionTypeCode:   m.TransactionTypeCode,
		TradingPartnerCompany: m.TradingPartnerCompany,
	}

	if len(m.Details) > 0 {
		var details lineItemDetails
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return domain.LineItem{}, fmt.Errorf("failed to unmarshal line item details for line %s: %w", m.LineItemID, err)
		}
		li.PaymentExecution = details.PaymentExecution
		li.PaymentTermsDetail = details.PaymentTermsDetail
		li.InvoiceReference = details.InvoiceReference
		li.DunningDetail = details.DunningDetail
		li.ObjectCurrencyAmount = details.ObjectCurrencyAmount
		li.ProfitCenterCurrencyAmount = details.ProfitCenterCurrencyAmount
		li.GroupCurrencyAmount = details.GroupCurrencyAmount
	}
	return li, nil
}

// ToDomainLineItemSlice converts a slice of persisted line rows back to the domain.
func ToDomainLineItemSlice(ms []models.JournalEntryLine) ([]domain.LineItem, error) {
	lis := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		li, err := ToDomainLineItem(m)
		if err != nil {
			return nil, err
		}
		lis[i] = li
	}
	return lis, nil
}
