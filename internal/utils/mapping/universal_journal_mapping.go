package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/modulerp/ledgercore/internal/core/domain"
	"github.com/modulerp/ledgercore/internal/models"
)

// ToModelUniversalJournalEntry converts a canonical entry to its persisted row shape.
func ToModelUniversalJournalEntry(d domain.UniversalJournalEntry) (models.UniversalJournalEntry, error) {
	m := models.UniversalJournalEntry{
		Ledger:             d.Ledger,
		CompanyCode:        d.CompanyCode,
		FiscalYear:         d.FiscalYear,
		DocumentNumber:     d.DocumentNumber,
		DocumentLine:       d.DocumentLine,
		DocumentType:       d.DocumentType,
		PostingDate:        d.PostingDate,
		DocumentDate:       d.DocumentDate,
		Currency:           d.Currency,
		Reference:          d.Reference,
		HeaderText:         d.HeaderText,
		GLAccount:          d.GLAccount,
		AccountType:        string(d.AccountType),
		PostingKey:         d.PostingKey,
		DebitCredit:        string(d.DebitCredit),
		Amount:             d.Amount,
		LocalAmount:        d.LocalAmount,
		ItemText:           d.ItemText,
		TaxCode:            d.TaxCode,
		CostCenter:         d.CostCenter,
		ProfitCenter:       d.ProfitCenter,
		Segment:            d.Segment,
		BusinessArea:       d.BusinessArea,
		BusinessPartner:    d.BusinessPartner,
		SpecialGLIndicator: d.SpecialGLIndicator.ExternalCode(),
		ClearingDocument:   d.ClearingDocument,
		ClearingDate:       d.ClearingDate,
		SourceModule:       string(d.SourceModule),
	}
	if len(d.ExtensionFields) > 0 {
		raw, err := json.Marshal(d.ExtensionFields)
		if err != nil {
			return models.UniversalJournalEntry{}, fmt.Errorf("failed to marshal extension fields for document %s: %w", d.DocumentNumber, err)
		}
		m.ExtensionFields = raw
	}
	return m, nil
}

// ToDomainUniversalJournalEntry converts a persisted row back to the canonical entry.
func ToDomainUniversalJournalEntry(m models.UniversalJournalEntry) (domain.UniversalJournalEntry, error) {
	d := domain.UniversalJournalEntry{
		Ledger:             m.Ledger,
		CompanyCode:        m.CompanyCode,
		FiscalYear:         m.FiscalYear,
		DocumentNumber:     m.DocumentNumber,
		DocumentLine:       m.DocumentLine,
		DocumentType:       m.DocumentType,
		PostingDate:        m.PostingDate,
		DocumentDate:       m.DocumentDate,
		Currency:           m.Currency,
		Reference:          m.Reference,
		HeaderText:         m.HeaderText,
		GLAccount:          m.GLAccount,
		AccountType:        domain.AccountType(m.AccountType),
		PostingKey:         m.PostingKey,
		DebitCredit:        domain.DebitCredit(m.DebitCredit),
		Amount:             m.Amount,
		LocalAmount:        m.LocalAmount,
		ItemText:           m.ItemText,
		TaxCode:            m.TaxCode,
		CostCenter:         m.CostCenter,
		ProfitCenter:       m.ProfitCenter,
		Segment:            m.Segment,
		BusinessArea:       m.BusinessArea,
		BusinessPartner:    m.BusinessPartner,
		SpecialGLIndicator: domain.SpecialGLFromExternalCode(m.SpecialGLIndicator),
		ClearingDocument:   m.ClearingDocument,
		ClearingDate:       m.ClearingDate,
		SourceModule:       domain.SourceModule(m.SourceModule),
	}
	if len(m.ExtensionFields) > 0 {
		if err := json.Unmarshal(m.ExtensionFields, &d.ExtensionFields); err != nil {
			return domain.UniversalJournalEntry{}, fmt.Errorf("failed to unmarshal extension fields for document %s: %w", m.DocumentNumber, err)
		}
	}
	return d, nil
}
