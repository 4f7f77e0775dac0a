package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// UniversalJournalEntry is one persisted canonical posting line in the native
// universal ledger store. The composite natural key (ledger, company code,
// fiscal year, document number, document line) is the primary key.
type UniversalJournalEntry struct {
	Ledger         string `json:"ledger"`
	CompanyCode    string `json:"companyCode"`
	FiscalYear     int    `json:"fiscalYear"`
	DocumentNumber string `json:"documentNumber"`
	DocumentLine   int    `json:"documentLine"`

	DocumentType string    `json:"documentType"`
	PostingDate  time.Time `json:"postingDate"`
	DocumentDate time.Time `json:"documentDate"`
	Currency     string    `json:"currency"`
	Reference    string    `json:"reference"`
	HeaderText   string    `json:"headerText"`

	GLAccount   string          `json:"glAccount"`
	AccountType string          `json:"accountType"`
	PostingKey  string          `json:"postingKey"`
	DebitCredit string          `json:"debitCredit"`
	Amount      decimal.Decimal `json:"amount"`
	LocalAmount decimal.Decimal `json:"localAmount"`
	ItemText    string          `json:"itemText"`
	TaxCode     string          `json:"taxCode"`

	CostCenter      string `json:"costCenter"`
	ProfitCenter    string `json:"profitCenter"`
	Segment         string `json:"segment"`
	BusinessArea    string `json:"businessArea"`
	BusinessPartner string `json:"businessPartner"`

	SpecialGLIndicator string `json:"specialGLIndicator"` // external single-character code

	ClearingDocument string     `json:"clearingDocument"`
	ClearingDate     *time.Time `json:"clearingDate"`

	SourceModule string `json:"sourceModule"`

	ExtensionFields json.RawMessage `json:"extensionFields"` // JSONB, nullable
}
