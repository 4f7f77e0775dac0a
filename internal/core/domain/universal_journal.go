package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceModule tags the subsystem a universal journal entry originated from.
type SourceModule string

const (
	SourceGL          SourceModule = "GL" // general ledger
	SourceAP          SourceModule = "AP" // accounts payable
	SourceAR          SourceModule = "AR" // accounts receivable
	SourceAA          SourceModule = "AA" // asset accounting
	SourceMM          SourceModule = "MM" // materials management
	SourceSD          SourceModule = "SD" // sales and distribution
	SourceCO          SourceModule = "CO" // controlling / cost allocation
	SourceTR          SourceModule = "TR" // treasury
	SourceUnspecified SourceModule = "UNSPECIFIED"
)

// AccountType classifies the account a universal journal line posts to.
type AccountType string

const (
	AccountTypeGL       AccountType = "GL"
	AccountTypeVendor   AccountType = "VENDOR"
	AccountTypeCustomer AccountType = "CUSTOMER"
	AccountTypeAsset    AccountType = "ASSET"
)

// UniversalJournalKey is the composite natural key of a universal journal entry.
// No cross-source foreign keys exist; this tuple is the only correlation
// mechanism between sources.
type UniversalJournalKey struct {
	Ledger         string `json:"ledger"`
	CompanyCode    string `json:"companyCode"`
	FiscalYear     int    `json:"fiscalYear"`
	DocumentNumber string `json:"documentNumber"`
	DocumentLine   int    `json:"documentLine"`
}

// UniversalJournalEntry is the flat, source-agnostic record representing one
// posting line from any module. It is produced transiently at query time from
// each source's native records, or persisted directly when a module chooses
// eager denormalization. Fields with no analog in a source stay unset.
type UniversalJournalEntry struct {
	Ledger         string `json:"ledger"`
	CompanyCode    string `json:"companyCode"`
	FiscalYear     int    `json:"fiscalYear"`
	DocumentNumber string `json:"documentNumber"`
	DocumentLine   int    `json:"documentLine"`

	DocumentType string    `json:"documentType,omitempty"`
	PostingDate  time.Time `json:"postingDate"`
	DocumentDate time.Time `json:"documentDate"`
	Currency     string    `json:"currency,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	HeaderText   string    `json:"headerText,omitempty"`

	GLAccount   string          `json:"glAccount,omitempty"`
	AccountType AccountType     `json:"accountType,omitempty"`
	PostingKey  string          `json:"postingKey,omitempty"`
	DebitCredit DebitCredit     `json:"debitCredit"`
	Amount      decimal.Decimal `json:"amount"`
	LocalAmount decimal.Decimal `json:"localAmount"`
	ItemText    string          `json:"itemText,omitempty"`
	TaxCode     string          `json:"taxCode,omitempty"`

	CostCenter      string `json:"costCenter,omitempty"`
	ProfitCenter    string `json:"profitCenter,omitempty"`
	Segment         string `json:"segment,omitempty"`
	BusinessArea    string `json:"businessArea,omitempty"`
	BusinessPartner string `json:"businessPartner,omitempty"`

	SpecialGLIndicator SpecialGLType `json:"specialGLIndicator,omitempty"`

	ClearingDocument string     `json:"clearingDocument,omitempty"`
	ClearingDate     *time.Time `json:"clearingDate,omitempty"`

	SourceModule SourceModule `json:"sourceModule"`

	// ExtensionFields carries source-specific values with no canonical column.
	ExtensionFields map[string]string `json:"extensionFields,omitempty"`
}

// Key returns the composite natural key of the entry.
func (e *UniversalJournalEntry) Key() UniversalJournalKey {
	return UniversalJournalKey{
		Ledger:         e.Ledger,
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		DocumentNumber: e.DocumentNumber,
		DocumentLine:   e.DocumentLine,
	}
}

// IsOpenItem reports whether the line is still uncleared.
func (e *UniversalJournalEntry) IsOpenItem() bool {
	return e.ClearingDocument == ""
}

// AggregationRow is one bucket of a dimensional group-by-sum.
type AggregationRow struct {
	DimensionValue string          `json:"dimensionValue"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	RecordCount    int             `json:"recordCount"`
}
