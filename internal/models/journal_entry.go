package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a persisted journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Parked   EntryStatus = "PARKED"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the persisted header row of one accounting document.
type JournalEntry struct {
	JournalEntryID  string      `json:"journalEntryID"` // Primary Key (UUID)
	DocumentNumber  *string     `json:"documentNumber"` // Nullable until posted
	CompanyCode     string      `json:"companyCode"`
	FiscalYear      int         `json:"fiscalYear"`
	PostingDate     time.Time   `json:"postingDate"`
	DocumentDate    time.Time   `json:"documentDate"`
	Currency        string      `json:"currency"`
	LocalCurrency   string      `json:"localCurrency"`
	GroupCurrency   string      `json:"groupCurrency"`
	ChartOfAccounts string      `json:"chartOfAccounts"`
	Status          EntryStatus `json:"status"`
	Reference       string      `json:"reference"`
	TenantID        string      `json:"tenantID"`
	LedgerGroup     string      `json:"ledgerGroup"`
	DefaultLedger   string      `json:"defaultLedger"`
	PostedAt        *time.Time  `json:"postedAt"` // Nullable until posted
	AuditFields
}

// JournalEntryLine is one persisted posting line belonging to a journal entry.
// The rarely populated substructures (payment execution, payment terms, invoice
// reference, dunning, shadow currency amounts) live together in one JSONB
// details column rather than as dozens of mostly-null columns.
type JournalEntryLine struct {
	LineItemID     string `json:"lineItemID"` // Primary Key (UUID)
	JournalEntryID string `json:"journalEntryID"`
	LineNumber     int    `json:"lineNumber"`
	AccountID      string `json:"accountID"`
	DebitCredit    string `json:"debitCredit"`

	Amount       decimal.Decimal  `json:"amount"`
	LocalAmount  decimal.Decimal  `json:"localAmount"`
	Ledger       string           `json:"ledger"`
	LedgerType   string           `json:"ledgerType"`
	LedgerAmount *decimal.Decimal `json:"ledgerAmount"`

	SpecialGLIndicator string `json:"specialGLIndicator"` // external single-character code
	ItemText           string `json:"itemText"`

	CostCenter            string `json:"costCenter"`
	ProfitCenter          string `json:"profitCenter"`
	BusinessArea          string `json:"businessArea"`
	ControllingArea       string `json:"controllingArea"`
	FinancialArea         string `json:"financialArea"`
	AccountAssignment     string `json:"accountAssignment"`
	BusinessPartner       string `json:"businessPartner"`
	BusinessPartnerType   string `json:"businessPartnerType"`
	TransactionTypeCode   string `json:"transactionTypeCode"`
	TradingPartnerCompany string `json:"tradingPartnerCompany"`

	Details json.RawMessage `json:"details"` // JSONB, nullable
}
