package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebitCredit indicates whether a line item is a Debit or a Credit.
// Amounts are stored as non-negative magnitudes; direction lives here, not in sign.
type DebitCredit string

const (
	Debit  DebitCredit = "DEBIT"
	Credit DebitCredit = "CREDIT"
)

// ExternalCode returns the single-character posting code ("S" debit, "H" credit).
func (d DebitCredit) ExternalCode() string {
	if d == Credit {
		return "H"
	}
	return "S"
}

// DebitCreditFromExternalCode decodes the external posting code. Anything that is
// not "H" is treated as a debit, keeping the decode permissive like the special-GL
// indicator.
func DebitCreditFromExternalCode(code string) DebitCredit {
	if code == "H" {
		return Credit
	}
	return Debit
}

// Flip returns the opposite direction. Used when building reversal lines.
func (d DebitCredit) Flip() DebitCredit {
	if d == Debit {
		return Credit
	}
	return Debit
}

// LedgerType distinguishes the leading valuation ledger from parallel ones.
type LedgerType string

const (
	LedgerLeading    LedgerType = "LEADING"
	LedgerNonLeading LedgerType = "NON_LEADING"
	LedgerExtension  LedgerType = "EXTENSION"
)

// DefaultLedger is the code of the leading ledger assigned when none is given.
const DefaultLedger = "0L"

// PaymentExecution carries the payment-run instructions attached to a line.
type PaymentExecution struct {
	PaymentMethod    string     `json:"paymentMethod"`
	HouseBank        string     `json:"houseBank"`
	PartnerBankType  string     `json:"partnerBankType"`
	PaymentBlock     string     `json:"paymentBlock"`
	BaselineDate     *time.Time `json:"baselineDate,omitempty"`
	PaymentReference string     `json:"paymentReference"`
	PaymentPriority  int        `json:"paymentPriority"` // 1 (highest) to 9
}

// PaymentTermsDetail describes the two-tier cash discount agreement for a line.
type PaymentTermsDetail struct {
	BaselineDate     *time.Time      `json:"baselineDate,omitempty"`
	DiscountDays1    int             `json:"discountDays1"`
	DiscountPercent1 decimal.Decimal `json:"discountPercent1"`
	DiscountDays2    int             `json:"discountDays2"`
	DiscountPercent2 decimal.Decimal `json:"discountPercent2"`
	NetDays          int             `json:"netDays"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
}

// InvoiceReference links a line back to the invoice document it follows on from.
type InvoiceReference struct {
	DocumentNumber string `json:"documentNumber"`
	FiscalYear     int    `json:"fiscalYear"`
	LineNumber     int    `json:"lineNumber"`
	DocumentType   string `json:"documentType"`
	CompanyCode    string `json:"companyCode"`
}

// DunningDetail carries the dunning state of a receivable line.
type DunningDetail struct {
	DunningKey     string          `json:"dunningKey"`
	DunningBlock   string          `json:"dunningBlock"`
	LastDunnedDate *time.Time      `json:"lastDunnedDate,omitempty"`
	DunningDate    *time.Time      `json:"dunningDate,omitempty"`
	DunningLevel   int             `json:"dunningLevel"`
	DunningArea    string          `json:"dunningArea"`
	GraceDays      int             `json:"graceDays"`
	DunningCharges decimal.Decimal `json:"dunningCharges"`
	DunningClerk   string          `json:"dunningClerk"`
}

// CurrencyAmount pairs a shadow amount with the currency it is expressed in.
type CurrencyAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// LineItem is one posting line, owned exclusively by a single JournalEntry.
// LineNumber is 1-based and unique within the entry; it is what reversal text
// and invoice references point at.
type LineItem struct {
	LineItemID  string      `json:"lineItemID"`
	LineNumber  int         `json:"lineNumber"`
	AccountID   string      `json:"accountID"`
	DebitCredit DebitCredit `json:"debitCredit"`

	Amount       decimal.Decimal  `json:"amount"`                 // document currency, non-negative
	LocalAmount  decimal.Decimal  `json:"localAmount"`            // company-code currency
	Ledger       string           `json:"ledger"`                 // defaults to DefaultLedger
	LedgerType   LedgerType       `json:"ledgerType"`
	LedgerAmount *decimal.Decimal `json:"ledgerAmount,omitempty"` // non-leading ledgers only

	SpecialGLIndicator SpecialGLType `json:"specialGLIndicator"`
	ItemText           string        `json:"itemText"`

	// Optional reporting dimensions. Empty means unassigned.
	CostCenter            string `json:"costCenter,omitempty"`
	ProfitCenter          string `json:"profitCenter,omitempty"`
	BusinessArea          string `json:"businessArea,omitempty"`
	ControllingArea       string `json:"controllingArea,omitempty"`
	FinancialArea         string `json:"financialArea,omitempty"`
	AccountAssignment     string `json:"accountAssignment,omitempty"`
	BusinessPartner       string `json:"businessPartner,omitempty"`
	BusinessPartnerType   string `json:"businessPartnerType,omitempty"`
	TransactionTypeCode   string `json:"transactionTypeCode,omitempty"`
	TradingPartnerCompany string `json:"tradingPartnerCompany,omitempty"`

	PaymentExecution   *PaymentExecution   `json:"paymentExecution,omitempty"`
	PaymentTermsDetail *PaymentTermsDetail `json:"paymentTermsDetail,omitempty"`
	InvoiceReference   *InvoiceReference   `json:"invoiceReference,omitempty"`
	DunningDetail      *DunningDetail      `json:"dunningDetail,omitempty"`

	// Parallel valuation shadow amounts.
	ObjectCurrencyAmount       *CurrencyAmount `json:"objectCurrencyAmount,omitempty"`
	ProfitCenterCurrencyAmount *CurrencyAmount `json:"profitCenterCurrencyAmount,omitempty"`
	GroupCurrencyAmount        *CurrencyAmount `json:"groupCurrencyAmount,omitempty"`
}

// normalized returns a copy with ledger defaults applied.
func (li LineItem) normalized() LineItem {
	if li.Ledger == "" {
		li.Ledger = DefaultLedger
	}
	if li.LedgerType == "" {
		li.LedgerType = LedgerLeading
	}
	if li.SpecialGLIndicator == "" {
		li.SpecialGLIndicator = SpecialGLNormal
	}
	return li
}
