package dto

import (
	"time"

	"github.com/modulerp/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one posting line in a create/update request.
type CreateLineItemRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	DebitCredit string          `json:"debitCredit" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	LocalAmount decimal.Decimal `json:"localAmount"`
	Ledger      string          `json:"ledger"`
	LedgerType  string          `json:"ledgerType" binding:"omitempty,oneof=LEADING NON_LEADING EXTENSION"`

	SpecialGLCode string `json:"specialGLCode"` // external indicator; unknown codes decode to normal
	ItemText      string `json:"itemText"`

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

	PaymentExecution   *domain.PaymentExecution   `json:"paymentExecution,omitempty"`
	PaymentTermsDetail *domain.PaymentTermsDetail `json:"paymentTermsDetail,omitempty"`
	InvoiceReference   *domain.InvoiceReference   `json:"invoiceReference,omitempty"`
	DunningDetail      *domain.DunningDetail      `json:"dunningDetail,omitempty"`
}

// CreateJournalEntryRequest creates a new Draft entry.
type CreateJournalEntryRequest struct {
	CompanyCode   string                  `json:"companyCode" binding:"required,company_code"`
	FiscalYear    int                     `json:"fiscalYear" binding:"required"`
	PostingDate   time.Time               `json:"postingDate" binding:"required"`
	DocumentDate  time.Time               `json:"documentDate" binding:"required"`
	Currency      string                  `json:"currency" binding:"required,len=3"`
	LocalCurrency string                  `json:"localCurrency" binding:"omitempty,len=3"`
	Reference     string                  `json:"reference"`
	LedgerGroup   string                  `json:"ledgerGroup"`
	Lines         []CreateLineItemRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest updates a Draft or Parked entry. Nil fields are left
// untouched; a non-nil empty line list is rejected.
type UpdateJournalEntryRequest struct {
	PostingDate  *time.Time               `json:"postingDate,omitempty"`
	DocumentDate *time.Time               `json:"documentDate,omitempty"`
	Reference    *string                  `json:"reference,omitempty"`
	Lines        *[]CreateLineItemRequest `json:"lines,omitempty"`
}

// ReverseJournalEntryRequest reverses a posted entry.
type ReverseJournalEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
}

// PostJournalEntryRequest posts an entry, optionally with an explicit document number.
type PostJournalEntryRequest struct {
	DocumentNumber string `json:"documentNumber"`
}

// ListJournalEntriesParams holds parameters for listing journal entries.
type ListJournalEntriesParams struct {
	CompanyCode string  `form:"companyCode" binding:"required,company_code"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// LineItemResponse is the wire shape of one posting line.
type LineItemResponse struct {
	LineItemID    string          `json:"lineItemID"`
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	DebitCredit   string          `json:"debitCredit"`
	Amount        decimal.Decimal `json:"amount"`
	LocalAmount   decimal.Decimal `json:"localAmount"`
	Ledger        string          `json:"ledger"`
	LedgerType    string          `json:"ledgerType"`
	SpecialGLCode string          `json:"specialGLCode"`
	ItemText      string          `json:"itemText"`
	CostCenter    string          `json:"costCenter,omitempty"`
	ProfitCenter  string          `json:"profitCenter,omitempty"`
}

// JournalEntryResponse is the wire shape of a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string             `json:"journalEntryID"`
	DocumentNumber *string            `json:"documentNumber,omitempty"`
	CompanyCode    string             `json:"companyCode"`
	FiscalYear     int                `json:"fiscalYear"`
	PostingDate    time.Time          `json:"postingDate"`
	DocumentDate   time.Time          `json:"documentDate"`
	Currency       string             `json:"currency"`
	Status         string             `json:"status"`
	Reference      string             `json:"reference"`
	PostedAt       *time.Time         `json:"postedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	Lines          []LineItemResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse is a page of entries plus the continuation token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToLineItemResponse converts a domain.LineItem to its wire shape.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:    li.LineItemID,
		LineNumber:    li.LineNumber,
		AccountID:     li.AccountID,
		DebitCredit:   string(li.DebitCredit),
		Amount:        li.Amount,
		LocalAmount:   li.LocalAmount,
		Ledger:        li.Ledger,
		LedgerType:    string(li.LedgerType),
		SpecialGLCode: li.SpecialGLIndicator.ExternalCode(),
		ItemText:      li.ItemText,
		CostCenter:    li.CostCenter,
		ProfitCenter:  li.ProfitCenter,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its wire shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]LineItemResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToLineItemResponse(&e.Lines[i])
	}
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		DocumentNumber: e.DocumentNumber,
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		PostingDate:    e.PostingDate,
		DocumentDate:   e.DocumentDate,
		Currency:       e.Currency,
		Status:         string(e.Status),
		Reference:      e.Reference,
		PostedAt:       e.PostedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		Lines:          lines,
	}
}

// ToDomainLineItem converts a request line to a domain line item. Identity and
// line number assignment happen in the aggregate constructor.
func ToDomainLineItem(req CreateLineItemRequest) domain.LineItem {
	return domain.LineItem{
		AccountID:             req.AccountID,
		DebitCredit:           domain.DebitCredit(req.DebitCredit),
		Amount:                req.Amount,
		LocalAmount:           req.LocalAmount,
		Ledger:                req.Ledger,
		LedgerType:            domain.LedgerType(req.LedgerType),
		SpecialGLIndicator:    domain.SpecialGLFromExternalCode(req.SpecialGLCode),
		ItemText:              req.ItemText,
		CostCenter:            req.CostCenter,
		ProfitCenter:          req.ProfitCenter,
		BusinessArea:          req.BusinessArea,
		ControllingArea:       req.ControllingArea,
		FinancialArea:         req.FinancialArea,
		AccountAssignment:     req.AccountAssignment,
		BusinessPartner:       req.BusinessPartner,
		BusinessPartnerType:   req.BusinessPartnerType,
		TransactionTypeCode:   req.TransactionTypeCode,
		TradingPartnerCompany: req.TradingPartnerCompany,
		PaymentExecution:      req.PaymentExecution,
		PaymentTermsDetail:    req.PaymentTermsDetail,
		InvoiceReference:      req.InvoiceReference,
		DunningDetail:         req.DunningDetail,
	}
}

// ToDomainLineItems converts a slice of request lines.
func ToDomainLineItems(reqs []CreateLineItemRequest) []domain.LineItem {
	lines := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		lines[i] = ToDomainLineItem(r)
	}
	return lines
}
