package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Native row shapes of the federated subledger sources. These modules were not
// designed with the universal journal schema in mind; the federation service
// converts them to UniversalJournalEntry and re-applies the non-pushable filter
// predicates afterwards.

// PayablesOpenItem is one unpaid vendor invoice line from the AP subledger.
type PayablesOpenItem struct {
	OpenItemID         string          `json:"openItemID"`
	CompanyCode        string          `json:"companyCode"`
	FiscalYear         int             `json:"fiscalYear"`
	DocumentNumber     string          `json:"documentNumber"`
	DocumentLine       int             `json:"documentLine"`
	VendorID           string          `json:"vendorID"`
	InvoiceDate        time.Time       `json:"invoiceDate"`
	PostingDate        time.Time       `json:"postingDate"`
	DueDate            time.Time       `json:"dueDate"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	LocalAmount        decimal.Decimal `json:"localAmount"`
	Reference          string          `json:"reference"`
	ItemText           string          `json:"itemText"`
	SpecialGLCode      string          `json:"specialGLCode"` // external indicator, may be unknown
	ClearingDocument   string          `json:"clearingDocument"`
	ClearingDate       *time.Time      `json:"clearingDate,omitempty"`
	PaymentBlockReason string          `json:"paymentBlockReason"`
}

// ReceivablesOpenItem is one uncleared customer line from the AR subledger.
type ReceivablesOpenItem struct {
	OpenItemID       string          `json:"openItemID"`
	CompanyCode      string          `json:"companyCode"`
	FiscalYear       int             `json:"fiscalYear"`
	DocumentNumber   string          `json:"documentNumber"`
	DocumentLine     int             `json:"documentLine"`
	CustomerID       string          `json:"customerID"`
	InvoiceDate      time.Time       `json:"invoiceDate"`
	PostingDate      time.Time       `json:"postingDate"`
	DueDate          time.Time       `json:"dueDate"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	LocalAmount      decimal.Decimal `json:"localAmount"`
	Reference        string          `json:"reference"`
	ItemText         string          `json:"itemText"`
	SpecialGLCode    string          `json:"specialGLCode"`
	DunningLevel     int             `json:"dunningLevel"`
	ClearingDocument string          `json:"clearingDocument"`
	ClearingDate     *time.Time      `json:"clearingDate,omitempty"`
}

// AllocationLine is one side of a cost-allocation run from the CO module.
// A sender line credits the sending cost center; a receiver line debits the
// receiving one.
type AllocationLine struct {
	AllocationID   string          `json:"allocationID"`
	RunID          string          `json:"runID"`
	CompanyCode    string          `json:"companyCode"`
	FiscalYear     int             `json:"fiscalYear"`
	DocumentNumber string          `json:"documentNumber"`
	DocumentLine   int             `json:"documentLine"`
	PostingDate    time.Time       `json:"postingDate"`
	CostCenter     string          `json:"costCenter"`
	CostElement    string          `json:"costElement"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	IsSender       bool            `json:"isSender"`
	CycleName      string          `json:"cycleName"`
	SegmentName    string          `json:"segmentName"`
}

// TreasuryItemKind distinguishes imported bank-statement lines from payment runs.
type TreasuryItemKind string

const (
	TreasuryStatement TreasuryItemKind = "STATEMENT"
	TreasuryPayment   TreasuryItemKind = "PAYMENT"
)

// TreasuryItem is one bank-statement or payment line from the TR module.
type TreasuryItem struct {
	ItemID         string           `json:"itemID"`
	Kind           TreasuryItemKind `json:"kind"`
	CompanyCode    string           `json:"companyCode"`
	FiscalYear     int              `json:"fiscalYear"`
	DocumentNumber string           `json:"documentNumber"`
	DocumentLine   int              `json:"documentLine"`
	ValueDate      time.Time        `json:"valueDate"`
	PostingDate    time.Time        `json:"postingDate"`
	BankAccount    string           `json:"bankAccount"`
	Amount         decimal.Decimal  `json:"amount"` // signed: inflow positive, outflow negative
	Currency       string           `json:"currency"`
	Counterparty   string           `json:"counterparty"`
	StatementRef   string           `json:"statementRef"`
	ItemText       string           `json:"itemText"`
}
