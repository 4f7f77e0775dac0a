package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates where a journal entry is in its lifecycle.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Parked   EntryStatus = "PARKED"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

var (
	// ErrEmptyLines is returned when an entry would end up with no line items.
	ErrEmptyLines = errors.New("journal entry must have at least one line item")
	// ErrAlreadyPosted is returned when a mutation is attempted on a posted entry.
	ErrAlreadyPosted = errors.New("journal entry is already posted")
	// ErrNotPosted is returned when an operation requires a posted entry.
	ErrNotPosted = errors.New("journal entry is not posted")
)

// BalanceError reports a failed double-entry check. Both sums are carried so the
// caller can show the discrepancy.
type BalanceError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("journal entry does not balance: debit total is %s, credit total is %s",
		e.DebitTotal.String(), e.CreditTotal.String())
}

// LedgerBalanceError reports ledgers that fail the per-ledger partitioned check.
type LedgerBalanceError struct {
	Ledgers map[string]*BalanceError
}

func (e *LedgerBalanceError) Error() string {
	return fmt.Sprintf("journal entry does not balance in %d ledger(s)", len(e.Ledgers))
}

// JournalEntry is the aggregate root for one accounting document. It owns its
// line items exclusively and enforces balance and lifecycle rules; persistence
// and concurrency control belong to the storage collaborator.
type JournalEntry struct {
	JournalEntryID string  `json:"journalEntryID"`
	DocumentNumber *string `json:"documentNumber,omitempty"` // assigned at posting time

	CompanyCode     string    `json:"companyCode"`
	FiscalYear      int       `json:"fiscalYear"`
	PostingDate     time.Time `json:"postingDate"`
	DocumentDate    time.Time `json:"documentDate"`
	Currency        string    `json:"currency"` // document currency
	LocalCurrency   string    `json:"localCurrency"`
	GroupCurrency   string    `json:"groupCurrency,omitempty"`
	TargetCurrency  string    `json:"targetCurrency,omitempty"`
	ChartOfAccounts string    `json:"chartOfAccounts,omitempty"`

	Status    EntryStatus `json:"status"`
	Reference string      `json:"reference"`
	Lines     []LineItem  `json:"lines"`

	TenantID      string     `json:"tenantID"`
	LedgerGroup   string     `json:"ledgerGroup,omitempty"`
	DefaultLedger string     `json:"defaultLedger"`
	PostedAt      *time.Time `json:"postedAt,omitempty"`
	AuditFields
}

// NewJournalEntryParams carries everything needed to construct a draft entry.
type NewJournalEntryParams struct {
	CompanyCode   string
	FiscalYear    int
	PostingDate   time.Time
	DocumentDate  time.Time
	Currency      string
	LocalCurrency string
	Reference     string
	Lines         []LineItem
	TenantID      string
	LedgerGroup   string
	CreatedBy     string
	Now           time.Time
}

// NewJournalEntry constructs a Draft entry. It fails with ErrEmptyLines when no
// lines are given; line numbers are assigned 1-based in input order when unset.
func NewJournalEntry(p NewJournalEntryParams) (*JournalEntry, error) {
	if len(p.Lines) == 0 {
		return nil, ErrEmptyLines
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	lines := make([]LineItem, len(p.Lines))
	for i, li := range p.Lines {
		li = li.normalized()
		if li.LineItemID == "" {
			li.LineItemID = uuid.NewString()
		}
		if li.LineNumber == 0 {
			li.LineNumber = i + 1
		}
		lines[i] = li
	}

	return &JournalEntry{
		JournalEntryID: uuid.NewString(),
		CompanyCode:    p.CompanyCode,
		FiscalYear:     p.FiscalYear,
		PostingDate:    p.PostingDate,
		DocumentDate:   p.DocumentDate,
		Currency:       p.Currency,
		LocalCurrency:  p.LocalCurrency,
		Status:         Draft,
		Reference:      p.Reference,
		Lines:          lines,
		TenantID:       p.TenantID,
		LedgerGroup:    p.LedgerGroup,
		DefaultLedger:  DefaultLedger,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: p.CreatedBy,
		},
	}, nil
}

// ValidateBalance checks the double-entry invariant: the sum of debit amounts
// must exactly equal the sum of credit amounts across ALL lines, regardless of
// ledger. Exact decimal comparison, no tolerance.
func (e *JournalEntry) ValidateBalance() error {
	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, li := range e.Lines {
		if li.DebitCredit == Debit {
			debitTotal = debitTotal.Add(li.Amount)
		} else {
			creditTotal = creditTotal.Add(li.Amount)
		}
	}
	if !debitTotal.Equal(creditTotal) {
		return &BalanceError{DebitTotal: debitTotal, CreditTotal: creditTotal}
	}
	return nil
}

// ValidateBalanceByLedger partitions lines by ledger and checks each partition
// independently. The aggregate check above remains the gate for Park and Post;
// this stricter variant is opt-in for callers that maintain parallel ledgers
// which must balance on their own.
func (e *JournalEntry) ValidateBalanceByLedger() error {
	type sums struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byLedger := make(map[string]*sums)
	for _, li := range e.Lines {
		s, ok := byLedger[li.Ledger]
		if !ok {
			s = &sums{debit: decimal.Zero, credit: decimal.Zero}
			byLedger[li.Ledger] = s
		}
		if li.DebitCredit == Debit {
			s.debit = s.debit.Add(li.Amount)
		} else {
			s.credit = s.credit.Add(li.Amount)
		}
	}

	failed := make(map[string]*BalanceError)
	for ledger, s := range byLedger {
		if !s.debit.Equal(s.credit) {
			failed[ledger] = &BalanceError{DebitTotal: s.debit, CreditTotal: s.credit}
		}
	}
	if len(failed) > 0 {
		return &LedgerBalanceError{Ledgers: failed}
	}
	return nil
}

// Park moves a balanced Draft entry to Parked.
func (e *JournalEntry) Park(actor string, now time.Time) (Event, error) {
	if e.Status == Posted || e.Status == Reversed {
		return Event{}, ErrAlreadyPosted
	}
	if err := e.ValidateBalance(); err != nil {
		return Event{}, err
	}
	e.Status = Parked
	e.LastUpdatedAt = now
	e.LastUpdatedBy = actor
	return Event{
		Type:           EventEntryParked,
		JournalEntryID: e.JournalEntryID,
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		TenantID:       e.TenantID,
		OccurredAt:     now,
	}, nil
}

// Post transitions a balanced Draft or Parked entry to Posted, assigning the
// document number and the posting timestamp. After this, line content is
// immutable; the only legal further transition is Reversed.
func (e *JournalEntry) Post(documentNumber string, actor string, now time.Time) (Event, error) {
	if e.Status == Posted || e.Status == Reversed {
		return Event{}, ErrAlreadyPosted
	}
	if err := e.ValidateBalance(); err != nil {
		return Event{}, err
	}
	e.Status = Posted
	e.DocumentNumber = &documentNumber
	postedAt := now
	e.PostedAt = &postedAt
	e.LastUpdatedAt = now
	e.LastUpdatedBy = actor
	return Event{
		Type:           EventEntryPosted,
		JournalEntryID: e.JournalEntryID,
		DocumentNumber: documentNumber,
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		TenantID:       e.TenantID,
		OccurredAt:     now,
	}, nil
}

// MarkReversed flags a Posted entry as reversed. The reversal document itself is
// a separate entry built by CreateReversal; this entry is never mutated into it.
func (e *JournalEntry) MarkReversed(actor string, now time.Time) (Event, error) {
	if e.Status != Posted {
		return Event{}, ErrNotPosted
	}
	e.Status = Reversed
	e.LastUpdatedAt = now
	e.LastUpdatedBy = actor
	docNum := ""
	if e.DocumentNumber != nil {
		docNum = *e.DocumentNumber
	}
	return Event{
		Type:           EventEntryReversed,
		JournalEntryID: e.JournalEntryID,
		DocumentNumber: docNum,
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		TenantID:       e.TenantID,
		OccurredAt:     now,
	}, nil
}

// CreateReversal builds a brand-new, independently posted entry that mirrors
// this one with every line direction flipped. Ledger assignment, special-GL
// indicators, dimensions and sub-structures are copied verbatim; item text is
// annotated with the original document number. The receiver is not modified:
// marking it Reversed is the caller's separate step.
func (e *JournalEntry) CreateReversal(reversalDate time.Time, actor string, now time.Time) (*JournalEntry, Event, error) {
	if e.Status != Posted || e.DocumentNumber == nil {
		return nil, Event{}, ErrNotPosted
	}

	originalDoc := *e.DocumentNumber
	lines := make([]LineItem, len(e.Lines))
	for i, li := range e.Lines {
		rl := li
		rl.LineItemID = uuid.NewString()
		rl.DebitCredit = li.DebitCredit.Flip()
		rl.ItemText = fmt.Sprintf("reversal of %s", originalDoc)
		lines[i] = rl
	}

	reversal := &JournalEntry{
		JournalEntryID: uuid.NewString(),
		CompanyCode:    e.CompanyCode,
		FiscalYear:     e.FiscalYear,
		PostingDate:    reversalDate,
		DocumentDate:   reversalDate,
		Currency:       e.Currency,
		LocalCurrency:  e.LocalCurrency,
		GroupCurrency:  e.GroupCurrency,
		Status:         Draft,
		Reference:      fmt.Sprintf("Reversal of %s", originalDoc),
		Lines:          lines,
		TenantID:       e.TenantID,
		LedgerGroup:    e.LedgerGroup,
		DefaultLedger:  e.DefaultLedger,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	event, err := reversal.Post("R-"+originalDoc, actor, now)
	if err != nil {
		return nil, Event{}, err
	}
	return reversal, event, nil
}

// UpdateJournalEntryParams carries the optional header and line replacements.
type UpdateJournalEntryParams struct {
	PostingDate  *time.Time
	DocumentDate *time.Time
	Reference    *string
	Lines        *[]LineItem
}

// Update applies header changes and/or replaces the line set. Permitted only
// while Draft or Parked; replacing lines with an empty set fails with
// ErrEmptyLines before anything is touched.
func (e *JournalEntry) Update(p UpdateJournalEntryParams, actor string, now time.Time) error {
	if e.Status == Posted || e.Status == Reversed {
		return ErrAlreadyPosted
	}
	if p.Lines != nil && len(*p.Lines) == 0 {
		return ErrEmptyLines
	}

	if p.PostingDate != nil {
		e.PostingDate = *p.PostingDate
	}
	if p.DocumentDate != nil {
		e.DocumentDate = *p.DocumentDate
	}
	if p.Reference != nil {
		e.Reference = *p.Reference
	}
	if p.Lines != nil {
		lines := make([]LineItem, len(*p.Lines))
		for i, li := range *p.Lines {
			li = li.normalized()
			if li.LineItemID == "" {
				li.LineItemID = uuid.NewString()
			}
			if li.LineNumber == 0 {
				li.LineNumber = i + 1
			}
			lines[i] = li
		}
		e.Lines = lines
	}

	e.LastUpdatedAt = now
	e.LastUpdatedBy = actor
	return nil
}

// SpecialGLLines returns the lines carrying any special-GL indicator.
func (e *JournalEntry) SpecialGLLines() []LineItem {
	var out []LineItem
	for _, li := range e.Lines {
		if li.SpecialGLIndicator.IsSpecial() {
			out = append(out, li)
		}
	}
	return out
}

// LinesWithSpecialGL returns the lines tagged with the given special-GL type.
func (e *JournalEntry) LinesWithSpecialGL(t SpecialGLType) []LineItem {
	var out []LineItem
	for _, li := range e.Lines {
		if li.SpecialGLIndicator == t {
			out = append(out, li)
		}
	}
	return out
}

// HasSpecialGLLines reports whether any line carries a special-GL indicator.
func (e *JournalEntry) HasSpecialGLLines() bool {
	return len(e.SpecialGLLines()) > 0
}

// IsPureSpecialGL reports whether every line is a special-GL posting.
func (e *JournalEntry) IsPureSpecialGL() bool {
	return len(e.Lines) > 0 && len(e.SpecialGLLines()) == len(e.Lines)
}

// IsMixedSpecialGL reports whether special-GL and normal lines coexist.
func (e *JournalEntry) IsMixedSpecialGL() bool {
	n := len(e.SpecialGLLines())
	return n > 0 && n < len(e.Lines)
}
