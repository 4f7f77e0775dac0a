package domain

// SpecialGLType classifies non-standard balance-sheet postings (down payments,
// bills of exchange) that are reported and cleared separately from ordinary lines.
type SpecialGLType string

const (
	SpecialGLNormal         SpecialGLType = "NORMAL"
	SpecialGLBillOfExchange SpecialGLType = "BILL_OF_EXCHANGE"
	SpecialGLDownPayment    SpecialGLType = "DOWN_PAYMENT"
	SpecialGLAdvancePayment SpecialGLType = "ADVANCE_PAYMENT"
	SpecialGLBillDiscount   SpecialGLType = "BILL_DISCOUNT"
)

// ExternalCode returns the single-character indicator used on the wire and in
// persisted rows. Normal postings carry no indicator.
func (t SpecialGLType) ExternalCode() string {
	switch t {
	case SpecialGLBillOfExchange:
		return "A"
	case SpecialGLDownPayment:
		return "F"
	case SpecialGLAdvancePayment:
		return "V"
	case SpecialGLBillDiscount:
		return "W"
	default:
		return ""
	}
}

// SpecialGLFromExternalCode maps an external indicator back to the closed enum.
// Unrecognized codes decode to SpecialGLNormal rather than failing: external
// systems may introduce new indicators before this one learns about them.
func SpecialGLFromExternalCode(code string) SpecialGLType {
	switch code {
	case "A":
		return SpecialGLBillOfExchange
	case "F":
		return SpecialGLDownPayment
	case "V":
		return SpecialGLAdvancePayment
	case "W":
		return SpecialGLBillDiscount
	default:
		return SpecialGLNormal
	}
}

// IsSpecial reports whether the type is anything other than a normal posting.
func (t SpecialGLType) IsSpecial() bool {
	return t != SpecialGLNormal && t != ""
}

// IsDownPayment reports whether the type is a down payment.
func (t SpecialGLType) IsDownPayment() bool {
	return t == SpecialGLDownPayment
}

// IsAdvancePayment reports whether the type is an advance payment.
func (t SpecialGLType) IsAdvancePayment() bool {
	return t == SpecialGLAdvancePayment
}

// IsBillRelated reports whether the type concerns bills of exchange.
func (t SpecialGLType) IsBillRelated() bool {
	return t == SpecialGLBillOfExchange || t == SpecialGLBillDiscount
}
