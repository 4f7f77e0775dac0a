package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

func TestSpecialGLExternalCode(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.SpecialGLType
		want string
	}{
		{name: "normal has no indicator", typ: domain.SpecialGLNormal, want: ""},
		{name: "bill of exchange", typ: domain.SpecialGLBillOfExchange, want: "A"},
		{name: "down payment", typ: domain.SpecialGLDownPayment, want: "F"},
		{name: "advance payment", typ: domain.SpecialGLAdvancePayment, want: "V"},
		{name: "bill discount", typ: domain.SpecialGLBillDiscount, want: "W"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.ExternalCode())
		})
	}
}

func TestSpecialGLFromExternalCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want domain.SpecialGLType
	}{
		{name: "empty decodes to normal", code: "", want: domain.SpecialGLNormal},
		{name: "A decodes to bill of exchange", code: "A", want: domain.SpecialGLBillOfExchange},
		{name: "F decodes to down payment", code: "F", want: domain.SpecialGLDownPayment},
		{name: "V decodes to advance payment", code: "V", want: domain.SpecialGLAdvancePayment},
		{name: "W decodes to bill discount", code: "W", want: domain.SpecialGLBillDiscount},
		{name: "unknown code decodes to normal", code: "Z", want: domain.SpecialGLNormal},
		{name: "lowercase is not recognized", code: "f", want: domain.SpecialGLNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SpecialGLFromExternalCode(tt.code))
		})
	}
}

func TestSpecialGLRoundTrip(t *testing.T) {
	for _, typ := range []domain.SpecialGLType{
		domain.SpecialGLBillOfExchange,
		domain.SpecialGLDownPayment,
		domain.SpecialGLAdvancePayment,
		domain.SpecialGLBillDiscount,
	} {
		assert.Equal(t, typ, domain.SpecialGLFromExternalCode(typ.ExternalCode()))
	}
}

func TestSpecialGLClassification(t *testing.T) {
	assert.False(t, domain.SpecialGLNormal.IsSpecial())
	assert.True(t, domain.SpecialGLDownPayment.IsSpecial())
	assert.True(t, domain.SpecialGLDownPayment.IsDownPayment())
	assert.True(t, domain.SpecialGLAdvancePayment.IsAdvancePayment())
	assert.True(t, domain.SpecialGLBillOfExchange.IsBillRelated())
	assert.True(t, domain.SpecialGLBillDiscount.IsBillRelated())
	assert.False(t, domain.SpecialGLDownPayment.IsBillRelated())
}

func TestDebitCreditExternalCode(t *testing.T) {
	assert.Equal(t, "S", domain.Debit.ExternalCode())
	assert.Equal(t, "H", domain.Credit.ExternalCode())
	assert.Equal(t, domain.Credit, domain.DebitCreditFromExternalCode("H"))
	assert.Equal(t, domain.Debit, domain.DebitCreditFromExternalCode("S"))
	assert.Equal(t, domain.Debit, domain.DebitCreditFromExternalCode(""))
}

func TestDebitCreditFlip(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Flip())
	assert.Equal(t, domain.Debit, domain.Credit.Flip())
}
