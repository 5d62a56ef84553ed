package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceKind classifies a finance record.
type FinanceKind string

const (
	FinanceKindSale        FinanceKind = "sale"
	FinanceKindRefund      FinanceKind = "refund"
	FinanceKindCommission  FinanceKind = "commission"
	FinanceKindLogistics   FinanceKind = "logistics"
	FinanceKindAdvertising FinanceKind = "advertising"
	FinanceKindPayout      FinanceKind = "payout"
	FinanceKindOther       FinanceKind = "other"
)

// FinanceKinds lists all finance record kinds.
var FinanceKinds = []FinanceKind{
	FinanceKindSale,
	FinanceKindRefund,
	FinanceKindCommission,
	FinanceKindLogistics,
	FinanceKindAdvertising,
	FinanceKindPayout,
	FinanceKindOther,
}

// IsValid reports whether k is a known finance kind.
func (k FinanceKind) IsValid() bool {
	for _, known := range FinanceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsIncome reports whether records of this kind add to revenue. Payouts are
// transfers of already-earned money and count as neither income nor expense.
func (k FinanceKind) IsIncome() bool {
	return k == FinanceKindSale
}

// IsExpense reports whether records of this kind reduce revenue.
func (k FinanceKind) IsExpense() bool {
	switch k {
	case FinanceKindRefund, FinanceKindCommission, FinanceKindLogistics,
		FinanceKindAdvertising, FinanceKindOther:
		return true
	default:
		return false
	}
}

// FinanceRecord is a single money movement attributed to a marketplace.
// Amount is always non-negative; its direction follows from Kind.
type FinanceRecord struct {
	ID          int64
	UserID      int64
	Marketplace Marketplace
	Kind        FinanceKind
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// FinanceFilter narrows a finance listing. Zero values match everything;
// From is inclusive and To exclusive.
type FinanceFilter struct {
	Marketplace Marketplace
	Kind        FinanceKind
	From        time.Time
	To          time.Time
}

// FinanceTotals aggregates income and expenses.
type FinanceTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Payouts  decimal.Decimal
}

// Net returns income minus expenses.
func (t FinanceTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// Add accumulates r into t according to its kind.
func (t *FinanceTotals) Add(r FinanceRecord) {
	switch {
	case r.Kind.IsIncome():
		t.Income = t.Income.Add(r.Amount)
	case r.Kind.IsExpense():
		t.Expenses = t.Expenses.Add(r.Amount)
	case r.Kind == FinanceKindPayout:
		t.Payouts = t.Payouts.Add(r.Amount)
	}
}
