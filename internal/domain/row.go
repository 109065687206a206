package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerRow is a payment record decorated with the running totals derived
// from one ascending walk over the date-sorted ledger.
type LedgerRow struct {
	PaymentRecord
	CumulativePaid decimal.Decimal `json:"cumulative_paid"`
	CumulativeFund decimal.Decimal `json:"cumulative_fund"`
}

type LedgerResponse struct {
	Rows  []LedgerRow `json:"rows"`
	Order string      `json:"order"`
}
