package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// SuggestSplit computes the interest/principal split for one period.
//
// The calculation uses:
//
//	monthlyRate = (annualRatePercent / 100) / 12
//	interest    = round2(priorBalance * monthlyRate)
//	principal   = round2(grossPayment - taxAmount - insuranceAmount - interest)
//	newBalance  = round2(priorBalance - principal)
//
// Rounding is half away from zero to 2 places, applied to interest and
// principal independently, matching how currency is displayed. A gross
// payment smaller than taxes plus insurance yields a negative principal and
// an increasing balance; that is allowed to flow through — whether such a
// payment is sane is the caller's concern.
//
// This is a pure function: it never touches the ledger. Callers decide
// whether to accept the suggestion before saving.
func SuggestSplit(priorBalance, annualRatePercent, grossPayment, taxAmount, insuranceAmount decimal.Decimal) domain.SplitResult {
	monthlyRate := annualRatePercent.Div(hundred).Div(twelve)
	interest := priorBalance.Mul(monthlyRate).Round(2)
	netForLoan := grossPayment.Sub(taxAmount).Sub(insuranceAmount)
	principal := netForLoan.Sub(interest).Round(2)
	newBalance := priorBalance.Sub(principal).Round(2)

	return domain.SplitResult{
		Interest:   interest,
		Principal:  principal,
		NewBalance: newBalance,
	}
}
