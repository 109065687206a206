package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

// Summarize reduces a date-ascending ledger plus the loan config into the
// top-level statistics. It is a pure reduction and mutates nothing.
//
// The current balance is the stored remaining balance of the chronologically
// last non-disbursement record; an empty ledger (or one holding only
// disbursements) falls back to the configured initial balance. Tax and
// insurance totals are raw signed sums, so disbursements reduce the tax
// total. Interest is summed by absolute value.
func Summarize(records []domain.PaymentRecord, config domain.LoanConfig) domain.SummaryStats {
	currentBalance := config.InitialBalance
	totalPaid := decimal.Zero
	totalPrincipal := decimal.Zero
	totalInterest := decimal.Zero
	totalTaxes := decimal.Zero
	totalInsurance := decimal.Zero

	for _, rec := range records {
		totalPaid = totalPaid.Add(rec.TotalPaid)
		totalPrincipal = totalPrincipal.Add(rec.PrincipalPart)
		totalInterest = totalInterest.Add(rec.InterestPart.Abs())
		totalTaxes = totalTaxes.Add(rec.TaxPart)
		totalInsurance = totalInsurance.Add(rec.InsurancePart)
		if !rec.IsDisbursement {
			currentBalance = rec.RemainingBalance
		}
	}

	equity := config.InitialBalance.Sub(currentBalance)

	return domain.SummaryStats{
		CurrentBalance:     currentBalance,
		TotalPaid:          totalPaid,
		TotalPrincipalPaid: totalPrincipal,
		TotalInterestPaid:  totalInterest,
		TotalTaxesPaid:     totalTaxes,
		TotalInsurancePaid: totalInsurance,
		TotalEquityGained:  equity,
		PercentComplete:    percentComplete(equity, config.InitialBalance),
	}
}

// percentComplete clamps to [0, 100] and silently yields 0 when the initial
// balance is zero; the divide-by-zero guard is contractual, not an error.
func percentComplete(equity, initialBalance decimal.Decimal) decimal.Decimal {
	if initialBalance.IsZero() {
		return decimal.Zero
	}
	pct := equity.Div(initialBalance).Mul(hundred)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
