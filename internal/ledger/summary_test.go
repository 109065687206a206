package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

func testLoanConfig(initial string) domain.LoanConfig {
	return domain.LoanConfig{
		Nickname:           "Family Home",
		InitialBalance:     d(initial),
		AnnualRatePercent:  d("3.25"),
		InitialFundBalance: d("0"),
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	stats := Summarize(nil, testLoanConfig("230000"))

	assert.True(t, stats.CurrentBalance.Equal(d("230000")))
	assert.True(t, stats.TotalPaid.IsZero())
	assert.True(t, stats.TotalPrincipalPaid.IsZero())
	assert.True(t, stats.TotalInterestPaid.IsZero())
	assert.True(t, stats.TotalEquityGained.IsZero())
	assert.True(t, stats.PercentComplete.IsZero())
}

func TestSummarizeAccumulatesTotals(t *testing.T) {
	records := []domain.PaymentRecord{
		{
			ID:               "jan",
			Date:             date("2024-01-01"),
			TotalPaid:        d("1500"),
			PrincipalPart:    d("877.08"),
			InterestPart:     d("622.92"),
			TaxPart:          d("0"),
			InsurancePart:    d("0"),
			RemainingBalance: d("229122.92"),
		},
		{
			ID:               "feb",
			Date:             date("2024-02-01"),
			TotalPaid:        d("1800"),
			PrincipalPart:    d("879.45"),
			InterestPart:     d("620.55"),
			TaxPart:          d("200"),
			InsurancePart:    d("100"),
			RemainingBalance: d("228243.47"),
		},
	}

	stats := Summarize(records, testLoanConfig("230000"))

	assert.True(t, stats.CurrentBalance.Equal(d("228243.47")))
	assert.True(t, stats.TotalPaid.Equal(d("3300")))
	assert.True(t, stats.TotalPrincipalPaid.Equal(d("1756.53")))
	assert.True(t, stats.TotalInterestPaid.Equal(d("1243.47")))
	assert.True(t, stats.TotalTaxesPaid.Equal(d("200")))
	assert.True(t, stats.TotalInsurancePaid.Equal(d("100")))
	assert.True(t, stats.TotalEquityGained.Equal(d("1756.53")))

	// equity / initial * 100
	expectedPct := d("1756.53").Div(d("230000")).Mul(d("100"))
	assert.True(t, stats.PercentComplete.Equal(expectedPct))
}

func TestSummarizeSkipsDisbursementsForBalance(t *testing.T) {
	records := []domain.PaymentRecord{
		{
			ID:               "jan",
			Date:             date("2024-01-01"),
			TotalPaid:        d("1500"),
			PrincipalPart:    d("877.08"),
			InterestPart:     d("622.92"),
			RemainingBalance: d("229122.92"),
		},
		{
			ID:               "tax-bill",
			Date:             date("2024-01-20"),
			TaxPart:          d("-500"),
			RemainingBalance: d("229122.92"),
			IsDisbursement:   true,
		},
	}

	stats := Summarize(records, testLoanConfig("230000"))

	assert.True(t, stats.CurrentBalance.Equal(d("229122.92")))
	// Signed sum: the disbursement pulls the tax total down.
	assert.True(t, stats.TotalTaxesPaid.Equal(d("-500")))
	// The disbursement contributes nothing to gross paid.
	assert.True(t, stats.TotalPaid.Equal(d("1500")))
}

func TestSummarizeDisbursementOnlyLedger(t *testing.T) {
	records := []domain.PaymentRecord{
		{
			ID:               "tax-bill",
			Date:             date("2024-01-20"),
			TaxPart:          d("-500"),
			RemainingBalance: d("230000"),
			IsDisbursement:   true,
		},
	}

	stats := Summarize(records, testLoanConfig("230000"))
	assert.True(t, stats.CurrentBalance.Equal(d("230000")))
	assert.True(t, stats.TotalEquityGained.IsZero())
}

func TestSummarizeInterestSummedByAbsoluteValue(t *testing.T) {
	records := []domain.PaymentRecord{
		{ID: "a", Date: date("2024-01-01"), InterestPart: d("-100"), RemainingBalance: d("1000")},
		{ID: "b", Date: date("2024-02-01"), InterestPart: d("50"), RemainingBalance: d("900")},
	}

	stats := Summarize(records, testLoanConfig("1000"))
	assert.True(t, stats.TotalInterestPaid.Equal(d("150")))
}

func TestPercentCompleteClamped(t *testing.T) {
	// Balance grew past the initial: negative equity clamps to 0.
	grew := []domain.PaymentRecord{
		{ID: "a", Date: date("2024-01-01"), RemainingBalance: d("1200")},
	}
	stats := Summarize(grew, testLoanConfig("1000"))
	assert.True(t, stats.PercentComplete.IsZero())

	// Overpaid past zero clamps to 100.
	over := []domain.PaymentRecord{
		{ID: "a", Date: date("2024-01-01"), RemainingBalance: d("-50")},
	}
	stats = Summarize(over, testLoanConfig("1000"))
	assert.True(t, stats.PercentComplete.Equal(d("100")))
}

func TestPercentCompleteZeroInitialBalance(t *testing.T) {
	stats := Summarize(nil, testLoanConfig("0"))
	assert.True(t, stats.PercentComplete.IsZero())
}
