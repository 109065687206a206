package domain

import (
	"github.com/shopspring/decimal"
)

// LoanConfig holds the loan-level settings for the single tracked mortgage.
// Changing it never rewrites the stored splits of existing records; only
// prospective split suggestions change.
type LoanConfig struct {
	Nickname           string          `json:"nickname" db:"nickname"`
	InitialBalance     decimal.Decimal `json:"initial_balance" db:"initial_balance"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent" db:"annual_rate_percent"`
	InitialFundBalance decimal.Decimal `json:"initial_fund_balance" db:"initial_fund_balance"`
}

// SummaryStats is the top-level reduction of the ledger plus config.
type SummaryStats struct {
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalTaxesPaid     decimal.Decimal `json:"total_taxes_paid"`
	TotalInsurancePaid decimal.Decimal `json:"total_insurance_paid"`
	TotalEquityGained  decimal.Decimal `json:"total_equity_gained"`
	PercentComplete    decimal.Decimal `json:"percent_complete"`
}

// DTOs for requests and responses

type UpdateConfigRequest struct {
	Nickname           string          `json:"nickname"`
	InitialBalance     decimal.Decimal `json:"initial_balance" validate:"required"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent"`
	InitialFundBalance decimal.Decimal `json:"initial_fund_balance"`
}

// Snapshot is the unit of persistence: the full ledger plus its config,
// written out wholesale after every mutation.
type Snapshot struct {
	Records []PaymentRecord `json:"records"`
	Config  LoanConfig      `json:"config"`
}
