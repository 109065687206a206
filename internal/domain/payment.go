package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes a regular mortgage installment from a withdrawal
// out of the accumulated escrow fund (e.g. paying a tax bill).
type EntryKind string

const (
	KindInstallment  EntryKind = "installment"
	KindDisbursement EntryKind = "disbursement"
)

// PaymentRecord is one ledger entry. Amounts are signed: tax and insurance
// parts are negative on disbursement records. The stored remaining balance is
// authoritative; it is never re-derived from neighboring records after save.
type PaymentRecord struct {
	ID               string          `json:"id" db:"id"`
	Date             Date            `json:"date" db:"date"`
	TotalPaid        decimal.Decimal `json:"total_paid" db:"total_paid"`
	PrincipalPart    decimal.Decimal `json:"principal_part" db:"principal_part"`
	InterestPart     decimal.Decimal `json:"interest_part" db:"interest_part"`
	TaxPart          decimal.Decimal `json:"tax_part" db:"tax_part"`
	InsurancePart    decimal.Decimal `json:"insurance_part" db:"insurance_part"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	CheckNumber      string          `json:"check_number,omitempty" db:"check_number"`
	Note             string          `json:"note,omitempty" db:"note"`
	IsDisbursement   bool            `json:"is_disbursement,omitempty" db:"is_disbursement"`
	LastModified     time.Time       `json:"last_modified" db:"last_modified"`
}

// Kind returns the tagged variant of the record.
func (p *PaymentRecord) Kind() EntryKind {
	if p.IsDisbursement {
		return KindDisbursement
	}
	return KindInstallment
}

// DTOs for requests and responses

// SavePaymentRequest is the payload for adding or editing a ledger entry.
// Disbursement amounts are entered positive; the service normalizes signs.
type SavePaymentRequest struct {
	Kind             EntryKind       `json:"kind" validate:"omitempty,oneof=installment disbursement"`
	Date             Date            `json:"date" validate:"required"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	PrincipalPart    decimal.Decimal `json:"principal_part"`
	InterestPart     decimal.Decimal `json:"interest_part"`
	TaxPart          decimal.Decimal `json:"tax_part"`
	InsurancePart    decimal.Decimal `json:"insurance_part"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CheckNumber      string          `json:"check_number"`
	Note             string          `json:"note"`
}

// EntryKind defaults to an installment when the caller omits it.
func (r *SavePaymentRequest) EntryKind() EntryKind {
	if r.Kind == KindDisbursement {
		return KindDisbursement
	}
	return KindInstallment
}

// SplitRequest asks for a suggested interest/principal split for a record
// being composed. ExcludeID is set when editing an existing record so the
// prior balance is chosen among the other entries.
type SplitRequest struct {
	Date            Date            `json:"date" validate:"required"`
	ExcludeID       string          `json:"exclude_id"`
	GrossPayment    decimal.Decimal `json:"gross_payment"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	InsuranceAmount decimal.Decimal `json:"insurance_amount"`
}

type SplitResult struct {
	Interest   decimal.Decimal `json:"interest"`
	Principal  decimal.Decimal `json:"principal"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
