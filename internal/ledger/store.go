package ledger

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
	customError "github.com/pmerrill/mortgage-ledger/pkg/errors"
)

// Order selects the direction of a ledger listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Store owns the ordered collection of payment records for the single loan.
// Records are kept ascending by date; same-date records keep their insertion
// order (stable sort). The store treats stored balances as authoritative and
// never re-derives a record from its neighbors.
//
// Store is not safe for concurrent use; callers in a multi-threaded host
// must serialize access (the service layer holds a mutex).
type Store struct {
	records []domain.PaymentRecord
}

// NewStore builds a store from an existing ledger, sorting it by date.
func NewStore(records []domain.PaymentRecord) *Store {
	s := &Store{records: slices.Clone(records)}
	s.sort()
	return s
}

func (s *Store) sort() {
	slices.SortStableFunc(s.records, func(a, b domain.PaymentRecord) int {
		return a.Date.Compare(b.Date)
	})
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r domain.PaymentRecord) bool {
		return r.ID == id
	})
}

// Get returns the record with the given id, if present.
func (s *Store) Get(id string) (domain.PaymentRecord, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.PaymentRecord{}, false
	}
	return s.records[i], true
}

// Add inserts a record, assigning a fresh id if absent, and re-sorts the
// collection. The stored record is returned.
func (s *Store) Add(rec domain.PaymentRecord) domain.PaymentRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.records = append(s.records, rec)
	s.sort()
	return rec
}

// Update replaces the record with the given id, preserving the id, and
// re-sorts. It fails if the id is unknown.
func (s *Store) Update(id string, rec domain.PaymentRecord) error {
	i := s.indexOf(id)
	if i < 0 {
		return customError.WrapRecordNotFound(id)
	}
	rec.ID = id
	s.records[i] = rec
	s.sort()
	return nil
}

// Remove deletes the record with the given id, leaving the order of the
// remaining records intact. It fails if the id is unknown.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return customError.WrapRecordNotFound(id)
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Replace swaps in an entirely new ledger (import, reset).
func (s *Store) Replace(records []domain.PaymentRecord) {
	s.records = slices.Clone(records)
	s.sort()
}

// List returns a fresh date-ordered copy of the ledger. Descending order is
// the exact reverse of ascending order.
func (s *Store) List(order Order) []domain.PaymentRecord {
	out := slices.Clone(s.records)
	if order == OrderDesc {
		slices.Reverse(out)
	}
	return out
}

// WithCumulativeTotals walks the ascending ledger once, accumulating the
// running gross total and the escrow fund balance. Disbursement records
// contribute their already-negative tax part, drawing the fund down. This is
// the only place cumulative totals are computed; it is always a full
// recompute and is deterministic for a given ledger and starting fund
// balance.
func (s *Store) WithCumulativeTotals(initialFundBalance decimal.Decimal) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, 0, len(s.records))
	cumulativePaid := decimal.Zero
	cumulativeFund := initialFundBalance
	for _, rec := range s.records {
		cumulativePaid = cumulativePaid.Add(rec.TotalPaid)
		cumulativeFund = cumulativeFund.Add(rec.TaxPart)
		rows = append(rows, domain.LedgerRow{
			PaymentRecord:  rec,
			CumulativePaid: cumulativePaid,
			CumulativeFund: cumulativeFund,
		})
	}
	return rows
}

// PriorBalance returns the remaining balance of the record immediately
// preceding the given date in date order, excluding excludeID (set when the
// caller is editing that record). With no preceding record it falls back to
// the loan's initial balance.
func (s *Store) PriorBalance(date domain.Date, excludeID string, initialBalance decimal.Decimal) decimal.Decimal {
	return s.priorBalance(date, excludeID, initialBalance, false)
}

// PriorMortgageBalance is PriorBalance restricted to non-disbursement
// records; disbursements never alter principal, so they are skipped when
// carrying a balance forward.
func (s *Store) PriorMortgageBalance(date domain.Date, excludeID string, initialBalance decimal.Decimal) decimal.Decimal {
	return s.priorBalance(date, excludeID, initialBalance, true)
}

func (s *Store) priorBalance(date domain.Date, excludeID string, initialBalance decimal.Decimal, skipDisbursements bool) decimal.Decimal {
	balance := initialBalance
	for _, rec := range s.records {
		if rec.Date.Compare(date) > 0 {
			break
		}
		if rec.ID == excludeID {
			continue
		}
		if skipDisbursements && rec.IsDisbursement {
			continue
		}
		balance = rec.RemainingBalance
	}
	return balance
}
