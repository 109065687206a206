package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
	customError "github.com/pmerrill/mortgage-ledger/pkg/errors"
)

func date(s string) domain.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return domain.Date{Time: t}
}

func installment(id, day string, totalPaid, principal, balance string) domain.PaymentRecord {
	return domain.PaymentRecord{
		ID:               id,
		Date:             date(day),
		TotalPaid:        d(totalPaid),
		PrincipalPart:    d(principal),
		RemainingBalance: d(balance),
	}
}

func TestStoreAddAssignsID(t *testing.T) {
	s := NewStore(nil)

	rec := s.Add(installment("", "2024-01-01", "1500", "877.08", "229122.92"))
	assert.NotEmpty(t, rec.ID)

	rec2 := s.Add(installment("fixed-id", "2024-02-01", "1500", "880", "228242.92"))
	assert.Equal(t, "fixed-id", rec2.ID)
	assert.Equal(t, 2, s.Len())
}

func TestStoreListSortedByDate(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("c", "2024-03-01", "1500", "880", "0"))
	s.Add(installment("a", "2024-01-01", "1500", "877", "0"))
	s.Add(installment("b", "2024-02-01", "1500", "878", "0"))

	asc := s.List(OrderAsc)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})

	for i := 1; i < len(asc); i++ {
		assert.False(t, asc[i].Date.Before(asc[i-1].Date))
	}

	// Descending is the exact reverse of ascending.
	desc := s.List(OrderDesc)
	require.Len(t, desc, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})
}

func TestStoreStableSortOnSameDate(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("A", "2024-01-15", "1500", "877", "0"))
	s.Add(installment("B", "2024-01-15", "1600", "900", "0"))

	asc := s.List(OrderAsc)
	require.Len(t, asc, 2)
	assert.Equal(t, "A", asc[0].ID)
	assert.Equal(t, "B", asc[1].ID)

	// A later add on an earlier date must not disturb the tie order.
	s.Add(installment("C", "2024-01-01", "1500", "875", "0"))
	asc = s.List(OrderAsc)
	assert.Equal(t, []string{"C", "A", "B"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})
}

func TestStoreListReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("a", "2024-01-01", "1500", "877", "0"))

	out := s.List(OrderAsc)
	out[0].ID = "mutated"

	again := s.List(OrderAsc)
	assert.Equal(t, "a", again[0].ID)
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("a", "2024-01-01", "1500", "877", "1000"))
	s.Add(installment("b", "2024-02-01", "1500", "878", "900"))

	// Moving a record's date re-sorts the collection.
	moved := installment("ignored", "2024-03-01", "1500", "878", "900")
	err := s.Update("a", moved)
	require.NoError(t, err)

	asc := s.List(OrderAsc)
	assert.Equal(t, []string{"b", "a"}, []string{asc[0].ID, asc[1].ID})

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date("2024-03-01")))
}

func TestStoreUpdateUnknownID(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("a", "2024-01-01", "1500", "877", "0"))

	err := s.Update("missing", installment("", "2024-02-01", "1500", "878", "0"))
	assert.Error(t, err)
	assert.True(t, customError.IsNotFound(err))
}

func TestStoreRemove(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("a", "2024-01-01", "1500", "877", "0"))
	s.Add(installment("b", "2024-02-01", "1500", "878", "0"))

	require.NoError(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	// Unknown id fails and leaves the ledger length unchanged.
	err := s.Remove("missing")
	assert.True(t, customError.IsNotFound(err))
	assert.Equal(t, 1, s.Len())
}

func TestWithCumulativeTotals(t *testing.T) {
	s := NewStore(nil)

	r1 := installment("a", "2024-01-01", "1500", "877", "229123")
	r1.TaxPart = d("250")
	s.Add(r1)

	r2 := installment("b", "2024-02-01", "1600", "880", "228243")
	r2.TaxPart = d("250")
	s.Add(r2)

	// Tax-bill disbursement pulls its already-negative tax part from the fund.
	disb := domain.PaymentRecord{
		ID:               "c",
		Date:             date("2024-02-15"),
		TaxPart:          d("-400"),
		RemainingBalance: d("228243"),
		IsDisbursement:   true,
	}
	s.Add(disb)

	rows := s.WithCumulativeTotals(d("100"))
	require.Len(t, rows, 3)

	assert.True(t, rows[0].CumulativePaid.Equal(d("1500")))
	assert.True(t, rows[0].CumulativeFund.Equal(d("350")))
	assert.True(t, rows[1].CumulativePaid.Equal(d("3100")))
	assert.True(t, rows[1].CumulativeFund.Equal(d("600")))
	assert.True(t, rows[2].CumulativePaid.Equal(d("3100")))
	assert.True(t, rows[2].CumulativeFund.Equal(d("200")))

	// The last row's running total equals the sum of all gross payments.
	sum := decimal.Zero
	for _, rec := range s.List(OrderAsc) {
		sum = sum.Add(rec.TotalPaid)
	}
	assert.True(t, rows[2].CumulativePaid.Equal(sum))

	// Deterministic: a second walk over the same ledger yields the same rows.
	again := s.WithCumulativeTotals(d("100"))
	require.Len(t, again, 3)
	for i := range rows {
		assert.True(t, rows[i].CumulativePaid.Equal(again[i].CumulativePaid))
		assert.True(t, rows[i].CumulativeFund.Equal(again[i].CumulativeFund))
	}
}

func TestPriorBalance(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("jan", "2024-01-01", "1500", "877", "229123"))
	s.Add(installment("feb", "2024-02-01", "1500", "878", "228245"))
	s.Add(installment("mar", "2024-03-01", "1500", "879", "227366"))

	initial := d("230000")

	// No preceding record falls back to the initial balance.
	assert.True(t, s.PriorBalance(date("2023-12-01"), "", initial).Equal(initial))

	// Inserting between feb and mar picks feb's stored balance.
	assert.True(t, s.PriorBalance(date("2024-02-15"), "", initial).Equal(d("228245")))

	// Editing feb excludes feb itself, so jan's balance applies.
	assert.True(t, s.PriorBalance(date("2024-02-01"), "feb", initial).Equal(d("229123")))

	// A same-date insert lands after the existing record.
	assert.True(t, s.PriorBalance(date("2024-03-01"), "", initial).Equal(d("227366")))
}

func TestPriorMortgageBalanceSkipsDisbursements(t *testing.T) {
	s := NewStore(nil)
	s.Add(installment("jan", "2024-01-01", "1500", "877", "100000"))
	s.Add(domain.PaymentRecord{
		ID:               "tax-bill",
		Date:             date("2024-01-20"),
		TaxPart:          d("-500"),
		RemainingBalance: d("100000"),
		IsDisbursement:   true,
	})

	got := s.PriorMortgageBalance(date("2024-02-01"), "", d("230000"))
	assert.True(t, got.Equal(d("100000")))
}
