package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

func testSnapshot() *domain.Snapshot {
	day, _ := time.Parse("2006-01-02", "2024-01-01")
	return &domain.Snapshot{
		Records: []domain.PaymentRecord{
			{
				ID:               "jan",
				Date:             domain.Date{Time: day},
				TotalPaid:        decimal.RequireFromString("1500"),
				PrincipalPart:    decimal.RequireFromString("877.08"),
				InterestPart:     decimal.RequireFromString("622.92"),
				RemainingBalance: decimal.RequireFromString("229122.92"),
				CheckNumber:      "1042",
			},
		},
		Config: domain.LoanConfig{
			Nickname:           "Family Home",
			InitialBalance:     decimal.RequireFromString("230000"),
			AnnualRatePercent:  decimal.RequireFromString("3.25"),
			InitialFundBalance: decimal.RequireFromString("0"),
		},
	}
}

func TestFileRepositoryLoadMissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	want := testSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Config.Nickname, got.Config.Nickname)
	assert.True(t, want.Config.InitialBalance.Equal(got.Config.InitialBalance))
	require.Len(t, got.Records, 1)
	assert.Equal(t, "jan", got.Records[0].ID)
	assert.True(t, want.Records[0].TotalPaid.Equal(got.Records[0].TotalPaid))
	assert.True(t, want.Records[0].RemainingBalance.Equal(got.Records[0].RemainingBalance))
	assert.Equal(t, "1042", got.Records[0].CheckNumber)
}

func TestFileRepositoryCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), testSnapshot()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileRepositorySaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), testSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}

func TestFileRepositoryLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	repo := NewFileRepository(path)
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}
