package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
	"github.com/pmerrill/mortgage-ledger/internal/ledger"
	"github.com/pmerrill/mortgage-ledger/internal/repository"
	customError "github.com/pmerrill/mortgage-ledger/pkg/errors"
)

const (
	summaryCacheKey = "mortgage:summary"
	summaryCacheTTL = 24 * time.Hour
)

// LedgerService owns the in-memory ledger and loan config for the session.
// The in-memory state is the source of truth: every mutation re-sorts and
// recomputes synchronously, then persists the full snapshot as a
// fire-and-forget side effect. A mutex serializes access since the HTTP host
// is multi-threaded.
type LedgerService struct {
	mu     sync.Mutex
	store  *ledger.Store
	config domain.LoanConfig
	repo   repository.SnapshotRepository
	redis  *redis.Client // optional summary cache, nil disables
}

// NewLedgerService loads the persisted snapshot, falling back to the given
// defaults on first run.
func NewLedgerService(
	ctx context.Context,
	repo repository.SnapshotRepository,
	defaults domain.LoanConfig,
	redisClient *redis.Client,
) (*LedgerService, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	config := defaults
	var records []domain.PaymentRecord
	if snap != nil {
		config = snap.Config
		records = snap.Records
	}

	return &LedgerService{
		store:  ledger.NewStore(records),
		config: config,
		repo:   repo,
		redis:  redisClient,
	}, nil
}

// Config returns the current loan configuration.
func (s *LedgerService) Config() domain.LoanConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// UpdateConfig replaces the loan configuration. Existing records keep their
// stored splits; only prospective split suggestions change.
func (s *LedgerService) UpdateConfig(ctx context.Context, req *domain.UpdateConfigRequest) domain.LoanConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = domain.LoanConfig{
		Nickname:           req.Nickname,
		InitialBalance:     req.InitialBalance,
		AnnualRatePercent:  req.AnnualRatePercent,
		InitialFundBalance: req.InitialFundBalance,
	}
	s.afterMutation(ctx)
	return s.config
}

// Summary reduces the ledger into the dashboard statistics. When a Redis
// client is configured the result is cached until the next mutation.
func (s *LedgerService) Summary(ctx context.Context) domain.SummaryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var stats domain.SummaryStats
			if json.Unmarshal(data, &stats) == nil {
				return stats
			}
		}
	}

	stats := ledger.Summarize(s.store.List(ledger.OrderAsc), s.config)

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, summaryCacheKey, data, summaryCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache summary: %v", err)
			}
		}
	}
	return stats
}

// Ledger returns the date-ordered ledger decorated with cumulative totals.
// limit > 0 truncates to the first limit rows of the requested order (a
// descending listing with a limit yields the most recent payments).
func (s *LedgerService) Ledger(order ledger.Order, limit int) []domain.LedgerRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.store.WithCumulativeTotals(s.config.InitialFundBalance)
	if order == ledger.OrderDesc {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// SuggestSplit computes the interest/principal suggestion for a record being
// composed. The prior balance is taken from the record immediately preceding
// the given date in date order — excluding the record being edited — or from
// the configured initial balance when none precedes it.
func (s *LedgerService) SuggestSplit(req *domain.SplitRequest) domain.SplitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.store.PriorBalance(req.Date, req.ExcludeID, s.config.InitialBalance)
	return ledger.SuggestSplit(prior, s.config.AnnualRatePercent, req.GrossPayment, req.TaxAmount, req.InsuranceAmount)
}

// AddPayment validates and appends a new ledger entry.
func (s *LedgerService) AddPayment(ctx context.Context, req *domain.SavePaymentRequest) (domain.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.buildRecord(req, "")
	if err != nil {
		return domain.PaymentRecord{}, err
	}
	rec = s.store.Add(rec)
	s.afterMutation(ctx)
	return rec, nil
}

// UpdatePayment validates and replaces an existing entry wholesale,
// preserving its id. Later records are NOT re-derived: stored balances are
// authoritative, and an out-of-order edit may leave the chain inconsistent
// on purpose.
func (s *LedgerService) UpdatePayment(ctx context.Context, id string, req *domain.SavePaymentRequest) (domain.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.buildRecord(req, id)
	if err != nil {
		return domain.PaymentRecord{}, err
	}
	if err := s.store.Update(id, rec); err != nil {
		return domain.PaymentRecord{}, err
	}
	rec.ID = id
	s.afterMutation(ctx)
	return rec, nil
}

// DeletePayment removes an entry by id.
func (s *LedgerService) DeletePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(id); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

// ImportLedger wholesale-replaces the ledger from a raw JSON backup. The
// payload is only checked for being an array; a parse failure aborts the
// import and leaves the current ledger untouched. The caller confirms the
// destructive intent out-of-band.
func (s *LedgerService) ImportLedger(ctx context.Context, raw []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := ledger.ImportJSON(raw)
	if err != nil {
		return 0, err
	}
	s.store.Replace(records)
	s.afterMutation(ctx)
	return len(records), nil
}

// ExportJSON serializes the full ledger for backup.
func (s *LedgerService) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.ExportJSON(s.store.List(ledger.OrderAsc))
}

// ExportCSV renders the ledger as a flat delimited table.
func (s *LedgerService) ExportCSV() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.ExportCSV(s.store.List(ledger.OrderAsc))
}

// Reset clears the entire ledger. The loan config is kept.
func (s *LedgerService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Replace(nil)
	s.afterMutation(ctx)
}

// buildRecord applies the save-path rules for each entry kind. Disbursement
// amounts are entered positive and stored negative; a disbursement never
// touches principal, so its balance carries the prior non-disbursement
// balance forward unchanged.
func (s *LedgerService) buildRecord(req *domain.SavePaymentRequest, excludeID string) (domain.PaymentRecord, error) {
	var rec domain.PaymentRecord

	switch req.EntryKind() {
	case domain.KindDisbursement:
		amount := req.TaxPart.Abs()
		if amount.IsZero() {
			return rec, customError.WrapValidationFailed(
				"disbursement requires a non-zero tax amount", customError.ErrInvalidDisbursement)
		}
		rec = domain.PaymentRecord{
			Date:             req.Date,
			TotalPaid:        decimal.Zero,
			PrincipalPart:    decimal.Zero,
			InterestPart:     decimal.Zero,
			TaxPart:          amount.Neg(),
			InsurancePart:    decimal.Zero,
			RemainingBalance: s.store.PriorMortgageBalance(req.Date, excludeID, s.config.InitialBalance),
			CheckNumber:      req.CheckNumber,
			Note:             req.Note,
			IsDisbursement:   true,
		}

	default: // installment
		if !req.TotalPaid.IsPositive() {
			return rec, customError.WrapValidationFailed(
				"total paid must be positive", customError.ErrInvalidPayment)
		}
		if req.RemainingBalance.IsNegative() {
			return rec, customError.WrapValidationFailed(
				"remaining balance must not be negative", customError.ErrNegativeBalance)
		}
		rec = domain.PaymentRecord{
			Date:             req.Date,
			TotalPaid:        req.TotalPaid,
			PrincipalPart:    req.PrincipalPart,
			InterestPart:     req.InterestPart,
			TaxPart:          req.TaxPart,
			InsurancePart:    req.InsurancePart,
			RemainingBalance: req.RemainingBalance,
			CheckNumber:      req.CheckNumber,
			Note:             req.Note,
		}
	}

	rec.LastModified = time.Now()
	return rec, nil
}

// afterMutation persists the full snapshot and drops the summary cache.
// Persistence is a side effect, not a correctness guarantee: a failed save
// is logged and the in-memory ledger stays the source of truth for the
// session.
func (s *LedgerService) afterMutation(ctx context.Context) {
	snap := &domain.Snapshot{
		Records: s.store.List(ledger.OrderAsc),
		Config:  s.config,
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		log.Printf("Failed to persist ledger snapshot: %v", err)
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, summaryCacheKey).Err(); err != nil {
			log.Printf("Failed to invalidate summary cache: %v", err)
		}
	}
}
