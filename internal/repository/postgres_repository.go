package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository stores the snapshot in PostgreSQL. Selected when
// DATABASE_URL is configured.
func NewPostgresRepository(db *sqlx.DB) SnapshotRepository {
	return &postgresRepository{db: db}
}

// EnsureSchema creates the ledger tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS payments (
			id                TEXT PRIMARY KEY,
			date              DATE NOT NULL,
			total_paid        NUMERIC(14,2) NOT NULL,
			principal_part    NUMERIC(14,2) NOT NULL,
			interest_part     NUMERIC(14,2) NOT NULL,
			tax_part          NUMERIC(14,2) NOT NULL,
			insurance_part    NUMERIC(14,2) NOT NULL,
			remaining_balance NUMERIC(14,2) NOT NULL,
			check_number      TEXT NOT NULL DEFAULT '',
			note              TEXT NOT NULL DEFAULT '',
			is_disbursement   BOOLEAN NOT NULL DEFAULT FALSE,
			last_modified     TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS loan_config (
			singleton            BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			nickname             TEXT NOT NULL,
			initial_balance      NUMERIC(14,2) NOT NULL,
			annual_rate_percent  NUMERIC(8,4) NOT NULL,
			initial_fund_balance NUMERIC(14,2) NOT NULL
		);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (r *postgresRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var config domain.LoanConfig
	err := r.db.GetContext(ctx, &config, `
		SELECT nickname, initial_balance, annual_rate_percent, initial_fund_balance
		FROM loan_config
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []domain.PaymentRecord
	err = r.db.SelectContext(ctx, &records, `
		SELECT id, date, total_paid, principal_part, interest_part, tax_part,
		       insurance_part, remaining_balance, check_number, note,
		       is_disbursement, last_modified
		FROM payments
		ORDER BY date
	`)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{Records: records, Config: config}, nil
}

func (r *postgresRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM loan_config`); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO loan_config (nickname, initial_balance, annual_rate_percent, initial_fund_balance)
		VALUES ($1, $2, $3, $4)
	`,
		snap.Config.Nickname,
		snap.Config.InitialBalance,
		snap.Config.AnnualRatePercent,
		snap.Config.InitialFundBalance,
	)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM payments`); err != nil {
		return err
	}
	query := `
		INSERT INTO payments (id, date, total_paid, principal_part, interest_part,
		                      tax_part, insurance_part, remaining_balance,
		                      check_number, note, is_disbursement, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, rec := range snap.Records {
		_, err = tx.ExecContext(ctx, query,
			rec.ID,
			rec.Date,
			rec.TotalPaid,
			rec.PrincipalPart,
			rec.InterestPart,
			rec.TaxPart,
			rec.InsurancePart,
			rec.RemainingBalance,
			rec.CheckNumber,
			rec.Note,
			rec.IsDisbursement,
			rec.LastModified,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
