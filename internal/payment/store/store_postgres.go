package store

import (
	"context"
	"database/sql"
	"fmt"

	"cleanhome/internal/payment/models"
	"cleanhome/internal/payment/vnpay"
	"cleanhome/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS vnpay_outcomes (
	id             UUID PRIMARY KEY,
	txn_ref        TEXT NOT NULL,
	transaction_no TEXT NOT NULL,
	response_code  TEXT NOT NULL,
	is_successful  BOOLEAN NOT NULL,
	amount_minor   BIGINT NOT NULL,
	order_info     TEXT NOT NULL,
	pay_date       TEXT NOT NULL,
	bank_code      TEXT NOT NULL,
	card_type      TEXT NOT NULL,
	status_message TEXT NOT NULL,
	client_ip      TEXT NOT NULL,
	device         TEXT NOT NULL,
	received_at    TIMESTAMPTZ NOT NULL,
	UNIQUE (txn_ref, transaction_no)
);
CREATE INDEX IF NOT EXISTS vnpay_outcomes_txn_ref_idx ON vnpay_outcomes (txn_ref, received_at);
`

// Postgres persists the outcome ledger in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed ledger.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the ledger table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure vnpay_outcomes schema: %w", err)
	}
	return nil
}

func (s *Postgres) Insert(ctx context.Context, rec *models.Record) error {
	o := rec.Outcome
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO vnpay_outcomes (
			id, txn_ref, transaction_no, response_code, is_successful, amount_minor,
			order_info, pay_date, bank_code, card_type, status_message, client_ip, device, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (txn_ref, transaction_no) DO NOTHING`,
		rec.ID, o.ReferenceID, o.GatewayTransactionID, o.ResponseCode, o.IsSuccess, o.AmountMinorUnits,
		o.OrderInfo, o.PaidAt, o.BankCode, o.CardType, o.Message, rec.ClientIP, rec.Device, rec.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vnpay outcome: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert vnpay outcome rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) ListByReference(ctx context.Context, txnRef string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, txn_ref, transaction_no, response_code, is_successful, amount_minor,
			order_info, pay_date, bank_code, card_type, status_message, client_ip, device, received_at
		FROM vnpay_outcomes
		WHERE txn_ref = $1
		ORDER BY received_at, transaction_no`, txnRef)
	if err != nil {
		return nil, fmt.Errorf("list vnpay outcomes: %w", err)
	}
	defer rows.Close()

	out := make([]models.Record, 0)
	for rows.Next() {
		var (
			rec models.Record
			o   vnpay.Outcome
		)
		if err := rows.Scan(
			&rec.ID, &o.ReferenceID, &o.GatewayTransactionID, &o.ResponseCode, &o.IsSuccess, &o.AmountMinorUnits,
			&o.OrderInfo, &o.PaidAt, &o.BankCode, &o.CardType, &o.Message, &rec.ClientIP, &rec.Device, &rec.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vnpay outcome: %w", err)
		}
		rec.Outcome = o
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vnpay outcomes: %w", err)
	}
	return out, nil
}
