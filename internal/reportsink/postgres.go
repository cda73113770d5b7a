package reportsink

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"groupdtc/internal/compensate"
)

const createFailuresTable = `
CREATE TABLE IF NOT EXISTS dtc_failures (
	id                 BIGSERIAL PRIMARY KEY,
	group_id           TEXT NOT NULL,
	intended_operation TEXT NOT NULL,
	success_set        JSONB NOT NULL,
	last_outcomes      JSONB NOT NULL,
	occurred_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSink appends one audit row per FAILED transaction to a
// dtc_failures table via github.com/jackc/pgx/v4/pgxpool. This is an audit
// trail for a human operator, not the transaction-state persistence
// spec.md's Non-goals exclude — the core still holds no per-transaction
// state after returning; only a terminal failure is recorded here.
type PostgresSink struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresSink connects to dsn and ensures the dtc_failures table
// exists.
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createFailuresTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure dtc_failures table: %w", err)
	}

	return &PostgresSink{pool: pool, timeout: 5 * time.Second}, nil
}

// Close releases the pool's connections.
func (p *PostgresSink) Close() {
	p.pool.Close()
}

// Report implements compensate.Sink.
func (p *PostgresSink) Report(r compensate.Report) {
	outcomes := make([]string, len(r.LastCompensationOut))
	for i, o := range r.LastCompensationOut {
		outcomes[i] = o.String()
	}

	successSet, err := json.Marshal(r.SuccessSet)
	if err != nil {
		log.Printf("reportsink: postgres marshal success_set failed: %v", err)
		return
	}
	lastOutcomes, err := json.Marshal(outcomes)
	if err != nil {
		log.Printf("reportsink: postgres marshal last_outcomes failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	_, err = p.pool.Exec(ctx,
		`INSERT INTO dtc_failures (group_id, intended_operation, success_set, last_outcomes) VALUES ($1, $2, $3, $4)`,
		r.GroupID, r.IntendedOperation.String(), successSet, lastOutcomes)
	if err != nil {
		log.Printf("reportsink: postgres insert failed: %v", err)
	}
}
