package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"stepviz/internal/domain"
)

// reportTx groups the inserts of one report
type reportTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*reportTx, error) {
	if s.db == nil {
		return nil, fmt.Errorf("report store is not open")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &reportTx{tx: tx}, nil
}

// insertReport inserts the report header
func (t *reportTx) insertReport(r *domain.Report) error {
	_, err := t.tx.Exec(`
		INSERT INTO reports (id, session_id, kind, subject, target, depth_limit, outcome, steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.SessionID, string(r.Kind), r.Subject, nullString(r.Target), r.DepthLimit, r.Outcome, r.Steps, r.CreatedAt.UnixNano())
	return err
}

// insertVisit records the label visited at position
func (t *reportTx) insertVisit(reportID string, position int, label string) error {
	_, err := t.tx.Exec(`
		INSERT INTO report_visits (report_id, position, label)
		VALUES (?, ?, ?)
	`, reportID, position, label)
	return err
}

// insertLogEntry records one narration line
func (t *reportTx) insertLogEntry(reportID string, e domain.LogEntry) error {
	_, err := t.tx.Exec(`
		INSERT INTO report_log (report_id, idx, message)
		VALUES (?, ?, ?)
	`, reportID, e.Index, e.Message)
	return err
}

// Commit commits the transaction
func (t *reportTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *reportTx) Rollback() error {
	return t.tx.Rollback()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
