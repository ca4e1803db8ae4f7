package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"stepviz/internal/application"
	"stepviz/internal/domain"
	"stepviz/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.ReportStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements ReportStore
var _ ports.ReportStore = (*Store)(nil)

// NewStore creates a new SQLite report store
func NewStore() *Store {
	return &Store{}
}

// Open creates or opens <dataDir>/reports.db
func (s *Store) Open(dataDir string) error {
	// Expand ~ in path
	if len(dataDir) > 0 && dataDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[1:])
	}
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.dbPath = filepath.Join(dataDir, "reports.db")

	db, err := sql.Open("sqlite3", s.dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			target TEXT,
			depth_limit INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			steps INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS report_visits (
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (report_id, position)
		);
		CREATE TABLE IF NOT EXISTS report_log (
			report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (report_id, idx)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.dbPath
}

// DefaultDataDir returns $XDG_DATA_HOME/stepviz or ~/.local/share/stepviz
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "stepviz")
}

// SaveReport writes a report with its visit order and log in one transaction
func (s *Store) SaveReport(ctx context.Context, r *domain.Report) error {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.insertReport(r); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	for i, label := range r.VisitOrder {
		if err := tx.insertVisit(r.ID, i, label); err != nil {
			return fmt.Errorf("failed to insert visit: %w", err)
		}
	}
	for _, e := range r.Log {
		if err := tx.insertLogEntry(r.ID, e); err != nil {
			return fmt.Errorf("failed to insert log entry: %w", err)
		}
	}
	return tx.Commit()
}

// ListReports returns report headers newest first. Logs are not loaded.
func (s *Store) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, kind, subject, target, depth_limit, outcome, steps, created_at
		FROM reports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reports {
		visits, err := s.visits(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].VisitOrder = visits
	}
	return reports, nil
}

// GetReport returns one report with its visit order and log
func (s *Store) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, kind, subject, target, depth_limit, outcome, steps, created_at
		FROM reports WHERE id = ?
	`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, application.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if r.VisitOrder, err = s.visits(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT idx, message FROM report_log WHERE report_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.Index, &e.Message); err != nil {
			return nil, err
		}
		r.Log = append(r.Log, e)
	}
	return r, rows.Err()
}

func (s *Store) visits(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM report_visits WHERE report_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*domain.Report, error) {
	var (
		r       domain.Report
		kind    string
		target  sql.NullString
		created int64
	)
	if err := row.Scan(&r.ID, &r.SessionID, &kind, &r.Subject, &target, &r.DepthLimit, &r.Outcome, &r.Steps, &created); err != nil {
		return nil, err
	}
	r.Kind = domain.ReportKind(kind)
	r.Target = target.String
	r.CreatedAt = time.Unix(0, created).UTC()
	return &r, nil
}
