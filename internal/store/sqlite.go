package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input_path  TEXT NOT NULL,
	mode        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	total       INTEGER NOT NULL DEFAULT 0,
	found       INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS run_companies (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	url        TEXT NOT NULL DEFAULT '',
	founders   TEXT NOT NULL,
	source_url TEXT NOT NULL DEFAULT '',
	attempted  TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS page_cache (
	url         TEXT NOT NULL,
	mode        TEXT NOT NULL,
	text        TEXT NOT NULL,
	html        TEXT NOT NULL,
	status_code INTEGER NOT NULL DEFAULT 0,
	fetched_at  DATETIME NOT NULL,
	expires_at  DATETIME NOT NULL,
	PRIMARY KEY (url, mode)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_page_cache_expires_at ON page_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, inputPath string, mode model.RenderMode, total int) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_path, mode, status, total, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, inputPath, string(mode), string(model.RunStatusRunning), total, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		InputPath: inputPath,
		Mode:      mode,
		Status:    model.RunStatusRunning,
		Total:     total,
		CreatedAt: now,
	}, nil
}

// RecordResult stores the outcome for the company at position. Recording the
// same position twice replaces the earlier outcome.
func (s *SQLiteStore) RecordResult(ctx context.Context, runID string, position int, result *model.CompanyResult) error {
	foundersJSON, err := json.Marshal(result.Founders)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal founders")
	}
	attempted := result.Attempted
	if attempted == nil {
		attempted = []string{}
	}
	attemptedJSON, err := json.Marshal(attempted)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal attempted")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_companies
		 (run_id, position, name, url, founders, source_url, attempted, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, position, result.Company.Name, result.Company.URL,
		string(foundersJSON), result.SourceURL, string(attemptedJSON), result.Error,
	)
	return eris.Wrapf(err, "sqlite: record result for run %s", runID)
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, found int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, found = ?, finished_at = ? WHERE id = ?`,
		string(status), found, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

// GetRun looks a run up by full ID or by a unique ID prefix, as printed by
// "runs list".
func (s *SQLiteStore) GetRun(ctx context.Context, idOrPrefix string) (*model.Run, error) {
	if idOrPrefix == "" {
		return nil, eris.New("run not found")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2`,
		idOrPrefix, idOrPrefix+"%", idOrPrefix,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get run")
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: get run iterate")
	}

	switch {
	case len(runs) == 0:
		return nil, eris.Errorf("run not found: %s", idOrPrefix)
	case runs[0].ID == idOrPrefix || len(runs) == 1:
		return runs[0], nil
	default:
		return nil, eris.Errorf("run id prefix %q is ambiguous", idOrPrefix)
	}
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// GetRunResults returns the recorded outcomes of a run in input order.
func (s *SQLiteStore) GetRunResults(ctx context.Context, runID string) ([]model.CompanyResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, url, founders, source_url, attempted, error
		 FROM run_companies WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get results for run %s", runID)
	}
	defer rows.Close()

	var results []model.CompanyResult
	for rows.Next() {
		var r model.CompanyResult
		var foundersJSON, attemptedJSON string
		if err := rows.Scan(&r.Company.Name, &r.Company.URL, &foundersJSON, &r.SourceURL, &attemptedJSON, &r.Error); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan result")
		}
		if err := json.Unmarshal([]byte(foundersJSON), &r.Founders); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal founders")
		}
		if err := json.Unmarshal([]byte(attemptedJSON), &r.Attempted); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal attempted")
		}
		results = append(results, r)
	}
	return results, eris.Wrap(rows.Err(), "sqlite: get results iterate")
}

// GetPage returns the cached page for url in mode, or nil if absent or
// expired.
func (s *SQLiteStore) GetPage(ctx context.Context, url string, mode model.RenderMode) (*model.Page, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT url, text, html, status_code FROM page_cache
		 WHERE url = ? AND mode = ? AND expires_at > ?`,
		url, string(mode), time.Now().UTC(),
	)

	var p model.Page
	err := row.Scan(&p.URL, &p.Text, &p.HTML, &p.StatusCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get cached page")
	}
	return &p, nil
}

func (s *SQLiteStore) PutPage(ctx context.Context, page *model.Page, mode model.RenderMode, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO page_cache (url, mode, text, html, status_code, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		page.URL, string(mode), page.Text, page.HTML, page.StatusCode, now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set cached page")
}

func (s *SQLiteStore) DeleteExpiredPages(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM page_cache WHERE expires_at <= ?`, time.Now().UTC(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired pages")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// helpers

const runColumns = `id, input_path, mode, status, total, found, created_at, finished_at`

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var finished sql.NullTime

	err := row.Scan(&r.ID, &r.InputPath, &r.Mode, &r.Status, &r.Total, &r.Found, &r.CreatedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, eris.New("run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return &r, nil
}
