package scraper

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// RunStore keeps a history of scrape runs and their per-URL results in
// SQLite, so repeated batches over the same catalogue can be compared.
type RunStore struct {
	db *sql.DB
}

// Run is one scrape batch.
type Run struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt *time.Time
	URLCount   int
}

// StoredResult is one scraped page as recorded in the history store.
type StoredResult struct {
	ResultID  uuid.UUID
	RunID     uuid.UUID
	URL       string
	Domain    string
	Price     string
	SKU       string
	Error     string
	ScrapedAt time.Time
}

// NewRunStore opens (creating if needed) the history database.
func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &RunStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the history tables if they don't exist.
func (s *RunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		url_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS results (
		result_id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		url TEXT NOT NULL,
		domain TEXT NOT NULL,
		price TEXT,
		sku TEXT,
		error TEXT,
		scraped_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// BeginRun records the start of a scrape batch.
func (s *RunStore) BeginRun(urlCount int) (*Run, error) {
	run := &Run{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		URLCount:  urlCount,
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (run_id, started_at, url_count) VALUES (?, ?, ?)",
		run.RunID.String(), run.StartedAt.Format(time.RFC3339Nano), run.URLCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's completion time.
func (s *RunStore) FinishRun(runID uuid.UUID) error {
	now := time.Now()
	_, err := s.db.Exec(
		"UPDATE runs SET finished_at = ? WHERE run_id = ?",
		now.Format(time.RFC3339Nano), runID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecordResult persists one scraped page under the given run.
func (s *RunStore) RecordResult(runID uuid.UUID, r Result) error {
	_, err := s.db.Exec(
		`INSERT INTO results (result_id, run_id, url, domain, price, sku, error, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID.String(), r.URL, r.Domain, r.Price, r.SKU, r.Err,
		time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// ListResults returns every result recorded for the given run, oldest
// first.
func (s *RunStore) ListResults(runID uuid.UUID) ([]StoredResult, error) {
	rows, err := s.db.Query(
		`SELECT result_id, run_id, url, domain, price, sku, error, scraped_at
		 FROM results WHERE run_id = ? ORDER BY scraped_at`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		var resultID, runIDStr, scrapedAt string
		if err := rows.Scan(&resultID, &runIDStr, &r.URL, &r.Domain, &r.Price, &r.SKU, &r.Error, &scrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if r.ResultID, err = uuid.Parse(resultID); err != nil {
			return nil, fmt.Errorf("invalid result id %q: %w", resultID, err)
		}
		if r.RunID, err = uuid.Parse(runIDStr); err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", runIDStr, err)
		}
		if r.ScrapedAt, err = time.Parse(time.RFC3339Nano, scrapedAt); err != nil {
			return nil, fmt.Errorf("invalid scraped_at %q: %w", scrapedAt, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetRun loads one run's metadata.
func (s *RunStore) GetRun(runID uuid.UUID) (*Run, error) {
	var run Run
	var idStr, startedAt string
	var finishedAt sql.NullString

	err := s.db.QueryRow(
		"SELECT run_id, started_at, finished_at, url_count FROM runs WHERE run_id = ?",
		runID.String(),
	).Scan(&idStr, &startedAt, &finishedAt, &run.URLCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if run.RunID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	if finishedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid finished_at %q: %w", finishedAt.String, err)
		}
		run.FinishedAt = &t
	}

	return &run, nil
}
