package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"VixLens/internal/model"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			equity_symbol     TEXT NOT NULL,
			volatility_symbol TEXT NOT NULL,
			period            INTEGER NOT NULL,
			start_date        TEXT,
			end_date          TEXT,
			returns           INTEGER,
			aligned           INTEGER,
			missing           INTEGER,
			unbinned          INTEGER,
			buckets           INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS bucket_stats (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   INTEGER NOT NULL REFERENCES analysis_runs(id),
			idx      INTEGER NOT NULL,
			low      REAL,
			high     REAL,
			closed   INTEGER,
			size     INTEGER,
			mean     REAL,
			std_dev  REAL,
			median   REAL,
			min_ret  REAL,
			max_ret  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bucket_run ON bucket_stats(run_id)`,

		`CREATE TABLE IF NOT EXISTS return_records (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         INTEGER NOT NULL REFERENCES analysis_runs(id),
			date           TEXT NOT NULL,
			percent_change REAL,
			level          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_run ON return_records(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes the run, its bucket statistics and its aligned pairs in
// one transaction and returns the run id.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO analysis_runs
		(timestamp, equity_symbol, volatility_symbol, period, start_date, end_date,
		 returns, aligned, missing, unbinned, buckets)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.EquitySymbol, snap.VolatilitySymbol, snap.Period,
		snap.Start.Format(model.DateLayout), snap.End.Format(model.DateLayout),
		snap.Returns, len(snap.Aligned), snap.Missing, snap.Unbinned, len(snap.Buckets),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, b := range snap.Buckets {
		var s model.BucketSummary
		if i < len(snap.Summaries) {
			s = snap.Summaries[i]
		}
		if _, err := tx.Exec(`INSERT INTO bucket_stats
			(run_id, idx, low, high, closed, size, mean, std_dev, median, min_ret, max_ret)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			runID, i, b.Low, b.High, b.Closed, len(b.Returns),
			s.Mean, s.StdDev, s.Median, s.Min, s.Max,
		); err != nil {
			return 0, fmt.Errorf("insert bucket %d: %w", i, err)
		}
	}

	stmt, err := tx.Prepare(`INSERT INTO return_records (run_id, date, percent_change, level) VALUES (?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, rec := range snap.Aligned {
		if _, err := stmt.Exec(runID, rec.Date.Format(model.DateLayout), rec.PercentChange, rec.Level); err != nil {
			return 0, fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
