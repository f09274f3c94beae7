package cache

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"TechLens/internal/model"
)

// SQLiteStore caches bars in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			symbol       TEXT    NOT NULL,
			bar_interval TEXT    NOT NULL,
			timestamp    INTEGER NOT NULL,
			open         REAL,
			high         REAL,
			low          REAL,
			close        REAL    NOT NULL,
			volume       REAL,
			PRIMARY KEY (symbol, bar_interval, timestamp)
		)`,

		`CREATE TABLE IF NOT EXISTS fetch_ranges (
			symbol       TEXT    NOT NULL,
			bar_interval TEXT    NOT NULL,
			range_start  INTEGER NOT NULL,
			range_end    INTEGER NOT NULL,
			fetched_at   INTEGER NOT NULL,
			bar_count    INTEGER NOT NULL,
			PRIMARY KEY (symbol, bar_interval, range_start, range_end)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ranges_fetched ON fetch_ranges(fetched_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func bounds(key Key) (start, end int64) {
	start, end = math.MinInt64, math.MaxInt64
	if !key.Start.IsZero() {
		start = key.Start.Unix()
	}
	if !key.End.IsZero() {
		end = key.End.Unix()
	}
	return start, end
}

func (s *SQLiteStore) Load(key Key, maxAge time.Duration) ([]model.OHLCV, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, end := bounds(key)

	var fetchedAt int64
	err := s.db.QueryRow(`SELECT fetched_at FROM fetch_ranges
		WHERE symbol = ? AND bar_interval = ? AND range_start = ? AND range_end = ?`,
		key.Symbol, string(key.Interval), start, end,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query fetch range: %w", err)
	}
	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false, nil
	}

	rows, err := s.db.Query(`SELECT timestamp, open, high, low, close, volume FROM bars
		WHERE symbol = ? AND bar_interval = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp`,
		key.Symbol, string(key.Interval), start, end,
	)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return bars, true, nil
}

func (s *SQLiteStore) Save(key Key, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO bars
		(symbol, bar_interval, timestamp, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(key.Symbol, string(key.Interval), b.Time.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}

	start, end := bounds(key)
	if _, err := tx.Exec(`INSERT OR REPLACE INTO fetch_ranges
		(symbol, bar_interval, range_start, range_end, fetched_at, bar_count)
		VALUES (?,?,?,?,?,?)`,
		key.Symbol, string(key.Interval), start, end, s.now().Unix(), len(bars),
	); err != nil {
		return fmt.Errorf("insert fetch range: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Info("closing sqlite cache")
	return s.db.Close()
}
