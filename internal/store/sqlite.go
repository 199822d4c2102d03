package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tickerlab/internal/models"
)

// SQLiteCache implements BarCache using SQLite.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache creates a SQLite-backed bar cache at the given path.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	cache := &SQLiteCache{db: db}
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return cache, nil
}

func (s *SQLiteCache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bars (
		symbol TEXT NOT NULL,
		bar_index INTEGER NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume INTEGER NOT NULL,
		PRIMARY KEY (symbol, bar_index)
	);

	CREATE TABLE IF NOT EXISTS series_meta (
		symbol TEXT PRIMARY KEY,
		last_price REAL NOT NULL,
		stored_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSeries replaces the cached bars for a symbol. Demo series are
// never cached; they exist only as a fallback for one run.
func (s *SQLiteCache) SaveSeries(ctx context.Context, series *models.PriceSeries) error {
	if series == nil || series.Demo || len(series.Bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bars WHERE symbol = ?`, series.Symbol); err != nil {
		return fmt.Errorf("failed to clear old bars: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bars (symbol, bar_index, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, b := range series.Bars {
		if _, err := stmt.ExecContext(ctx, series.Symbol, i, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("failed to insert bar: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO series_meta (symbol, last_price, stored_at)
		VALUES (?, ?, ?)
	`, series.Symbol, series.Price, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store series meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSeries returns the cached series for a symbol, or nil when absent.
func (s *SQLiteCache) GetSeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	var lastPrice float64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_price FROM series_meta WHERE symbol = ?`, symbol).Scan(&lastPrice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query series meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT open, high, low, close, volume
		FROM bars
		WHERE symbol = ?
		ORDER BY bar_index ASC
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	series := &models.PriceSeries{Symbol: symbol, Price: lastPrice}
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		series.Bars = append(series.Bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bars: %w", err)
	}
	if len(series.Bars) == 0 {
		return nil, nil
	}
	return series, nil
}

// Freshness returns when a symbol's bars were last stored.
func (s *SQLiteCache) Freshness(ctx context.Context, symbol string) (time.Time, error) {
	var storedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT stored_at FROM series_meta WHERE symbol = ?`, symbol).Scan(&storedAt)
	if err != nil && err != sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("failed to get freshness: %w", err)
	}
	if !storedAt.Valid {
		return time.Time{}, nil
	}
	return storedAt.Time, nil
}

// Close closes the underlying database.
func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
