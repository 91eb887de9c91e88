package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cwygoda/rentscan/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    urls       INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS listings (
    run_id        TEXT NOT NULL REFERENCES runs(id),
    position      INTEGER NOT NULL,
    name          TEXT NOT NULL,
    price_display TEXT NOT NULL,
    price_value   INTEGER NOT NULL,
    address       TEXT NOT NULL,
    url           TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);
`

// Repository implements domain.ListingRepository using SQLite.
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository, initializing the schema if needed.
func New(dbPath string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveRun stores a finished run in one transaction and returns its ID.
// Listing order is kept as given.
func (r *Repository) SaveRun(ctx context.Context, urls int, listings []domain.Listing) (string, error) {
	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, urls, created_at) VALUES (?, ?, ?)`,
		id, urls, time.Now(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO listings (run_id, position, name, price_display, price_value, address, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx, id, i, l.Name, l.PriceDisplay, l.PriceValue, l.Address, l.URL); err != nil {
			return "", fmt.Errorf("insert listing %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Listings returns the listings of a run in the order they were saved.
func (r *Repository) Listings(ctx context.Context, runID string) ([]domain.Listing, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, price_display, price_value, address, url
		 FROM listings WHERE run_id = ? ORDER BY position ASC`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.Name, &l.PriceDisplay, &l.PriceValue, &l.Address, &l.URL); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// LatestRun returns the ID of the most recently stored run.
func (r *Repository) LatestRun(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY rowid DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", domain.ErrRunNotFound
	}
	return id, err
}
