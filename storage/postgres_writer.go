package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

const (
	bookColumns = 7
	batchSize   = 50
)

// PostgresWriter keeps a snapshot of the Book Table in PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bestsellers (
			id          SERIAL PRIMARY KEY,
			name        TEXT          NOT NULL,
			author      TEXT          NOT NULL,
			user_rating NUMERIC(3,1)  NOT NULL,
			reviews     INTEGER       NOT NULL DEFAULT 0,
			price       NUMERIC(10,2) NOT NULL DEFAULT 0,
			year        INTEGER       NOT NULL,
			genre       TEXT          NOT NULL,
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_bestsellers_year  ON bestsellers(year);
		CREATE INDEX IF NOT EXISTS idx_bestsellers_genre ON bestsellers(genre);
	`)
	return err
}

// Write replaces the stored snapshot with books in a single transaction.
func (pw *PostgresWriter) Write(ctx context.Context, books []models.Book) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM bestsellers"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(books); i += batchSize {
		end := i + batchSize
		if end > len(books) {
			end = len(books)
		}
		query, args := buildInsert(books[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func buildInsert(batch []models.Book) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*bookColumns)

	for idx, b := range batch {
		base := idx * bookColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			b.Title, b.Author, b.Rating, b.Reviews, b.Price, b.Year, b.Genre)
	}

	query := fmt.Sprintf(`
		INSERT INTO bestsellers (name, author, user_rating, reviews, price, year, genre)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

// FetchAll reads the stored snapshot back in insertion order.
func (pw *PostgresWriter) FetchAll(ctx context.Context) (models.BookTable, error) {
	rows, err := pw.db.QueryContext(ctx, `
		SELECT name, author, user_rating, reviews, price, year, genre
		FROM bestsellers
		ORDER BY id
	`)
	if err != nil {
		return models.BookTable{}, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.Title, &b.Author, &b.Rating, &b.Reviews, &b.Price, &b.Year, &b.Genre); err != nil {
			return models.BookTable{}, fmt.Errorf("postgres: scan row: %w", err)
		}
		books = append(books, b)
	}
	return models.BookTable{Books: books}, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
