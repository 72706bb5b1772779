package storage

import (
	"context"

	"bestseller-dashboard/models"
)

// BookSource is anything that can produce the full Book Table.
type BookSource interface {
	Load() (models.BookTable, error)
}

// BookWriter is the interface any export backend must satisfy.
type BookWriter interface {
	Write(ctx context.Context, books []models.Book) error
	Close() error
}
