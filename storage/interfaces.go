package storage

import (
	"context"

	"cba-rental-scraper/models"
)

// ExportWriter is the interface for the per-run flat-file export.
type ExportWriter interface {
	Append(listing *models.Listing) error
	Close() error
}

// PropertyReader is the read-side contract the query API depends on.
type PropertyReader interface {
	List(ctx context.Context, limit int64) ([]models.StoredListing, error)
	GetByID(ctx context.Context, hexID string) (*models.StoredListing, error)
	StatsPerRoom(ctx context.Context) ([]models.RoomStats, error)
}
