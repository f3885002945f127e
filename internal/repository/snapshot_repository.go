package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storeforge/internal/domain"
)

// SnapshotRepository persists raw scrape payloads for debugging.
// Snapshots are write-only from the application's point of view;
// operators read them straight from the database when an extraction
// misbehaves.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *domain.ScrapeSnapshot) error
}

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new instance of SnapshotRepository
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.ScrapeSnapshot) error {
	query := `
		INSERT INTO scrape_snapshots (id, source_url, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, snapshot.ID, snapshot.SourceURL, snapshot.Payload, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scrape snapshot: %w", err)
	}

	return nil
}
