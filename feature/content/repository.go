package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p13n-sync/feature/content/models"
)

// Repository persists content records in the cache table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository and ensures the cache table exists.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&models.ContentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate content cache: %w", err)
	}
	return &Repository{db: db}, nil
}

// UpsertBatch writes records, replacing existing rows with the same id.
func (r *Repository) UpsertBatch(ctx context.Context, records []models.ContentRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(records, 100).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d content records: %w", len(records), err)
	}
	return nil
}

// ListByType returns all cached records of one content type.
func (r *Repository) ListByType(ctx context.Context, contentType string) ([]models.ContentRecord, error) {
	var records []models.ContentRecord
	err := r.db.WithContext(ctx).
		Where("content_type = ?", contentType).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", contentType, err)
	}
	return records, nil
}
