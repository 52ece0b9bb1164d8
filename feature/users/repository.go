package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"p13n-sync/feature/users/models"
)

// Repository reads profile rows for the preference import.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository and ensures the profile table exists.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&models.UserProfile{}); err != nil {
		return nil, fmt.Errorf("failed to migrate user profiles: %w", err)
	}
	return &Repository{db: db}, nil
}

// ListOnboarded returns all profiles that completed onboarding.
func (r *Repository) ListOnboarded(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.WithContext(ctx).
		Where("kind = ?", models.OnboardingKind).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list onboarded profiles: %w", err)
	}
	return profiles, nil
}
