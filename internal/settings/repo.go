package settings

import (
	"context"
	"errors"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"gorm.io/gorm"
)

const singletonID = 1

// Defaults is the settings row assumed when none was ever saved.
var Defaults = models.AdminSettings{
	ID:                      singletonID,
	IsFreeGenerationEnabled: false,
	FreeGenerationLimit:     10,
	FreeGenerationsUsed:     0,
}

// Repository encapsulates the admin settings singleton.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the singleton row, falling back to defaults when it is missing.
func (r *Repository) Get(ctx context.Context) (models.AdminSettings, error) {
	var row models.AdminSettings
	err := r.db.WithContext(ctx).First(&row, singletonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Defaults, nil
		}
		return models.AdminSettings{}, err
	}
	return row, nil
}

// Save persists the singleton row, forcing its id.
func (r *Repository) Save(ctx context.Context, row models.AdminSettings) (models.AdminSettings, error) {
	row.ID = singletonID
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.AdminSettings{}, err
	}
	return row, nil
}

// IncrementFreeUsage bumps the free generation counter by one.
func (r *Repository) IncrementFreeUsage(ctx context.Context) (models.AdminSettings, error) {
	row, err := r.Get(ctx)
	if err != nil {
		return models.AdminSettings{}, err
	}
	row.FreeGenerationsUsed++
	return r.Save(ctx, row)
}
