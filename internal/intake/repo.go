package intake

import (
	"context"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates intake session persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a session repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a fresh session row.
func (r *Repository) Create(ctx context.Context, row *models.IntakeSession) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one session row.
func (r *Repository) FindByID(ctx context.Context, id string) (models.IntakeSession, error) {
	var row models.IntakeSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	return row, err
}

// Save rewrites the whole session row. Every operation re-reads and rewrites
// so the stored state always mirrors the flow.
func (r *Repository) Save(ctx context.Context, row *models.IntakeSession) error {
	return r.db.WithContext(ctx).Save(row).Error
}
