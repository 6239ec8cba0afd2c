package resources

import (
	"context"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates generated document persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a resource repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one generated document row.
func (r *Repository) Create(ctx context.Context, row *models.Resource) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one resource row.
func (r *Repository) FindByID(ctx context.Context, id string) (models.Resource, error) {
	var row models.Resource
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	return row, err
}

// FindLatestByCustomerEmail returns the newest document generated for the
// given customer.
func (r *Repository) FindLatestByCustomerEmail(ctx context.Context, email string) (models.Resource, error) {
	var row models.Resource
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("generated_at DESC").
		First(&row).
		Error
	return row, err
}

// List returns every resource, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Resource, error) {
	var rows []models.Resource
	err := r.db.WithContext(ctx).Order("generated_at DESC").Find(&rows).Error
	return rows, err
}
