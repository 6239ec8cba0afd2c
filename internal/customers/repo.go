package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpsertParams identifies a customer by email; empty fields never overwrite
// existing values.
type UpsertParams struct {
	Email string
	Name  string
	CPF   string
	Phone string
}

// Repository encapsulates the customer registry.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert registers or refreshes the customer keyed by email. New rows get a
// generated id and zeroed totals; existing rows merge the provided fields and
// bump last activity.
func (r *Repository) Upsert(ctx context.Context, params UpsertParams) (models.Customer, error) {
	if params.Email == "" {
		return models.Customer{}, gorm.ErrInvalidValue
	}

	var row models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", params.Email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Customer{
			ID:           fmt.Sprintf("cust-%s", uuid.NewString()),
			Email:        params.Email,
			Name:         params.Name,
			CPF:          params.CPF,
			Phone:        params.Phone,
			TotalPaid:    decimal.Zero,
			LastActivity: time.Now().UTC(),
		}
		if createErr := r.db.WithContext(ctx).Create(&row).Error; createErr != nil {
			return models.Customer{}, createErr
		}
		return row, nil
	}
	if err != nil {
		return models.Customer{}, err
	}

	if params.Name != "" {
		row.Name = params.Name
	}
	if params.CPF != "" {
		row.CPF = params.CPF
	}
	if params.Phone != "" {
		row.Phone = params.Phone
	}
	row.LastActivity = time.Now().UTC()

	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Customer{}, err
	}
	return row, nil
}

// UpdateStats bumps the customer's counters and last activity.
func (r *Repository) UpdateStats(ctx context.Context, email string, resourceGenerated bool, amountPaid decimal.Decimal) error {
	var row models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return err
	}

	if resourceGenerated {
		row.TotalResources++
	}
	if amountPaid.IsPositive() {
		row.TotalPaid = row.TotalPaid.Add(amountPaid)
	}
	row.LastActivity = time.Now().UTC()

	return r.db.WithContext(ctx).Save(&row).Error
}

// FindByEmail loads one customer row.
func (r *Repository) FindByEmail(ctx context.Context, email string) (models.Customer, error) {
	var row models.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	return row, err
}

// List returns every customer, most recently active first.
func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.db.WithContext(ctx).Order("last_activity DESC").Find(&rows).Error
	return rows, err
}
