package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Repository encapsulates event log and abandoned cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertEvent appends one event row.
func (r *Repository) InsertEvent(ctx context.Context, row *models.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// ListEvents returns events newest first, optionally filtered by type.
func (r *Repository) ListEvents(ctx context.Context, eventType enums.AnalyticsEventType) ([]models.AnalyticsEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.AnalyticsEvent{})
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}

	var rows []models.AnalyticsEvent
	err := query.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// CountByType counts every event of the given type.
func (r *Repository) CountByType(ctx context.Context, eventType enums.AnalyticsEventType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("type = ?", eventType).
		Count(&count).
		Error
	return count, err
}

// CountByTypeSince counts events of the given type created after the cutoff.
func (r *Repository) CountByTypeSince(ctx context.Context, eventType enums.AnalyticsEventType, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("type = ? AND created_at > ?", eventType, since).
		Count(&count).
		Error
	return count, err
}

// UpsertCart creates or refreshes the abandoned cart keyed by email.
func (r *Repository) UpsertCart(ctx context.Context, cart models.AbandonedCart) error {
	var row models.AbandonedCart
	err := r.db.WithContext(ctx).Where("email = ?", cart.Email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart.ID = uuid.NewString()
		return r.db.WithContext(ctx).Create(&cart).Error
	}
	if err != nil {
		return err
	}

	row.Name = cart.Name
	row.CPF = cart.CPF
	row.Phone = cart.Phone
	row.TicketPlate = cart.TicketPlate
	row.TicketArticle = cart.TicketArticle
	return r.db.WithContext(ctx).Save(&row).Error
}

// DeleteCartByEmail removes the email's cart if present.
func (r *Repository) DeleteCartByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.AbandonedCart{}).
		Error
}

// ListCarts returns every abandoned cart, most recently touched first.
func (r *Repository) ListCarts(ctx context.Context) ([]models.AbandonedCart, error) {
	var rows []models.AbandonedCart
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

// CountCarts returns the abandoned cart total.
func (r *Repository) CountCarts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AbandonedCart{}).Count(&count).Error
	return count, err
}

// ClearAll truncates events, carts, customers, and resources. The settings
// singleton is deliberately left untouched. All deletes are attempted and the
// failures aggregated.
func (r *Repository) ClearAll(ctx context.Context) error {
	wipe := func(model any) error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(model).
			Error
	}

	return multierr.Combine(
		wipe(&models.AnalyticsEvent{}),
		wipe(&models.AbandonedCart{}),
		wipe(&models.Customer{}),
		wipe(&models.Resource{}),
	)
}
