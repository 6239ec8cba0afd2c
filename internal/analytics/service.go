package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaymentAmount is assumed when a completed payment event carries no
// explicit amount. Value in reais.
var DefaultPaymentAmount = decimal.NewFromFloat(24.90)

// ServiceParams groups dependencies for the analytics service.
type ServiceParams struct {
	Repo         *Repository
	SettingsRepo *settings.Repository
	Logger       *logger.Logger
}

// Service exposes the local event log and its derived registries.
type Service interface {
	LogEvent(ctx context.Context, eventType enums.AnalyticsEventType, data EventData) error
	Events(ctx context.Context, eventType enums.AnalyticsEventType) ([]models.AnalyticsEvent, error)
	Stats(ctx context.Context) (Stats, error)
	AbandonedCarts(ctx context.Context) ([]models.AbandonedCart, error)
	ClearAll(ctx context.Context) error
}

type service struct {
	repo         *Repository
	settingsRepo *settings.Repository
	logger       *logger.Logger
}

// NewService builds an analytics service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics repo is required")
	}
	if params.SettingsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:         params.Repo,
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger,
	}, nil
}

// LogEvent appends the event and applies the cart side effects: checkout
// starts and abandonments upsert the email's cart, completions remove it.
// Events without a customer email skip the cart bookkeeping.
func (s *service) LogEvent(ctx context.Context, eventType enums.AnalyticsEventType, data EventData) error {
	if !eventType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown event type")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding event data")
	}

	row := models.AnalyticsEvent{
		ID:   uuid.NewString(),
		Type: eventType,
		Data: payload,
	}
	if err := s.repo.InsertEvent(ctx, &row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append event")
	}

	if data.CustomerEmail == "" {
		return nil
	}

	switch eventType {
	case enums.AnalyticsEventFormAbandoned, enums.AnalyticsEventPaymentStarted:
		cart := models.AbandonedCart{
			Email:         data.CustomerEmail,
			Name:          data.CustomerName,
			CPF:           data.CustomerCPF,
			Phone:         data.CustomerPhone,
			TicketPlate:   data.TicketPlate,
			TicketArticle: data.TicketArticle,
		}
		if err := s.repo.UpsertCart(ctx, cart); err != nil {
			s.logger.Error(ctx, "upsert abandoned cart", err)
		}
	case enums.AnalyticsEventPaymentCompleted, enums.AnalyticsEventResourceGenerated:
		if err := s.repo.DeleteCartByEmail(ctx, data.CustomerEmail); err != nil {
			s.logger.Error(ctx, "remove abandoned cart", err)
		}
	}

	return nil
}

func (s *service) Events(ctx context.Context, eventType enums.AnalyticsEventType) ([]models.AnalyticsEvent, error) {
	if eventType != "" && !eventType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown event type")
	}
	rows, err := s.repo.ListEvents(ctx, eventType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return rows, nil
}

// Stats aggregates the dashboard numbers. Revenue sums completed payment
// amounts with the historical default for events recorded without one.
func (s *service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	totals := map[enums.AnalyticsEventType]*int{
		enums.AnalyticsEventResourceGenerated: &stats.TotalResources,
		enums.AnalyticsEventPaymentCompleted:  &stats.TotalPayments,
		enums.AnalyticsEventGenerationError:   &stats.TotalErrors,
	}
	for eventType, target := range totals {
		count, err := s.repo.CountByType(ctx, eventType)
		if err != nil {
			return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count events")
		}
		*target = int(count)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	windows := map[enums.AnalyticsEventType]*int{
		enums.AnalyticsEventResourceGenerated: &stats.ResourcesLast24h,
		enums.AnalyticsEventPaymentCompleted:  &stats.PaymentsLast24h,
		enums.AnalyticsEventGenerationError:   &stats.ErrorsLast24h,
	}
	for eventType, target := range windows {
		count, err := s.repo.CountByTypeSince(ctx, eventType, cutoff)
		if err != nil {
			return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recent events")
		}
		*target = int(count)
	}

	carts, err := s.repo.CountCarts(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count carts")
	}
	stats.TotalAbandoned = int(carts)

	revenue, err := s.totalRevenue(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalRevenue = revenue

	stats.SuccessRate = "0"
	if stats.TotalPayments > 0 {
		rate := decimal.NewFromInt(int64(stats.TotalResources)).
			Div(decimal.NewFromInt(int64(stats.TotalPayments))).
			Mul(decimal.NewFromInt(100))
		stats.SuccessRate = rate.StringFixed(1)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	stats.IsFreeGenerationEnabled = cfg.IsFreeGenerationEnabled
	stats.FreeGenerationLimit = cfg.FreeGenerationLimit
	stats.FreeGenerationsUsed = cfg.FreeGenerationsUsed

	return stats, nil
}

func (s *service) totalRevenue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.repo.ListEvents(ctx, enums.AnalyticsEventPaymentCompleted)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment events")
	}

	total := decimal.Zero
	for _, row := range rows {
		var data EventData
		if len(row.Data) > 0 {
			if err := json.Unmarshal(row.Data, &data); err != nil {
				s.logger.Warn(s.logger.WithField(ctx, "event_id", row.ID), "skipping malformed event data")
				continue
			}
		}
		if data.Amount != nil {
			total = total.Add(decimal.NewFromFloat(*data.Amount))
			continue
		}
		total = total.Add(DefaultPaymentAmount)
	}
	return total, nil
}

func (s *service) AbandonedCarts(ctx context.Context) ([]models.AbandonedCart, error) {
	rows, err := s.repo.ListCarts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}
	return rows, nil
}

// ClearAll wipes the event log and registries. Settings survive.
func (s *service) ClearAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear analytics data")
	}
	s.logger.Info(ctx, "analytics data cleared")
	return nil
}
