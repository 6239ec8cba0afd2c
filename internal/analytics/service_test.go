package analytics

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.AnalyticsEvent{},
		&models.AbandonedCart{},
		&models.Customer{},
		&models.Resource{},
		&models.AdminSettings{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	svc, err := NewService(ServiceParams{
		Repo:         NewRepository(db),
		SettingsRepo: settings.NewRepository(db),
		Logger:       logg,
	})
	require.NoError(t, err)
	return svc, db
}

func floatPtr(v float64) *float64 { return &v }

func TestLogEventUpsertsSingleCartPerEmail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	data := EventData{
		CustomerName:  "Maria Souza",
		CustomerEmail: "maria@example.com",
		TicketPlate:   "ABC1D23",
	}
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentStarted, data))

	data.TicketPlate = "XYZ9K88"
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventFormAbandoned, data))

	var carts []models.AbandonedCart
	require.NoError(t, db.Find(&carts).Error)
	require.Len(t, carts, 1)
	require.Equal(t, "maria@example.com", carts[0].Email)
	require.Equal(t, "XYZ9K88", carts[0].TicketPlate)
}

func TestLogEventRemovesCartOnCompletion(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	data := EventData{CustomerEmail: "maria@example.com", CustomerName: "Maria"}
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentStarted, data))
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentCompleted, EventData{
		CustomerEmail: "maria@example.com",
		Amount:        floatPtr(24.90),
	}))

	var carts []models.AbandonedCart
	require.NoError(t, db.Find(&carts).Error)
	require.Empty(t, carts)

	var events []models.AnalyticsEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 2)
}

func TestLogEventWithoutEmailSkipsCart(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, svc.LogEvent(context.Background(), enums.AnalyticsEventPaymentStarted, EventData{
		TicketPlate: "ABC1D23",
	}))

	var carts []models.AbandonedCart
	require.NoError(t, db.Find(&carts).Error)
	require.Empty(t, carts)
}

func TestLogEventRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.LogEvent(context.Background(), enums.AnalyticsEventType("made_up"), EventData{})
	require.Error(t, err)
}

func TestStatsAggregates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentCompleted, EventData{
		CustomerEmail: "a@example.com",
		Amount:        floatPtr(24.90),
	}))
	// historical event recorded without an amount falls back to the default
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentCompleted, EventData{
		CustomerEmail: "b@example.com",
	}))
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventResourceGenerated, EventData{
		CustomerEmail: "a@example.com",
	}))
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventGenerationError, EventData{
		ErrorMessage: "model timeout",
	}))
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventFormAbandoned, EventData{
		CustomerEmail: "c@example.com",
	}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalPayments)
	require.Equal(t, 1, stats.TotalResources)
	require.Equal(t, 1, stats.TotalErrors)
	require.Equal(t, 1, stats.TotalAbandoned)
	require.Equal(t, 2, stats.PaymentsLast24h)
	require.Equal(t, "49.8", stats.TotalRevenue.String())
	require.Equal(t, "50.0", stats.SuccessRate)
	require.False(t, stats.IsFreeGenerationEnabled)
	require.Equal(t, 10, stats.FreeGenerationLimit)
}

func TestStatsSuccessRateWithoutPayments(t *testing.T) {
	svc, _ := newTestService(t)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0", stats.SuccessRate)
	require.True(t, stats.TotalRevenue.IsZero())
}

func TestClearAllPreservesSettings(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	settingsRepo := settings.NewRepository(db)
	_, err := settingsRepo.Save(ctx, models.AdminSettings{
		IsFreeGenerationEnabled: true,
		FreeGenerationLimit:     25,
		FreeGenerationsUsed:     3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventPaymentStarted, EventData{CustomerEmail: "x@example.com"}))
	require.NoError(t, db.Create(&models.Customer{ID: "cust-1", Email: "x@example.com"}).Error)
	require.NoError(t, db.Create(&models.Resource{ID: "res-1", CustomerID: "cust-1", CustomerEmail: "x@example.com"}).Error)

	require.NoError(t, svc.ClearAll(ctx))

	for _, model := range []any{&models.AnalyticsEvent{}, &models.AbandonedCart{}, &models.Customer{}, &models.Resource{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	saved, err := settingsRepo.Get(ctx)
	require.NoError(t, err)
	require.True(t, saved.IsFreeGenerationEnabled)
	require.Equal(t, 25, saved.FreeGenerationLimit)
	require.Equal(t, 3, saved.FreeGenerationsUsed)
}

func TestEventsFilterByType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventEmailSent, EventData{CustomerEmail: "a@example.com"}))
	require.NoError(t, svc.LogEvent(ctx, enums.AnalyticsEventEmailFailed, EventData{CustomerEmail: "a@example.com"}))

	rows, err := svc.Events(ctx, enums.AnalyticsEventEmailSent)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, enums.AnalyticsEventEmailSent, rows[0].Type)

	all, err := svc.Events(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
