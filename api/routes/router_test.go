package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autorecurso/autorecurso-backend/internal/analytics"
	"github.com/autorecurso/autorecurso-backend/internal/customers"
	"github.com/autorecurso/autorecurso-backend/internal/intake"
	"github.com/autorecurso/autorecurso-backend/internal/mailer"
	"github.com/autorecurso/autorecurso-backend/internal/resources"
	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/abacatepay"
	"github.com/autorecurso/autorecurso-backend/pkg/brevo"
	"github.com/autorecurso/autorecurso-backend/pkg/config"
	"github.com/autorecurso/autorecurso-backend/pkg/db"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	"github.com/autorecurso/autorecurso-backend/pkg/genai"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/autorecurso/autorecurso-backend/pkg/migrate"
)

type stubAI struct{}

func (stubAI) AnalyzeTicket(context.Context, string, string) (*genai.TicketAnalysis, error) {
	return &genai.TicketAnalysis{VehiclePlate: "ABC1D23"}, nil
}

func (stubAI) AnalyzeLicense(context.Context, string, string) (*genai.PersonalInfo, error) {
	return &genai.PersonalInfo{}, nil
}

func (stubAI) GenerateAppeal(context.Context, genai.AppealParams) (string, error) {
	return "documento", nil
}

type stubBilling struct{}

func (stubBilling) CreateBilling(context.Context, abacatepay.CustomerParams) (*abacatepay.Billing, error) {
	return &abacatepay.Billing{ID: "bill_1", URL: "https://pay.example/bill_1"}, nil
}

func (stubBilling) CheckBillingStatus(context.Context, string) (enums.BillingStatus, error) {
	return enums.BillingStatusPending, nil
}

type stubSender struct{}

func (stubSender) Send(context.Context, brevo.Message) error {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{
		App:   config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Admin: config.AdminConfig{Password: "s3cret"},
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dbClient, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, logg)
	require.NoError(t, err)
	t.Cleanup(func() { dbClient.Close() })
	require.NoError(t, migrate.Run(context.Background(), dbClient))

	settingsRepo := settings.NewRepository(dbClient.DB())
	customerRepo := customers.NewRepository(dbClient.DB())

	settingsService, err := settings.NewService(settings.ServiceParams{Repo: settingsRepo})
	require.NoError(t, err)

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Repo:         analytics.NewRepository(dbClient.DB()),
		SettingsRepo: settingsRepo,
		Logger:       logg,
	})
	require.NoError(t, err)

	resourceService, err := resources.NewService(resources.ServiceParams{
		ResourceRepo: resources.NewRepository(dbClient.DB()),
		CustomerRepo: customerRepo,
	})
	require.NoError(t, err)

	mailerService, err := mailer.NewService(mailer.ServiceParams{Sender: stubSender{}})
	require.NoError(t, err)

	intakeService, err := intake.NewService(intake.ServiceParams{
		SessionRepo: intake.NewRepository(dbClient.DB()),
		Analytics:   analyticsService,
		Resources:   resourceService,
		Mailer:      mailerService,
		Settings:    settingsService,
		AI:          stubAI{},
		Billing:     stubBilling{},
		Logger:      logg,
		PriceCents:  2490,
	})
	require.NoError(t, err)

	return NewRouter(cfg, logg, dbClient, intakeService, analyticsService, resourceService, settingsService, mailerService, customerRepo)
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, config.AppEnvDev, rec.Header().Get("X-AutoRecurso-Env"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"step":"START"`)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterAdminAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil)
	req.Header.Set("X-Admin-Password", "s3cret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"successRate"`)
}
