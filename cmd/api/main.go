package main

import (
	"context"
	"net/http"
	"os"

	"github.com/autorecurso/autorecurso-backend/api/routes"
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
	"github.com/autorecurso/autorecurso-backend/pkg/genai"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/autorecurso/autorecurso-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	aiClient, err := genai.NewClient(context.Background(), cfg.AI, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create ai client", err)
		os.Exit(1)
	}

	billingClient, err := abacatepay.NewClient(context.Background(), cfg.Billing, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create billing client", err)
		os.Exit(1)
	}

	brevoClient, err := brevo.NewClient(context.Background(), cfg.Email, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create email client", err)
		os.Exit(1)
	}

	settingsRepo := settings.NewRepository(dbClient.DB())
	customerRepo := customers.NewRepository(dbClient.DB())

	settingsService, err := settings.NewService(settings.ServiceParams{Repo: settingsRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Repo:         analytics.NewRepository(dbClient.DB()),
		SettingsRepo: settingsRepo,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	resourceService, err := resources.NewService(resources.ServiceParams{
		ResourceRepo: resources.NewRepository(dbClient.DB()),
		CustomerRepo: customerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create resource service", err)
		os.Exit(1)
	}

	mailerService, err := mailer.NewService(mailer.ServiceParams{Sender: brevoClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer service", err)
		os.Exit(1)
	}

	intakeService, err := intake.NewService(intake.ServiceParams{
		SessionRepo: intake.NewRepository(dbClient.DB()),
		Analytics:   analyticsService,
		Resources:   resourceService,
		Mailer:      mailerService,
		Settings:    settingsService,
		AI:          aiClient,
		Billing:     billingClient,
		Logger:      logg,
		PriceCents:  cfg.Billing.PriceCents,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create intake service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			intakeService,
			analyticsService,
			resourceService,
			settingsService,
			mailerService,
			customerRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
