package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autorecurso/autorecurso-backend/api/controllers"
	"github.com/autorecurso/autorecurso-backend/api/middleware"
	"github.com/autorecurso/autorecurso-backend/internal/analytics"
	"github.com/autorecurso/autorecurso-backend/internal/customers"
	intakesvc "github.com/autorecurso/autorecurso-backend/internal/intake"
	"github.com/autorecurso/autorecurso-backend/internal/mailer"
	"github.com/autorecurso/autorecurso-backend/internal/resources"
	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/config"
	"github.com/autorecurso/autorecurso-backend/pkg/db"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	intakeService intakesvc.Service,
	analyticsService analytics.Service,
	resourceService resources.Service,
	settingsService settings.Service,
	mailerService mailer.Service,
	customerRepo *customers.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", controllers.CreateSession(intakeService, logg))
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.GetSession(intakeService, logg))
			r.Post("/ticket", controllers.UploadTicket(intakeService, logg))
			r.Post("/license", controllers.UploadLicense(intakeService, logg))
			r.Post("/strategy", controllers.SelectStrategy(intakeService, logg))
			r.Post("/reason", controllers.SetReason(intakeService, logg))
			r.Patch("/personal-info", controllers.UpdatePersonalInfo(intakeService, logg))
			r.Post("/checkout", controllers.StartCheckout(intakeService, logg))
			r.Post("/payment/confirm", controllers.ConfirmPayment(intakeService, logg))
			r.Post("/generate", controllers.GenerateDocument(intakeService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.Admin, logg))

		r.Get("/stats", controllers.AdminStats(analyticsService, logg))
		r.Get("/events", controllers.AdminEvents(analyticsService, logg))
		r.Get("/carts", controllers.AdminAbandonedCarts(analyticsService, logg))
		r.Post("/carts/recovery", controllers.AdminSendCartRecovery(analyticsService, mailerService, logg))
		r.Get("/customers", controllers.AdminCustomers(customerRepo, logg))
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", controllers.AdminResources(resourceService, logg))
			r.Post("/resend", controllers.AdminResendResourceEmail(resourceService, mailerService, analyticsService, logg))
			r.Get("/{resourceId}", controllers.AdminResourceDetail(resourceService, logg))
		})
		r.Delete("/data", controllers.AdminClearData(analyticsService, logg))
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminSettingsGet(settingsService, logg))
			r.Patch("/", controllers.AdminSettingsUpdate(settingsService, logg))
		})
	})

	return r
}
