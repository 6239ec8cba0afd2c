package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/autorecurso/autorecurso-backend/api/responses"
	"github.com/autorecurso/autorecurso-backend/api/validators"
	"github.com/autorecurso/autorecurso-backend/internal/analytics"
	"github.com/autorecurso/autorecurso-backend/internal/customers"
	"github.com/autorecurso/autorecurso-backend/internal/mailer"
	"github.com/autorecurso/autorecurso-backend/internal/resources"
	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

func AdminStats(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminEvents lists the raw event log, optionally filtered with ?type=.
func AdminEvents(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		eventType := enums.AnalyticsEventType(strings.TrimSpace(r.URL.Query().Get("type")))
		events, err := svc.Events(r.Context(), eventType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, events)
	}
}

func AdminAbandonedCarts(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		carts, err := svc.AbandonedCarts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, carts)
	}
}

func AdminCustomers(repo *customers.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer repository unavailable"))
			return
		}

		rows, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers"))
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminResources(svc resources.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminResourceDetail(svc resources.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "resource service unavailable"))
			return
		}

		row, err := svc.GetByID(r.Context(), chi.URLParam(r, "resourceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

type resendEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AdminResendResourceEmail re-sends the latest generated document for a
// customer. Having no generated document on file is an error, not a no-op.
func AdminResendResourceEmail(resourceSvc resources.Service, mailerSvc mailer.Service, analyticsSvc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resourceSvc == nil || mailerSvc == nil || analyticsSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin services unavailable"))
			return
		}

		var payload resendEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resource, err := resourceSvc.FindLatestByCustomerEmail(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithCustomerEmail(r.Context(), payload.Email)
		if err := mailerSvc.SendResourceEmail(ctx, resource.CustomerEmail, resource.CustomerName, resource.TicketPlate, resource.DocumentContent); err != nil {
			logEventBestEffort(ctx, analyticsSvc, logg, enums.AnalyticsEventEmailFailed, analytics.EventData{
				CustomerName:  resource.CustomerName,
				CustomerEmail: resource.CustomerEmail,
				TicketPlate:   resource.TicketPlate,
				ErrorMessage:  err.Error(),
			})
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send resource email"))
			return
		}

		logEventBestEffort(ctx, analyticsSvc, logg, enums.AnalyticsEventEmailSent, analytics.EventData{
			CustomerName:  resource.CustomerName,
			CustomerEmail: resource.CustomerEmail,
			TicketPlate:   resource.TicketPlate,
		})
		responses.WriteSuccess(w, map[string]string{"status": "sent", "resourceId": resource.ID})
	}
}

// AdminSendCartRecovery nudges an abandoned checkout by email.
func AdminSendCartRecovery(analyticsSvc analytics.Service, mailerSvc mailer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analyticsSvc == nil || mailerSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin services unavailable"))
			return
		}

		var payload resendEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		carts, err := analyticsSvc.AbandonedCarts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithCustomerEmail(r.Context(), payload.Email)
		for _, cart := range carts {
			if !strings.EqualFold(cart.Email, payload.Email) {
				continue
			}
			if err := mailerSvc.SendCartRecoveryEmail(ctx, cart.Email, cart.Name, cart.TicketPlate); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send recovery email"))
				return
			}
			logEventBestEffort(ctx, analyticsSvc, logg, enums.AnalyticsEventEmailSent, analytics.EventData{
				CustomerName:  cart.Name,
				CustomerEmail: cart.Email,
				TicketPlate:   cart.TicketPlate,
			})
			responses.WriteSuccess(w, map[string]string{"status": "sent"})
			return
		}

		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no abandoned cart for this email"))
	}
}

// AdminClearData wipes events, carts, customers and resources. Settings are
// kept so free-mode configuration survives a reset.
func AdminClearData(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		if err := svc.ClearAll(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func AdminSettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		row, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminSettingsUpdate(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var params settings.UpdateParams
		if err := validators.DecodeJSONBody(r, &params); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func logEventBestEffort(ctx context.Context, svc analytics.Service, logg *logger.Logger, eventType enums.AnalyticsEventType, data analytics.EventData) {
	if err := svc.LogEvent(ctx, eventType, data); err != nil && logg != nil {
		logg.Error(ctx, "log analytics event", err)
	}
}
