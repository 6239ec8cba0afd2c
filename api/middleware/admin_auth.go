package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/autorecurso/autorecurso-backend/api/responses"
	"github.com/autorecurso/autorecurso-backend/pkg/config"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

const adminPasswordHeader = "X-Admin-Password"

// AdminAuth gates the admin surface behind the shared operator password.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(adminPasswordHeader)
			if cfg.Password == "" || supplied == "" ||
				subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.Password)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin password"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
