package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autorecurso/autorecurso-backend/pkg/config"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

func TestAdminAuth(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AdminAuth(config.AdminConfig{Password: "s3cret"}, logg)(next)

	makeRequest := func(password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil)
		if password != "" {
			req.Header.Set("X-Admin-Password", password)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		if rec := makeRequest(""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without password, got %d", rec.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if rec := makeRequest("guess"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
		}
	})

	t.Run("correct password", func(t *testing.T) {
		if rec := makeRequest("s3cret"); rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 with correct password, got %d", rec.Code)
		}
	})

	t.Run("empty configured password rejects everything", func(t *testing.T) {
		open := AdminAuth(config.AdminConfig{}, logg)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil)
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when no password configured, got %d", rec.Code)
		}
	})
}
