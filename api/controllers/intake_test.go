package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	intakesvc "github.com/autorecurso/autorecurso-backend/internal/intake"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

type stubIntakeService struct {
	state    intakesvc.SessionState
	checkout intakesvc.CheckoutResult
	err      error

	lastSessionID string
	lastImage     string
	lastMime      string
	lastStrategy  string
}

func (s *stubIntakeService) CreateSession(ctx context.Context) (intakesvc.SessionState, error) {
	return s.state, s.err
}

func (s *stubIntakeService) GetSession(ctx context.Context, sessionID string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	return s.state, s.err
}

func (s *stubIntakeService) UploadTicket(ctx context.Context, sessionID, imageBase64, mimeType string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	s.lastImage = imageBase64
	s.lastMime = mimeType
	return s.state, s.err
}

func (s *stubIntakeService) UploadLicense(ctx context.Context, sessionID, imageBase64, mimeType string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	s.lastImage = imageBase64
	s.lastMime = mimeType
	return s.state, s.err
}

func (s *stubIntakeService) SelectStrategy(ctx context.Context, sessionID, strategyID string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	s.lastStrategy = strategyID
	return s.state, s.err
}

func (s *stubIntakeService) SetReason(ctx context.Context, sessionID, reason string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	return s.state, s.err
}

func (s *stubIntakeService) UpdatePersonalInfo(ctx context.Context, sessionID string, patch intakesvc.PersonalInfoPatch) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	return s.state, s.err
}

func (s *stubIntakeService) StartCheckout(ctx context.Context, sessionID string) (intakesvc.CheckoutResult, error) {
	s.lastSessionID = sessionID
	return s.checkout, s.err
}

func (s *stubIntakeService) ConfirmPayment(ctx context.Context, sessionID string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	return s.state, s.err
}

func (s *stubIntakeService) Generate(ctx context.Context, sessionID string) (intakesvc.SessionState, error) {
	s.lastSessionID = sessionID
	return s.state, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func sessionRequest(method, target, sessionID, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("sessionId", sessionID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateSession(t *testing.T) {
	stub := &stubIntakeService{state: intakesvc.SessionState{ID: "sess-1", Step: enums.AppStepStart}}
	rec := httptest.NewRecorder()
	CreateSession(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var envelope struct {
		Data intakesvc.SessionState `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.ID != "sess-1" || envelope.Data.Step != enums.AppStepStart {
		t.Fatalf("unexpected session payload: %+v", envelope.Data)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	stub := &stubIntakeService{err: pkgerrors.New(pkgerrors.CodeNotFound, "session not found")}
	rec := httptest.NewRecorder()
	GetSession(stub, testLogger()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/v1/sessions/missing", "missing", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if stub.lastSessionID != "missing" {
		t.Fatalf("expected session id to reach the service, got %q", stub.lastSessionID)
	}
}

func TestUploadTicket(t *testing.T) {
	t.Run("missing mime type", func(t *testing.T) {
		stub := &stubIntakeService{}
		rec := httptest.NewRecorder()
		req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/ticket", "sess-1", `{"imageBase64":"aGVsbG8="}`)
		UploadTicket(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without mime type, got %d", rec.Code)
		}
		if stub.lastImage != "" {
			t.Fatalf("service must not be called on invalid body")
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubIntakeService{state: intakesvc.SessionState{ID: "sess-1", Step: enums.AppStepStrategySelection}}
		rec := httptest.NewRecorder()
		req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/ticket", "sess-1", `{"imageBase64":"aGVsbG8=","mimeType":"image/jpeg"}`)
		UploadTicket(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastImage != "aGVsbG8=" || stub.lastMime != "image/jpeg" {
			t.Fatalf("unexpected params: image=%q mime=%q", stub.lastImage, stub.lastMime)
		}
	})

	t.Run("analysis failure surfaces as dependency error", func(t *testing.T) {
		stub := &stubIntakeService{err: pkgerrors.New(pkgerrors.CodeDependency, "analyze ticket")}
		rec := httptest.NewRecorder()
		req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/ticket", "sess-1", `{"imageBase64":"aGVsbG8=","mimeType":"image/jpeg"}`)
		UploadTicket(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestSelectStrategy(t *testing.T) {
	t.Run("missing strategy id", func(t *testing.T) {
		stub := &stubIntakeService{}
		rec := httptest.NewRecorder()
		req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/strategy", "sess-1", `{}`)
		SelectStrategy(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubIntakeService{state: intakesvc.SessionState{ID: "sess-1", Step: enums.AppStepUserInput}}
		rec := httptest.NewRecorder()
		req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/strategy", "sess-1", `{"strategyId":"s1"}`)
		SelectStrategy(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastStrategy != "s1" {
			t.Fatalf("expected strategy id to reach the service, got %q", stub.lastStrategy)
		}
	})
}

func TestStartCheckout(t *testing.T) {
	stub := &stubIntakeService{checkout: intakesvc.CheckoutResult{
		CheckoutURL: "https://pay.example/bill_1",
		Session:     intakesvc.SessionState{ID: "sess-1", Step: enums.AppStepPayment},
	}}
	rec := httptest.NewRecorder()
	req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/checkout", "sess-1", "")
	StartCheckout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data intakesvc.CheckoutResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.CheckoutURL != "https://pay.example/bill_1" || envelope.Data.Free {
		t.Fatalf("unexpected checkout payload: %+v", envelope.Data)
	}
}

func TestConfirmPaymentStateConflict(t *testing.T) {
	stub := &stubIntakeService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "no payment in progress for this session")}
	rec := httptest.NewRecorder()
	req := sessionRequest(http.MethodPost, "/api/v1/sessions/sess-1/payment/confirm", "sess-1", "")
	ConfirmPayment(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Message != "no payment in progress for this session" {
		t.Fatalf("unexpected error message: %q", envelope.Error.Message)
	}
}

func TestUpdatePersonalInfoRejectsUnknownFields(t *testing.T) {
	stub := &stubIntakeService{}
	rec := httptest.NewRecorder()
	req := sessionRequest(http.MethodPatch, "/api/v1/sessions/sess-1/personal-info", "sess-1", `{"fullName":"Maria","unknown":true}`)
	UpdatePersonalInfo(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}
