package abacatepay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autorecurso/autorecurso-backend/pkg/config"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	client, err := NewClient(context.Background(), config.BillingConfig{
		APIKey:        "abc_dev_test",
		BaseURL:       server.URL,
		PriceCents:    2490,
		ReturnURL:     "https://example.test",
		CompletionURL: "https://example.test/?success=true",
	}, logg)
	require.NoError(t, err)
	return client, server
}

func TestCreateBillingBuildsExpectedPayload(t *testing.T) {
	var captured createBillingRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/billing/create", r.URL.Path)
		require.Equal(t, "Bearer abc_dev_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(createBillingResponse{
			Data: &billingData{ID: "bill_1", URL: "https://pay.example/bill_1", Status: "PENDING"},
		})
	}))

	billing, err := client.CreateBilling(context.Background(), CustomerParams{
		Name:  "Maria Souza",
		Email: "maria@example.com",
		CPF:   "111.444.777-35",
		Phone: "(11) 98888-7777",
	})
	require.NoError(t, err)
	require.Equal(t, "bill_1", billing.ID)
	require.Equal(t, "https://pay.example/bill_1", billing.URL)

	require.Equal(t, "ONE_TIME", captured.Frequency)
	require.Equal(t, []string{"PIX"}, captured.Methods)
	require.Len(t, captured.Products, 1)
	require.Equal(t, "recurso-multa-ai", captured.Products[0].ExternalID)
	require.Equal(t, 2490, captured.Products[0].Price)
	require.Equal(t, "11144477735", captured.Customer.TaxID)
	require.Equal(t, "11988887777", captured.Customer.Cellphone)
	require.True(t, captured.DevMode)
}

func TestCreateBillingSurfacesProviderError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(createBillingResponse{Error: "invalid taxId"})
	}))

	_, err := client.CreateBilling(context.Background(), CustomerParams{Name: "x", Email: "x@x", CPF: "1", Phone: "1"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestCheckBillingStatusFiltersList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/billing/list", r.URL.Path)
		json.NewEncoder(w).Encode(listBillingsResponse{Data: []billingData{
			{ID: "bill_1", Status: "PENDING"},
			{ID: "bill_2", Status: "PAID"},
		}})
	}))

	status, err := client.CheckBillingStatus(context.Background(), "bill_2")
	require.NoError(t, err)
	require.Equal(t, enums.BillingStatusPaid, status)
	require.True(t, status.IsSettled())
}

func TestCheckBillingStatusReportsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listBillingsResponse{Data: []billingData{{ID: "bill_1", Status: "PENDING"}}})
	}))

	status, err := client.CheckBillingStatus(context.Background(), "bill_missing")
	require.NoError(t, err)
	require.Equal(t, enums.BillingStatusNotFound, status)
	require.False(t, status.IsSettled())
}

func TestDoMapsHTTPStatusToDomainCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.CheckBillingStatus(context.Background(), "bill_1")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
