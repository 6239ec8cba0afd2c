package abacatepay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autorecurso/autorecurso-backend/pkg/config"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

const (
	productExternalID  = "recurso-multa-ai"
	productName        = "Recurso de Multa Inteligente"
	productDescription = "Análise e geração de recurso de multa via IA"

	defaultTimeout = 30 * time.Second
)

var (
	errAPIKeyRequired = errors.New("abacatepay api key is required")
	errLoggerRequired = errors.New("abacatepay logger is required")
)

// Client exposes AbacatePay billing primitives with centralized auth, logging,
// and error mapping.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	priceCents    int
	returnURL     string
	completionURL string
	devMode       bool
	logger        *logger.Logger
}

// Billing is the created charge handle the checkout flow needs.
type Billing struct {
	ID  string
	URL string
}

// CustomerParams identifies the payer on a new billing.
type CustomerParams struct {
	Name  string
	Email string
	CPF   string
	Phone string
}

// NewClient initializes the AbacatePay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.BillingConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        apiKey,
		priceCents:    cfg.PriceCents,
		returnURL:     cfg.ReturnURL,
		completionURL: cfg.CompletionURL,
		devMode:       cfg.DevMode(),
		logger:        logg,
	}

	logg.Info(ctx, "abacatepay client initialized")
	return c, nil
}

type createBillingRequest struct {
	Frequency     string          `json:"frequency"`
	Methods       []string        `json:"methods"`
	Products      []productParams `json:"products"`
	Customer      customerParams  `json:"customer"`
	ReturnURL     string          `json:"returnUrl"`
	CompletionURL string          `json:"completionUrl"`
	DevMode       bool            `json:"devMode"`
}

type productParams struct {
	ExternalID  string `json:"externalId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}

type customerParams struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	TaxID     string `json:"taxId"`
	Cellphone string `json:"cellphone"`
}

type billingData struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type createBillingResponse struct {
	Data  *billingData `json:"data"`
	Error string       `json:"error"`
}

type listBillingsResponse struct {
	Data  []billingData `json:"data"`
	Error string        `json:"error"`
}

// CreateBilling opens a one-time PIX charge and returns the hosted checkout.
func (c *Client) CreateBilling(ctx context.Context, customer CustomerParams) (*Billing, error) {
	body := createBillingRequest{
		Frequency: "ONE_TIME",
		Methods:   []string{"PIX"},
		Products: []productParams{{
			ExternalID:  productExternalID,
			Name:        productName,
			Description: productDescription,
			Quantity:    1,
			Price:       c.priceCents,
		}},
		Customer: customerParams{
			Name:      customer.Name,
			Email:     customer.Email,
			TaxID:     digitsOnly(customer.CPF),
			Cellphone: digitsOnly(customer.Phone),
		},
		ReturnURL:     c.returnURL,
		CompletionURL: c.completionURL,
		DevMode:       c.devMode,
	}

	c.log(ctx, "request", "create_billing", map[string]any{
		"amount_cents": c.priceCents,
		"dev_mode":     c.devMode,
	})

	var resp createBillingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/billing/create", body, &resp); err != nil {
		c.log(ctx, "error", "create_billing", map[string]any{"error": err.Error()})
		return nil, err
	}
	if resp.Error != "" {
		err := pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("abacatepay create billing failed: %s", resp.Error))
		c.log(ctx, "error", "create_billing", map[string]any{"error": resp.Error})
		return nil, err
	}
	if resp.Data == nil || resp.Data.ID == "" || resp.Data.URL == "" {
		err := pkgerrors.New(pkgerrors.CodeDependency, "abacatepay create billing returned no data")
		c.log(ctx, "error", "create_billing", map[string]any{"error": err.Error()})
		return nil, err
	}

	c.log(ctx, "response", "create_billing", map[string]any{
		"billing_id": resp.Data.ID,
		"status":     resp.Data.Status,
	})
	return &Billing{ID: resp.Data.ID, URL: resp.Data.URL}, nil
}

// CheckBillingStatus fetches the billing list and filters for the given id.
// The provider offers no single-billing read, so this inherits the listing's
// truncation: a charge beyond the first page reports NOT_FOUND.
func (c *Client) CheckBillingStatus(ctx context.Context, billingID string) (enums.BillingStatus, error) {
	c.log(ctx, "request", "check_billing_status", map[string]any{"billing_id": billingID})

	var resp listBillingsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/billing/list", nil, &resp); err != nil {
		c.log(ctx, "error", "check_billing_status", map[string]any{"error": err.Error()})
		return "", err
	}
	if resp.Error != "" {
		err := pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("abacatepay billing list failed: %s", resp.Error))
		c.log(ctx, "error", "check_billing_status", map[string]any{"error": resp.Error})
		return "", err
	}

	status := enums.BillingStatusNotFound
	for _, billing := range resp.Data {
		if billing.ID == billingID {
			status = enums.BillingStatus(billing.Status)
			break
		}
	}

	c.log(ctx, "response", "check_billing_status", map[string]any{
		"billing_id": billingID,
		"status":     string(status),
	})
	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding abacatepay request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building abacatepay request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling abacatepay")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading abacatepay response")
	}

	if resp.StatusCode >= 400 {
		return pkgerrors.New(
			domainCodeForStatus(resp.StatusCode),
			fmt.Sprintf("abacatepay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding abacatepay response")
	}
	return nil
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("abacatepay %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("abacatepay %s", phase))
	}
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeDependency
	}
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
