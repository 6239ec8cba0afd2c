package brevo

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
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

const defaultTimeout = 15 * time.Second

var (
	errAPIKeyRequired = errors.New("brevo api key is required")
	errLoggerRequired = errors.New("brevo logger is required")
)

// Client sends transactional email through the Brevo SMTP API. There is no
// retry here; callers treat delivery failure as non-fatal and record an event.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
	logger      *logger.Logger
}

// Message is one transactional email. TextContent is optional.
type Message struct {
	ToEmail     string
	Subject     string
	HTMLContent string
	TextContent string
}

// NewClient initializes the Brevo wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.EmailConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      apiKey,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		logger:      logg,
	}

	logg.Info(ctx, "brevo client initialized")
	return c, nil
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
	TextContent string  `json:"textContent,omitempty"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send delivers one message. The recipient display name is derived from the
// local part of the address.
func (c *Client) Send(ctx context.Context, msg Message) error {
	body := sendRequest{
		Sender:      party{Name: c.senderName, Email: c.senderEmail},
		To:          []party{{Name: recipientName(msg.ToEmail), Email: msg.ToEmail}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLContent,
		TextContent: msg.TextContent,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding brevo request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building brevo request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	c.log(ctx, "request", map[string]any{"subject": msg.Subject})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling brevo")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		sendErr := pkgerrors.New(
			pkgerrors.CodeDependency,
			fmt.Sprintf("brevo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		)
		c.log(ctx, "error", map[string]any{"error": sendErr.Error()})
		return sendErr
	}

	c.log(ctx, "response", map[string]any{"status": resp.StatusCode})
	return nil
}

func recipientName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func (c *Client) log(ctx context.Context, phase string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": "send_email",
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	if phase == "error" {
		c.logger.Error(ctx, "brevo send_email", errors.New(fmt.Sprint(fields["error"])))
		return
	}
	c.logger.Info(ctx, fmt.Sprintf("brevo %s", phase))
}
