package genai

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

	"github.com/sethvargo/go-retry"

	"github.com/autorecurso/autorecurso-backend/pkg/config"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("gemini api key is required")
	errLoggerRequired = errors.New("gemini logger is required")
)

// Client talks to the hosted generateContent endpoint. Rate-limit responses
// are retried with exponential backoff; every other failure propagates
// immediately.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	retryAttempts  int
	retryBaseDelay time.Duration
	logger         *logger.Logger
}

// NewClient initializes the generative AI wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.AIConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 3
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	c := &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         apiKey,
		model:          cfg.Model,
		retryAttempts:  attempts,
		retryBaseDelay: baseDelay,
		logger:         logg,
	}

	logg.Info(ctx, "gemini client initialized")
	return c, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

var personalInfoSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"fullName": {Type: "string"},
		"cpf":      {Type: "string"},
		"rg":       {Type: "string"},
		"cnh":      {Type: "string"},
		"address":  {Type: "string"},
	},
}

var ticketSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"violationType":         {Type: "string"},
		"article":               {Type: "string"},
		"location":              {Type: "string"},
		"date":                  {Type: "string"},
		"vehiclePlate":          {Type: "string"},
		"authority":             {Type: "string"},
		"extractedPersonalInfo": personalInfoSchema,
		"strategies": {
			Type: "array",
			Items: &schema{
				Type: "object",
				Properties: map[string]*schema{
					"id":          {Type: "string"},
					"title":       {Type: "string"},
					"description": {Type: "string"},
				},
				Required: []string{"id", "title", "description"},
			},
		},
	},
	Required: []string{"violationType", "article", "location", "date", "vehiclePlate", "authority", "strategies"},
}

const ticketPrompt = `Você é um especialista em legislação de trânsito brasileira (CTB).
Analise a imagem desta notificação de autuação de trânsito e extraia os dados estruturados.

Regras de extração:
- Se um campo não estiver legível na imagem, retorne string vazia "".
- NUNCA retorne textos como "Não visível", "Não informado" ou "N/A".
- Extraia também, quando visíveis, os dados pessoais do proprietário (nome, CPF, RG, CNH, endereço) em extractedPersonalInfo.

Em seguida, proponha exatamente 3 estratégias de defesa administrativa fundamentadas no CTB e em resoluções do CONTRAN, cada uma com id curto, título e descrição objetiva.`

const licensePrompt = `Você é um especialista em documentos brasileiros.
Analise a imagem desta CNH (Carteira Nacional de Habilitação) e extraia: nome completo, CPF, RG, número de registro da CNH e endereço.
Se um campo não estiver legível, retorne string vazia "". NUNCA retorne "Não visível" ou "N/A".`

// AnalyzeTicket extracts structured ticket data and defense strategies from a
// notification photo.
func (c *Client) AnalyzeTicket(ctx context.Context, imageBase64, mimeType string) (*TicketAnalysis, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: normalizeMime(mimeType), Data: imageBase64}},
			{Text: ticketPrompt},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ticketSchema,
		},
	}

	raw, err := c.generate(ctx, "analyze_ticket", req)
	if err != nil {
		return nil, err
	}

	var ticket TicketAnalysis
	if err := json.Unmarshal([]byte(raw), &ticket); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding ticket analysis")
	}
	return &ticket, nil
}

// AnalyzeLicense extracts the holder data from a CNH photo.
func (c *Client) AnalyzeLicense(ctx context.Context, imageBase64, mimeType string) (*PersonalInfo, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: normalizeMime(mimeType), Data: imageBase64}},
			{Text: licensePrompt},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   personalInfoSchema,
		},
	}

	raw, err := c.generate(ctx, "analyze_license", req)
	if err != nil {
		return nil, err
	}

	var info PersonalInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding license analysis")
	}
	return &info, nil
}

// GenerateAppeal composes the final administrative appeal in Markdown.
func (c *Client) GenerateAppeal(ctx context.Context, params AppealParams) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildAppealPrompt(params)}}}},
	}

	document, err := c.generate(ctx, "generate_appeal", req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(document) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "model returned an empty document")
	}
	return document, nil
}

func buildAppealPrompt(p AppealParams) string {
	var b strings.Builder
	b.WriteString("Você é um advogado renomado, especialista em direito de trânsito brasileiro, com vasta experiência em recursos administrativos junto à JARI.\n\n")
	b.WriteString("Redija um RECURSO ADMINISTRATIVO completo, formal e tecnicamente fundamentado, endereçado à JARI, em formato Markdown.\n\n")

	b.WriteString("DADOS DA AUTUAÇÃO:\n")
	fmt.Fprintf(&b, "- Enquadramento: %s\n", p.Ticket.ViolationType)
	fmt.Fprintf(&b, "- Artigo: %s\n", p.Ticket.Article)
	fmt.Fprintf(&b, "- Local: %s\n", p.Ticket.Location)
	fmt.Fprintf(&b, "- Data: %s\n", p.Ticket.Date)
	fmt.Fprintf(&b, "- Placa: %s\n", p.Ticket.VehiclePlate)
	fmt.Fprintf(&b, "- Órgão autuador: %s\n\n", p.Ticket.Authority)

	b.WriteString("DADOS DO REQUERENTE:\n")
	fmt.Fprintf(&b, "- Nome: %s\n", p.Personal.FullName)
	fmt.Fprintf(&b, "- CPF: %s\n", p.Personal.CPF)
	fmt.Fprintf(&b, "- RG: %s\n", p.Personal.RG)
	fmt.Fprintf(&b, "- CNH: %s\n", p.Personal.CNH)
	fmt.Fprintf(&b, "- Endereço: %s\n", p.Personal.Address)
	if p.Personal.Profession != "" {
		fmt.Fprintf(&b, "- Profissão: %s\n", p.Personal.Profession)
	}
	if p.Personal.CivilStatus != "" {
		fmt.Fprintf(&b, "- Estado civil: %s\n", p.Personal.CivilStatus)
	}
	if p.Personal.IsDifferentDriver {
		b.WriteString("\nCONDUTOR NO MOMENTO DA INFRAÇÃO (diferente do proprietário):\n")
		fmt.Fprintf(&b, "- Nome: %s\n", p.Personal.DriverFullName)
		fmt.Fprintf(&b, "- CPF: %s\n", p.Personal.DriverCPF)
		fmt.Fprintf(&b, "- RG: %s\n", p.Personal.DriverRG)
		fmt.Fprintf(&b, "- CNH: %s\n", p.Personal.DriverCNH)
	}

	b.WriteString("\nESTRATÉGIA DE DEFESA ESCOLHIDA:\n")
	fmt.Fprintf(&b, "- %s: %s\n", p.Strategy.Title, p.Strategy.Description)
	if strings.TrimSpace(p.UserReason) != "" {
		fmt.Fprintf(&b, "\nRELATO DO REQUERENTE:\n%s\n", p.UserReason)
	}

	fmt.Fprintf(&b, "\nCidade para o fecho: %s. Data por extenso: %s.\n\n", p.City, p.DateLine)

	b.WriteString(`ESTRUTURA OBRIGATÓRIA:
1. Cabeçalho em CAIXA ALTA endereçado à autoridade (ILUSTRÍSSIMO SENHOR PRESIDENTE DA JARI...).
2. Qualificação completa do requerente.
3. Seções numeradas em algarismos romanos (I - DOS FATOS, II - DO DIREITO, III - DOS PEDIDOS).
4. Citações de artigos do CTB e resoluções do CONTRAN em blockquote.
5. Fecho com local, data por extenso e espaço para assinatura.
Responda SOMENTE com o documento em Markdown, sem comentários adicionais.`)

	return b.String()
}

func (c *Client) generate(ctx context.Context, op string, req generateRequest) (string, error) {
	c.log(ctx, "request", op, map[string]any{"model": c.model})

	backoff := retry.WithMaxRetries(uint64(c.retryAttempts-1), retry.NewExponential(c.retryBaseDelay))

	var text string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, callErr := c.call(ctx, req)
		if callErr != nil {
			if isRateLimited(callErr) {
				c.log(ctx, "retry", op, map[string]any{"error": callErr.Error()})
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		text = result
		return nil
	})
	if err != nil {
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return "", err
	}

	c.log(ctx, "response", op, map[string]any{"model": c.model})
	return text, nil
}

func (c *Client) call(ctx context.Context, req generateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding generate request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building generate request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling gemini")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading gemini response")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", pkgerrors.New(pkgerrors.CodeRateLimit, fmt.Sprintf("gemini rate limited: %s", strings.TrimSpace(string(raw))))
	}
	if resp.StatusCode >= 400 {
		code := pkgerrors.CodeDependency
		if strings.Contains(string(raw), "RESOURCE_EXHAUSTED") {
			code = pkgerrors.CodeRateLimit
		}
		return "", pkgerrors.New(code, fmt.Sprintf("gemini returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding gemini response")
	}
	if decoded.Error != nil {
		code := pkgerrors.CodeDependency
		if decoded.Error.Code == http.StatusTooManyRequests || decoded.Error.Status == "RESOURCE_EXHAUSTED" {
			code = pkgerrors.CodeRateLimit
		}
		return "", pkgerrors.New(code, fmt.Sprintf("gemini error: %s", decoded.Error.Message))
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "gemini returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func isRateLimited(err error) bool {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code() == pkgerrors.CodeRateLimit
	}
	return false
}

func normalizeMime(mimeType string) string {
	if strings.TrimSpace(mimeType) == "" {
		return "image/jpeg"
	}
	return mimeType
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
		c.logger.Error(ctx, fmt.Sprintf("gemini %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("gemini %s", phase))
	}
}
