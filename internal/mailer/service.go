package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/autorecurso/autorecurso-backend/pkg/brevo"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
)

// Sender is the transactional email primitive the templates are built on.
type Sender interface {
	Send(ctx context.Context, msg brevo.Message) error
}

// ServiceParams groups dependencies for the mailer service.
type ServiceParams struct {
	Sender Sender
}

// Service renders and delivers the two transactional templates. Delivery has
// no retry; callers record the failure as an event and move on.
type Service interface {
	SendResourceEmail(ctx context.Context, toEmail, customerName, vehiclePlate, document string) error
	SendCartRecoveryEmail(ctx context.Context, toEmail, customerName, vehiclePlate string) error
}

type service struct {
	sender Sender
}

// NewService builds a mailer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email sender is required")
	}
	return &service{sender: params.Sender}, nil
}

// SendResourceEmail delivers the generated appeal. The document is HTML
// escaped and newlines become <br> so the Markdown arrives readable.
func (s *service) SendResourceEmail(ctx context.Context, toEmail, customerName, vehiclePlate, document string) error {
	if toEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">Seu recurso está pronto! 🎉</h2>
  <p>Olá%s,</p>
  <p>O recurso administrativo referente ao veículo <strong>%s</strong> foi gerado com sucesso. O documento completo segue abaixo.</p>
  <h3>Próximos passos:</h3>
  <ol>
    <li>Revise os dados do documento.</li>
    <li>Imprima e assine o recurso.</li>
    <li>Protocole na JARI do órgão autuador dentro do prazo da notificação.</li>
  </ol>
  <div style="background: #f9fafb; border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; margin: 16px 0;">
    %s
  </div>
  <p style="color: #6b7280; font-size: 12px;">AUTO RECURSO - Recursos de multa inteligentes<br>contato@autorecurso.online</p>
</div>`, greetingName(customerName), escapeHTML(vehiclePlate), htmlDocument(document))

	msg := brevo.Message{
		ToEmail:     toEmail,
		Subject:     fmt.Sprintf("✅ Seu Recurso de Multa - Veículo %s", vehiclePlate),
		HTMLContent: html,
		TextContent: document,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send resource email")
	}
	return nil
}

// SendCartRecoveryEmail nudges a visitor who started but did not finish
// checkout.
func (s *service) SendCartRecoveryEmail(ctx context.Context, toEmail, customerName, vehiclePlate string) error {
	if toEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	plate := vehiclePlate
	if plate == "" {
		plate = "seu veículo"
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #ea580c;">Seu recurso ficou pela metade ⏰</h2>
  <p>Olá%s,</p>
  <p>Notamos que você começou a preparar o recurso de multa para <strong>%s</strong> mas não concluiu o pagamento.</p>
  <p>A análise da sua autuação continua salva. Volte e finalize em poucos minutos antes que o prazo da notificação expire.</p>
  <p><a href="https://autorecurso.online" style="background: #2563eb; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Continuar meu recurso</a></p>
  <p style="color: #6b7280; font-size: 12px;">AUTO RECURSO - Recursos de multa inteligentes<br>contato@autorecurso.online</p>
</div>`, greetingName(customerName), escapeHTML(plate))

	msg := brevo.Message{
		ToEmail:     toEmail,
		Subject:     fmt.Sprintf("⏰ Complete seu Recurso de Multa - %s", plate),
		HTMLContent: html,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send cart recovery email")
	}
	return nil
}

func greetingName(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return " " + strings.TrimSpace(name)
}

func escapeHTML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(value)
}

func htmlDocument(document string) string {
	return strings.ReplaceAll(escapeHTML(document), "\n", "<br>")
}
