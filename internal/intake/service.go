package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autorecurso/autorecurso-backend/internal/analytics"
	"github.com/autorecurso/autorecurso-backend/internal/mailer"
	"github.com/autorecurso/autorecurso-backend/internal/resources"
	"github.com/autorecurso/autorecurso-backend/internal/settings"
	"github.com/autorecurso/autorecurso-backend/pkg/abacatepay"
	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	"github.com/autorecurso/autorecurso-backend/pkg/enums"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/genai"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AIClient is the vision/LLM surface the intake flow needs.
type AIClient interface {
	AnalyzeTicket(ctx context.Context, imageBase64, mimeType string) (*genai.TicketAnalysis, error)
	AnalyzeLicense(ctx context.Context, imageBase64, mimeType string) (*genai.PersonalInfo, error)
	GenerateAppeal(ctx context.Context, params genai.AppealParams) (string, error)
}

// BillingClient is the PIX checkout surface the intake flow needs.
type BillingClient interface {
	CreateBilling(ctx context.Context, customer abacatepay.CustomerParams) (*abacatepay.Billing, error)
	CheckBillingStatus(ctx context.Context, billingID string) (enums.BillingStatus, error)
}

// ServiceParams groups dependencies for the intake service.
type ServiceParams struct {
	SessionRepo *Repository
	Analytics   analytics.Service
	Resources   resources.Service
	Mailer      mailer.Service
	Settings    settings.Service
	AI          AIClient
	Billing     BillingClient
	Logger      *logger.Logger
	PriceCents  int
}

// Service drives the appeal flow end to end.
type Service interface {
	CreateSession(ctx context.Context) (SessionState, error)
	GetSession(ctx context.Context, sessionID string) (SessionState, error)
	UploadTicket(ctx context.Context, sessionID, imageBase64, mimeType string) (SessionState, error)
	UploadLicense(ctx context.Context, sessionID, imageBase64, mimeType string) (SessionState, error)
	SelectStrategy(ctx context.Context, sessionID, strategyID string) (SessionState, error)
	SetReason(ctx context.Context, sessionID, reason string) (SessionState, error)
	UpdatePersonalInfo(ctx context.Context, sessionID string, patch PersonalInfoPatch) (SessionState, error)
	StartCheckout(ctx context.Context, sessionID string) (CheckoutResult, error)
	ConfirmPayment(ctx context.Context, sessionID string) (SessionState, error)
	Generate(ctx context.Context, sessionID string) (SessionState, error)
}

type service struct {
	sessionRepo *Repository
	analytics   analytics.Service
	resources   resources.Service
	mailer      mailer.Service
	settings    settings.Service
	ai          AIClient
	billing     BillingClient
	logger      *logger.Logger
	price       decimal.Decimal
}

// NewService builds an intake service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session repo is required")
	}
	if params.Analytics == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics service is required")
	}
	if params.Resources == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resource service is required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mailer service is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings service is required")
	}
	if params.AI == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ai client is required")
	}
	if params.Billing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "billing client is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.PriceCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return &service{
		sessionRepo: params.SessionRepo,
		analytics:   params.Analytics,
		resources:   params.Resources,
		mailer:      params.Mailer,
		settings:    params.Settings,
		ai:          params.AI,
		billing:     params.Billing,
		logger:      params.Logger,
		price:       decimal.NewFromInt(int64(params.PriceCents)).Div(decimal.NewFromInt(100)),
	}, nil
}

func (s *service) CreateSession(ctx context.Context) (SessionState, error) {
	row := models.IntakeSession{
		ID:   uuid.NewString(),
		Step: enums.AppStepStart,
	}
	if err := s.sessionRepo.Create(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return stateFromModel(row), nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}
	return stateFromModel(row), nil
}

// UploadTicket runs the vision extraction. The session sits at ANALYZING
// while the model works; a failed analysis sends the flow back to START.
func (s *service) UploadTicket(ctx context.Context, sessionID, imageBase64, mimeType string) (SessionState, error) {
	if imageBase64 == "" {
		return SessionState{}, pkgerrors.New(pkgerrors.CodeValidation, "ticket image is required")
	}

	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	row.Step = enums.AppStepAnalyzing
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	ctx = s.logger.WithSessionID(ctx, row.ID)
	ticket, err := s.ai.AnalyzeTicket(ctx, imageBase64, mimeType)
	if err != nil {
		s.logger.Error(ctx, "ticket analysis failed", err)
		row.Step = enums.AppStepStart
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "analyze ticket")
	}

	state := stateFromModel(row)
	state.PersonalInfo = MergeExtracted(state.PersonalInfo, ticket.ExtractedPersonalInfo)

	ticketJSON, err := json.Marshal(ticket)
	if err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding ticket info")
	}
	personalJSON, err := json.Marshal(state.PersonalInfo)
	if err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding personal info")
	}

	row.TicketInfo = ticketJSON
	row.PersonalInfo = personalJSON
	row.Step = enums.AppStepStrategySelection
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	s.logger.Info(ctx, "ticket analyzed")
	return stateFromModel(row), nil
}

// UploadLicense fills empty personal fields from a CNH photo. The step is
// left wherever the flow currently is.
func (s *service) UploadLicense(ctx context.Context, sessionID, imageBase64, mimeType string) (SessionState, error) {
	if imageBase64 == "" {
		return SessionState{}, pkgerrors.New(pkgerrors.CodeValidation, "license image is required")
	}

	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	ctx = s.logger.WithSessionID(ctx, row.ID)
	extracted, err := s.ai.AnalyzeLicense(ctx, imageBase64, mimeType)
	if err != nil {
		s.logger.Error(ctx, "license analysis failed", err)
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "analyze license")
	}

	state := stateFromModel(row)
	state.PersonalInfo = MergeExtracted(state.PersonalInfo, extracted)

	personalJSON, err := json.Marshal(state.PersonalInfo)
	if err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding personal info")
	}
	row.PersonalInfo = personalJSON
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	return stateFromModel(row), nil
}

func (s *service) SelectStrategy(ctx context.Context, sessionID, strategyID string) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	state := stateFromModel(row)
	if state.Ticket == nil {
		return SessionState{}, pkgerrors.New(pkgerrors.CodeStateConflict, "ticket has not been analyzed yet")
	}

	found := false
	for _, strategy := range state.Ticket.Strategies {
		if strategy.ID == strategyID {
			found = true
			break
		}
	}
	if !found {
		return SessionState{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown strategy id")
	}

	row.SelectedStrategyID = strategyID
	row.Step = enums.AppStepUserInput
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return stateFromModel(row), nil
}

func (s *service) SetReason(ctx context.Context, sessionID, reason string) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	row.UserReason = reason
	row.Step = enums.AppStepUserData
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return stateFromModel(row), nil
}

func (s *service) UpdatePersonalInfo(ctx context.Context, sessionID string, patch PersonalInfoPatch) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	state := stateFromModel(row)
	info := applyPatch(state.PersonalInfo, patch)

	personalJSON, err := json.Marshal(info)
	if err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding personal info")
	}
	row.PersonalInfo = personalJSON
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return stateFromModel(row), nil
}

// StartCheckout validates the full form and either runs a free generation or
// opens a hosted PIX checkout. The free branch is taken only while the
// configured quota holds; past the limit the paid flow runs as usual.
func (s *service) StartCheckout(ctx context.Context, sessionID string) (CheckoutResult, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return CheckoutResult{}, err
	}

	state := stateFromModel(row)
	if state.Ticket == nil || state.SelectedStrategyID == "" {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "ticket analysis and strategy are required before checkout")
	}
	if problems := validateForm(state.PersonalInfo); len(problems) > 0 {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeValidation, "form is incomplete").WithDetails(problems)
	}

	ctx = s.logger.WithSessionID(ctx, row.ID)
	ctx = s.logger.WithCustomerEmail(ctx, state.PersonalInfo.Email)

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}
	if cfg.IsFreeGenerationEnabled && cfg.FreeGenerationsUsed < cfg.FreeGenerationLimit {
		return s.startFreeGeneration(ctx, row, state)
	}

	row.Step = enums.AppStepPayment
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return CheckoutResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	amount := s.price.InexactFloat64()
	s.logEvent(ctx, enums.AnalyticsEventPaymentStarted, s.eventData(state, analytics.EventData{Amount: &amount}))

	billing, err := s.billing.CreateBilling(ctx, abacatepay.CustomerParams{
		Name:  state.PersonalInfo.FullName,
		Email: state.PersonalInfo.Email,
		CPF:   state.PersonalInfo.CPF,
		Phone: state.PersonalInfo.Phone,
	})
	if err != nil {
		s.logEvent(ctx, enums.AnalyticsEventPaymentFailed, s.eventData(state, analytics.EventData{ErrorMessage: err.Error()}))
		row.Step = enums.AppStepUserData
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return CheckoutResult{}, err
	}

	row.BillingID = billing.ID
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return CheckoutResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	s.logger.Info(s.logger.WithBillingID(ctx, billing.ID), "checkout opened")
	return CheckoutResult{CheckoutURL: billing.URL, Session: stateFromModel(row)}, nil
}

func (s *service) startFreeGeneration(ctx context.Context, row models.IntakeSession, state SessionState) (CheckoutResult, error) {
	zero := 0.0
	s.logEvent(ctx, enums.AnalyticsEventPaymentCompleted, s.eventData(state, analytics.EventData{
		Amount: &zero,
		IsFree: true,
	}))

	if _, err := s.settings.IncrementFreeUsage(ctx); err != nil {
		s.logger.Error(ctx, "increment free usage", err)
	}

	generated, err := s.generate(ctx, row, decimal.Zero)
	if err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{Free: true, Session: generated}, nil
}

// ConfirmPayment handles the redirect back from the hosted checkout. The
// session must be parked at PAYMENT with a billing id; anything but a settled
// status reverts the flow to the data form.
func (s *service) ConfirmPayment(ctx context.Context, sessionID string) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}

	if row.Step != enums.AppStepPayment || row.BillingID == "" {
		return SessionState{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no payment in progress for this session")
	}

	state := stateFromModel(row)
	ctx = s.logger.WithSessionID(ctx, row.ID)
	ctx = s.logger.WithBillingID(ctx, row.BillingID)

	status, err := s.billing.CheckBillingStatus(ctx, row.BillingID)
	if err != nil {
		s.logger.Error(ctx, "billing status check failed", err)
		s.logEvent(ctx, enums.AnalyticsEventPaymentFailed, s.eventData(state, analytics.EventData{
			BillingID:    row.BillingID,
			ErrorMessage: "Não foi possível verificar o status do pagamento. Tente novamente.",
		}))
		row.Step = enums.AppStepUserData
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check billing status")
	}

	if !status.IsSettled() {
		message := fmt.Sprintf("O pagamento ainda não foi confirmado (Status: %s).", status)
		s.logEvent(ctx, enums.AnalyticsEventPaymentFailed, s.eventData(state, analytics.EventData{
			BillingID:    row.BillingID,
			ErrorMessage: message,
		}))
		row.Step = enums.AppStepUserData
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.New(pkgerrors.CodeStateConflict, message)
	}

	amount := s.price.InexactFloat64()
	s.logEvent(ctx, enums.AnalyticsEventPaymentCompleted, s.eventData(state, analytics.EventData{
		BillingID: row.BillingID,
		Amount:    &amount,
	}))

	return s.generate(ctx, row, s.price)
}

// Generate produces the appeal document for an already settled session. It is
// also the retry entry point after a generation error.
func (s *service) Generate(ctx context.Context, sessionID string) (SessionState, error) {
	row, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return SessionState{}, err
	}
	return s.generate(s.logger.WithSessionID(ctx, row.ID), row, decimal.Zero)
}

func (s *service) generate(ctx context.Context, row models.IntakeSession, amountPaid decimal.Decimal) (SessionState, error) {
	// Re-read so the generation always works off the stored state.
	row, err := s.loadSession(ctx, row.ID)
	if err != nil {
		return SessionState{}, err
	}
	state := stateFromModel(row)

	if state.Ticket == nil || state.SelectedStrategyID == "" {
		row.Step = enums.AppStepStart
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.New(pkgerrors.CodeStateConflict, "Seus dados não foram encontrados. Por favor, comece novamente.")
	}

	var strategy *genai.DefenseStrategy
	for i := range state.Ticket.Strategies {
		if state.Ticket.Strategies[i].ID == state.SelectedStrategyID {
			strategy = &state.Ticket.Strategies[i]
			break
		}
	}
	if strategy == nil {
		row.Step = enums.AppStepStart
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.New(pkgerrors.CodeStateConflict, "Seus dados não foram encontrados. Por favor, comece novamente.")
	}

	if problems := requiredForGeneration(state.PersonalInfo); len(problems) > 0 {
		row.Step = enums.AppStepUserData
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.New(pkgerrors.CodeValidation, "personal data is incomplete").WithDetails(problems)
	}

	row.Step = enums.AppStepGenerating
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	now := time.Now()
	document, err := s.ai.GenerateAppeal(ctx, genai.AppealParams{
		Ticket:     *state.Ticket,
		Strategy:   *strategy,
		UserReason: state.UserReason,
		Personal: genai.AppealPersonal{
			FullName:          state.PersonalInfo.FullName,
			CPF:               state.PersonalInfo.CPF,
			RG:                state.PersonalInfo.RG,
			CNH:               state.PersonalInfo.CNH,
			Address:           state.PersonalInfo.Address,
			IsDifferentDriver: state.PersonalInfo.IsDifferentDriver,
			DriverFullName:    state.PersonalInfo.DriverFullName,
			DriverCPF:         state.PersonalInfo.DriverCPF,
			DriverRG:          state.PersonalInfo.DriverRG,
			DriverCNH:         state.PersonalInfo.DriverCNH,
			Profession:        state.PersonalInfo.Profession,
			CivilStatus:       state.PersonalInfo.CivilStatus,
		},
		City:     cityFromAddress(state.PersonalInfo.Address),
		DateLine: portugueseDate(now),
	})
	if err != nil {
		s.logger.Error(ctx, "appeal generation failed", err)
		s.logEvent(ctx, enums.AnalyticsEventGenerationError, s.eventData(state, analytics.EventData{ErrorMessage: err.Error()}))
		row.Step = enums.AppStepUserData
		if saveErr := s.sessionRepo.Save(ctx, &row); saveErr != nil {
			s.logger.Error(ctx, "revert session step", saveErr)
		}
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate appeal")
	}

	s.logEvent(ctx, enums.AnalyticsEventResourceGenerated, s.eventData(state, analytics.EventData{}))

	if _, err := s.resources.Register(ctx, resources.RegisterParams{
		CustomerName:  state.PersonalInfo.FullName,
		CustomerEmail: state.PersonalInfo.Email,
		CustomerCPF:   state.PersonalInfo.CPF,
		CustomerPhone: state.PersonalInfo.Phone,
		TicketPlate:   state.Ticket.VehiclePlate,
		TicketArticle: state.Ticket.Article,
		ViolationType: state.Ticket.ViolationType,
		StrategyTitle: strategy.Title,
		Document:      document,
		AmountPaid:    amountPaid,
	}); err != nil {
		s.logger.Error(ctx, "register resource", err)
	}

	if state.PersonalInfo.Email != "" {
		if err := s.mailer.SendResourceEmail(ctx, state.PersonalInfo.Email, state.PersonalInfo.FullName, state.Ticket.VehiclePlate, document); err != nil {
			s.logger.Error(ctx, "resource email failed", err)
			s.logEvent(ctx, enums.AnalyticsEventEmailFailed, s.eventData(state, analytics.EventData{ErrorMessage: err.Error()}))
		}
	}

	// Transient fields are cleared once the document exists; only the
	// document itself survives on the session.
	row.FinalDocument = document
	row.Step = enums.AppStepFinalDocument
	row.TicketInfo = nil
	row.SelectedStrategyID = ""
	row.UserReason = ""
	row.PersonalInfo = nil
	row.BillingID = ""
	if err := s.sessionRepo.Save(ctx, &row); err != nil {
		return SessionState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}

	s.logger.Info(ctx, "appeal generated")
	return stateFromModel(row), nil
}

func (s *service) loadSession(ctx context.Context, sessionID string) (models.IntakeSession, error) {
	if sessionID == "" {
		return models.IntakeSession{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	row, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.IntakeSession{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "session not found")
		}
		return models.IntakeSession{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	return row, nil
}

func (s *service) eventData(state SessionState, extra analytics.EventData) analytics.EventData {
	extra.CustomerName = state.PersonalInfo.FullName
	extra.CustomerEmail = state.PersonalInfo.Email
	extra.CustomerCPF = state.PersonalInfo.CPF
	extra.CustomerPhone = state.PersonalInfo.Phone
	if state.Ticket != nil {
		extra.TicketPlate = state.Ticket.VehiclePlate
		extra.TicketArticle = state.Ticket.Article
	}
	return extra
}

func (s *service) logEvent(ctx context.Context, eventType enums.AnalyticsEventType, data analytics.EventData) {
	if err := s.analytics.LogEvent(ctx, eventType, data); err != nil {
		s.logger.Error(ctx, "log analytics event", err)
	}
}

func applyPatch(info PersonalInfo, patch PersonalInfoPatch) PersonalInfo {
	setString := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}

	setString(&info.FullName, patch.FullName)
	setString(&info.CPF, patch.CPF)
	setString(&info.RG, patch.RG)
	setString(&info.CNH, patch.CNH)
	setString(&info.Address, patch.Address)
	setString(&info.Email, patch.Email)
	setString(&info.Phone, patch.Phone)
	setString(&info.Profession, patch.Profession)
	setString(&info.CivilStatus, patch.CivilStatus)
	if patch.IsDifferentDriver != nil {
		info.IsDifferentDriver = *patch.IsDifferentDriver
	}
	setString(&info.DriverFullName, patch.DriverFullName)
	setString(&info.DriverCPF, patch.DriverCPF)
	setString(&info.DriverRG, patch.DriverRG)
	setString(&info.DriverCNH, patch.DriverCNH)

	return info
}

func portugueseDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), portugueseMonths[int(t.Month())-1], t.Year())
}
