package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/autorecurso/autorecurso-backend/internal/customers"
	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the resource registry service.
type ServiceParams struct {
	ResourceRepo *Repository
	CustomerRepo *customers.Repository
}

// RegisterParams carries everything needed to record a generated document.
type RegisterParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerCPF   string
	CustomerPhone string
	TicketPlate   string
	TicketArticle string
	ViolationType string
	StrategyTitle string
	Document      string
	AmountPaid    decimal.Decimal
}

// Service exposes the generated document registry.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (models.Resource, error)
	FindLatestByCustomerEmail(ctx context.Context, email string) (models.Resource, error)
}

type service struct {
	resourceRepo *Repository
	customerRepo *customers.Repository
}

// NewService builds a resource service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ResourceRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resource repo is required")
	}
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	return &service{
		resourceRepo: params.ResourceRepo,
		customerRepo: params.CustomerRepo,
	}, nil
}

// Register finds or creates the customer, appends the document row, and bumps
// the customer's counters.
func (s *service) Register(ctx context.Context, params RegisterParams) (models.Resource, error) {
	if params.CustomerEmail == "" {
		return models.Resource{}, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if params.Document == "" {
		return models.Resource{}, pkgerrors.New(pkgerrors.CodeValidation, "document content is required")
	}

	customer, err := s.customerRepo.Upsert(ctx, customers.UpsertParams{
		Email: params.CustomerEmail,
		Name:  params.CustomerName,
		CPF:   params.CustomerCPF,
		Phone: params.CustomerPhone,
	})
	if err != nil {
		return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register customer")
	}

	row := models.Resource{
		ID:              fmt.Sprintf("res-%s", uuid.NewString()),
		CustomerID:      customer.ID,
		CustomerEmail:   customer.Email,
		CustomerName:    customer.Name,
		TicketPlate:     params.TicketPlate,
		TicketArticle:   params.TicketArticle,
		ViolationType:   params.ViolationType,
		StrategyTitle:   params.StrategyTitle,
		DocumentContent: params.Document,
	}
	if err := s.resourceRepo.Create(ctx, &row); err != nil {
		return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save resource")
	}

	if err := s.customerRepo.UpdateStats(ctx, customer.Email, true, params.AmountPaid); err != nil {
		return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer stats")
	}

	return row, nil
}

func (s *service) List(ctx context.Context) ([]models.Resource, error) {
	rows, err := s.resourceRepo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list resources")
	}
	return rows, nil
}

func (s *service) GetByID(ctx context.Context, id string) (models.Resource, error) {
	row, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "resource not found")
		}
		return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resource")
	}
	return row, nil
}

func (s *service) FindLatestByCustomerEmail(ctx context.Context, email string) (models.Resource, error) {
	row, err := s.resourceRepo.FindLatestByCustomerEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "resource not found")
		}
		return models.Resource{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resource")
	}
	return row, nil
}
