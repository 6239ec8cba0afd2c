package settings

import (
	"context"

	"github.com/autorecurso/autorecurso-backend/pkg/db/models"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
)

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo *Repository
}

// UpdateParams carries a partial settings edit; nil fields are left untouched.
type UpdateParams struct {
	IsFreeGenerationEnabled *bool `json:"isFreeGenerationEnabled"`
	FreeGenerationLimit     *int  `json:"freeGenerationLimit"`
	FreeGenerationsUsed     *int  `json:"freeGenerationsUsed"`
}

// Service exposes the admin settings singleton.
type Service interface {
	Get(ctx context.Context) (models.AdminSettings, error)
	Update(ctx context.Context, params UpdateParams) (models.AdminSettings, error)
	IncrementFreeUsage(ctx context.Context) (models.AdminSettings, error)
}

type service struct {
	repo *Repository
}

// NewService builds a settings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Get(ctx context.Context) (models.AdminSettings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		return models.AdminSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, params UpdateParams) (models.AdminSettings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		return models.AdminSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	if params.IsFreeGenerationEnabled != nil {
		row.IsFreeGenerationEnabled = *params.IsFreeGenerationEnabled
	}
	if params.FreeGenerationLimit != nil {
		if *params.FreeGenerationLimit < 0 {
			return models.AdminSettings{}, pkgerrors.New(pkgerrors.CodeValidation, "free generation limit must not be negative")
		}
		row.FreeGenerationLimit = *params.FreeGenerationLimit
	}
	if params.FreeGenerationsUsed != nil {
		if *params.FreeGenerationsUsed < 0 {
			return models.AdminSettings{}, pkgerrors.New(pkgerrors.CodeValidation, "free generations used must not be negative")
		}
		row.FreeGenerationsUsed = *params.FreeGenerationsUsed
	}

	saved, err := s.repo.Save(ctx, row)
	if err != nil {
		return models.AdminSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	return saved, nil
}

func (s *service) IncrementFreeUsage(ctx context.Context) (models.AdminSettings, error) {
	row, err := s.repo.IncrementFreeUsage(ctx)
	if err != nil {
		return models.AdminSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment free usage")
	}
	return row, nil
}
