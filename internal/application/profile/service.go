// Package profile manages the user health profile use cases.
package profile

import (
	"context"

	"github.com/fridgelens/v1/internal/domain/profile"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service implements inbound.ProfileService.
type Service struct {
	store    outbound.ProfileStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a profile service.
func NewService(store outbound.ProfileStore, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		logger:   logger.Named("profile"),
	}
}

// Get returns the stored profile, or the defaults before first save.
func (s *Service) Get(ctx context.Context) (profile.UserHealthProfile, error) {
	return s.store.Load(ctx)
}

// Save validates and replaces the profile wholesale.
func (s *Service) Save(ctx context.Context, p profile.UserHealthProfile) error {
	if err := s.validate.Struct(p); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.store.Save(ctx, p); err != nil {
		return apperrors.Wrap(err, "failed to persist profile")
	}

	s.logger.Info("profile saved",
		zap.Float64("bmi", p.BMI()),
		zap.String("bmi_category", p.BMICategory()))

	return nil
}
