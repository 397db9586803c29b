package service

import (
	"context"
	"errors"
	"sync"

	addonserrors "theworks/internal/addons/errors"
	"theworks/internal/addons/repository"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/model"
	"theworks/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type AddonService interface {
	Create(ctx context.Context, input *model.AddonCreate) (*model.Addon, error)
	GetByID(ctx context.Context, id string, includeInactive bool) (*model.Addon, error)
	GetAll(ctx context.Context, includeInactive bool, limit int, offset int64) ([]*model.Addon, int64, error)
	Update(ctx context.Context, id string, input *model.AddonUpdate) (*model.Addon, error)
	Delete(ctx context.Context, id string) error
}

type addonService struct {
	repo     repository.AddonRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewAddonService(repo repository.AddonRepository, cfg *config.Config) AddonService {
	return &addonService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}
}

func (s *addonService) Create(ctx context.Context, input *model.AddonCreate) (*model.Addon, error) {
	input.Name = sanitizer.SanitizeName(input.Name)
	input.Description = sanitizer.SanitizeMessage(input.Description)

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Add-on create validation failed", "error", err)
		return nil, apperrors.Validation("Invalid add-on input", map[string]any{"error": err.Error()})
	}

	addon := &model.Addon{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Active:      true,
	}

	if err := s.repo.Create(ctx, addon); err != nil {
		s.cfg.Log.Error("Failed to create add-on", "error", err)
		return nil, apperrors.Internal("Failed to create add-on", err)
	}

	s.cfg.Log.Info("Add-on created successfully", "id", addon.ID, "name", addon.Name)
	return addon, nil
}

// GetByID hides inactive add-ons from non-admin callers.
func (s *addonService) GetByID(ctx context.Context, id string, includeInactive bool) (*model.Addon, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Add-on ID cannot be empty")
	}

	addon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve add-on")
	}
	if !addon.Active && !includeInactive {
		return nil, apperrors.NotFoundWithID("Add-on", id)
	}

	return addon, nil
}

func (s *addonService) GetAll(ctx context.Context, includeInactive bool, limit int, offset int64) ([]*model.Addon, int64, error) {
	var count int64
	var addons []*model.Addon
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if includeInactive {
			count, errCount = s.repo.Count(ctx)
		} else {
			count, errCount = s.repo.CountActive(ctx)
		}
		if errCount != nil {
			s.cfg.Log.Error("Failed to count add-ons", "error", errCount)
			errCount = apperrors.Internal("Failed to count add-ons", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		if includeInactive {
			addons, errFind = s.repo.FindAll(ctx, limit, offset)
		} else {
			addons, errFind = s.repo.FindActive(ctx, limit, offset)
		}
		if errFind != nil {
			s.cfg.Log.Error("Failed to list add-ons", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve add-ons", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return addons, count, nil
}

func (s *addonService) Update(ctx context.Context, id string, input *model.AddonUpdate) (*model.Addon, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Add-on ID cannot be empty")
	}

	input.Name = sanitizer.SanitizeName(input.Name)
	if input.Description != nil {
		clean := sanitizer.SanitizeMessage(*input.Description)
		input.Description = &clean
	}

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Add-on update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid add-on input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		return nil, s.mapError(err, id, "Failed to update add-on")
	}

	addon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve add-on")
	}

	s.cfg.Log.Info("Add-on updated successfully", "id", id)
	return addon, nil
}

func (s *addonService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Add-on ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "Failed to delete add-on")
	}

	s.cfg.Log.Info("Add-on deleted successfully", "id", id)
	return nil
}

func (s *addonService) mapError(err error, id, message string) error {
	if errors.Is(err, addonserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Add-on", id)
	}
	if errors.Is(err, addonserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid add-on ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
