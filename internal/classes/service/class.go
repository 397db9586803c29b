package service

import (
	"context"
	"errors"
	"sync"

	classeserrors "theworks/internal/classes/errors"
	"theworks/internal/classes/repository"
	trainerserrors "theworks/internal/trainers/errors"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/model"
	"theworks/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// TrainerFinder is the read path into the trainer store used to check that
// a class references a real trainer. Implemented by the trainers repository.
type TrainerFinder interface {
	FindByID(ctx context.Context, id string) (*model.Trainer, error)
}

type ClassService interface {
	Create(ctx context.Context, input *model.ClassCreate) (*model.Class, error)
	GetByID(ctx context.Context, id string, includeInactive bool) (*model.Class, error)
	GetAll(ctx context.Context, includeInactive bool, limit int, offset int64) ([]*model.Class, int64, error)
	Update(ctx context.Context, id string, input *model.ClassUpdate) (*model.Class, error)
	Delete(ctx context.Context, id string) error
}

type classService struct {
	repo     repository.ClassRepository
	trainers TrainerFinder
	validate *validator.Validate
	cfg      *config.Config
}

func NewClassService(repo repository.ClassRepository, trainers TrainerFinder, cfg *config.Config) ClassService {
	return &classService{
		repo:     repo,
		trainers: trainers,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}
}

func (s *classService) Create(ctx context.Context, input *model.ClassCreate) (*model.Class, error) {
	input.Title = sanitizer.SanitizeName(input.Title)
	input.Description = sanitizer.SanitizeMessage(input.Description)

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Class create validation failed", "error", err)
		return nil, apperrors.Validation("Invalid class input", map[string]any{"error": err.Error()})
	}

	if err := s.checkTrainer(ctx, input.TrainerID); err != nil {
		return nil, err
	}

	class := &model.Class{
		Title:       input.Title,
		Description: input.Description,
		TrainerID:   input.TrainerID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
		Active:      true,
	}

	if err := s.repo.Create(ctx, class); err != nil {
		s.cfg.Log.Error("Failed to create class", "error", err)
		return nil, apperrors.Internal("Failed to create class", err)
	}

	s.cfg.Log.Info("Class created successfully", "id", class.ID, "title", class.Title)
	return class, nil
}

// GetByID hides inactive classes from non-admin callers behind the same
// NotFound as a class that never existed.
func (s *classService) GetByID(ctx context.Context, id string, includeInactive bool) (*model.Class, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Class ID cannot be empty")
	}

	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve class")
	}
	if !class.Active && !includeInactive {
		return nil, apperrors.NotFoundWithID("Class", id)
	}

	return class, nil
}

func (s *classService) GetAll(ctx context.Context, includeInactive bool, limit int, offset int64) ([]*model.Class, int64, error) {
	var count int64
	var classes []*model.Class
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
			s.cfg.Log.Error("Failed to count classes", "error", errCount)
			errCount = apperrors.Internal("Failed to count classes", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		if includeInactive {
			classes, errFind = s.repo.FindAll(ctx, limit, offset)
		} else {
			classes, errFind = s.repo.FindActive(ctx, limit, offset)
		}
		if errFind != nil {
			s.cfg.Log.Error("Failed to list classes", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve classes", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return classes, count, nil
}

func (s *classService) Update(ctx context.Context, id string, input *model.ClassUpdate) (*model.Class, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Class ID cannot be empty")
	}

	input.Title = sanitizer.SanitizeName(input.Title)
	if input.Description != nil {
		clean := sanitizer.SanitizeMessage(*input.Description)
		input.Description = &clean
	}

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Class update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid class input", map[string]any{"error": err.Error()})
	}

	if input.TrainerID != "" {
		if err := s.checkTrainer(ctx, input.TrainerID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		return nil, s.mapError(err, id, "Failed to update class")
	}

	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve class")
	}

	s.cfg.Log.Info("Class updated successfully", "id", id)
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Class ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "Failed to delete class")
	}

	s.cfg.Log.Info("Class deleted successfully", "id", id)
	return nil
}

func (s *classService) checkTrainer(ctx context.Context, trainerID string) error {
	_, err := s.trainers.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, trainerserrors.ErrNotFound) || errors.Is(err, trainerserrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Trainer", trainerID)
		}
		return apperrors.Internal("Failed to look up trainer", err)
	}
	return nil
}

func (s *classService) mapError(err error, id, message string) error {
	if errors.Is(err, classeserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Class", id)
	}
	if errors.Is(err, classeserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid class ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
