package service

import (
	"context"
	"errors"
	"sync"

	trainerserrors "theworks/internal/trainers/errors"
	"theworks/internal/trainers/repository"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/model"
	"theworks/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type TrainerService interface {
	Create(ctx context.Context, input *model.TrainerCreate) (*model.Trainer, error)
	GetByID(ctx context.Context, id string) (*model.Trainer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Trainer, int64, error)
	Update(ctx context.Context, id string, input *model.TrainerUpdate) (*model.Trainer, error)
	Delete(ctx context.Context, id string) error
}

type trainerService struct {
	repo     repository.TrainerRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewTrainerService(repo repository.TrainerRepository, cfg *config.Config) TrainerService {
	return &trainerService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}
}

func (s *trainerService) Create(ctx context.Context, input *model.TrainerCreate) (*model.Trainer, error) {
	input.Name = sanitizer.SanitizeName(input.Name)
	input.Bio = sanitizer.SanitizeMessage(input.Bio)
	input.Email = sanitizer.SanitizeEmail(input.Email)
	input.Phone = sanitizer.SanitizePhone(input.Phone)
	input.Specialties = sanitizer.SanitizeSlice(input.Specialties, sanitizer.SanitizeName)

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Trainer create validation failed", "error", err)
		return nil, apperrors.Validation("Invalid trainer input", map[string]any{"error": err.Error()})
	}

	trainer := &model.Trainer{
		Name:        input.Name,
		Bio:         input.Bio,
		Specialties: input.Specialties,
		Phone:       input.Phone,
		Email:       input.Email,
		Active:      true,
	}

	if err := s.repo.Create(ctx, trainer); err != nil {
		s.cfg.Log.Error("Failed to create trainer", "error", err)
		return nil, apperrors.Internal("Failed to create trainer", err)
	}

	s.cfg.Log.Info("Trainer created successfully", "id", trainer.ID, "name", trainer.Name)
	return trainer, nil
}

func (s *trainerService) GetByID(ctx context.Context, id string) (*model.Trainer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Trainer ID cannot be empty")
	}

	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve trainer")
	}

	return trainer, nil
}

func (s *trainerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Trainer, int64, error) {
	var count int64
	var trainers []*model.Trainer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count trainers", "error", errCount)
			errCount = apperrors.Internal("Failed to count trainers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		trainers, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list trainers", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve trainers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return trainers, count, nil
}

func (s *trainerService) Update(ctx context.Context, id string, input *model.TrainerUpdate) (*model.Trainer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Trainer ID cannot be empty")
	}

	input.Name = sanitizer.SanitizeName(input.Name)
	if input.Bio != nil {
		clean := sanitizer.SanitizeMessage(*input.Bio)
		input.Bio = &clean
	}
	if input.Email != nil {
		clean := sanitizer.SanitizeEmail(*input.Email)
		input.Email = &clean
	}
	if input.Phone != nil {
		clean := sanitizer.SanitizePhone(*input.Phone)
		input.Phone = &clean
	}
	if input.Specialties != nil {
		clean := sanitizer.SanitizeSlice(*input.Specialties, sanitizer.SanitizeName)
		input.Specialties = &clean
	}

	if err := s.validate.Struct(input); err != nil {
		s.cfg.Log.Warn("Trainer update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid trainer input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		return nil, s.mapError(err, id, "Failed to update trainer")
	}

	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve trainer")
	}

	s.cfg.Log.Info("Trainer updated successfully", "id", id)
	return trainer, nil
}

func (s *trainerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Trainer ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "Failed to delete trainer")
	}

	s.cfg.Log.Info("Trainer deleted successfully", "id", id)
	return nil
}

func (s *trainerService) mapError(err error, id, message string) error {
	if errors.Is(err, trainerserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Trainer", id)
	}
	if errors.Is(err, trainerserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid trainer ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
