package service

import (
	"context"
	"errors"
	"sync"

	enquirieserrors "theworks/internal/enquiries/errors"
	"theworks/internal/enquiries/repository"
	"theworks/internal/enquiries/validator"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/model"
	"theworks/pkg/sanitizer"
)

type EnquiryService interface {
	Create(ctx context.Context, input *model.EnquiryCreate) (*model.Enquiry, error)
	GetByID(ctx context.Context, id string) (*model.Enquiry, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, int64, error)
	Delete(ctx context.Context, id string) error
}

type enquiryService struct {
	repo      repository.EnquiryRepository
	validator *validator.EnquiryValidator
	cfg       *config.Config
}

func NewEnquiryService(repo repository.EnquiryRepository, enquiryValidator *validator.EnquiryValidator, cfg *config.Config) EnquiryService {
	return &enquiryService{
		repo:      repo,
		validator: enquiryValidator,
		cfg:       cfg,
	}
}

// Create sanitizes before validating: an enquiry arrives from an anonymous
// form, so nothing in it is trusted.
func (s *enquiryService) Create(ctx context.Context, input *model.EnquiryCreate) (*model.Enquiry, error) {
	input.Name = sanitizer.SanitizeName(input.Name)
	input.Email = sanitizer.SanitizeEmail(input.Email)
	input.Phone = sanitizer.SanitizePhone(input.Phone)
	input.Message = sanitizer.SanitizeMessage(input.Message)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Enquiry validation failed", "error", err)
		return nil, apperrors.Validation("Invalid enquiry input", map[string]any{"error": err.Error()})
	}

	enquiry := &model.Enquiry{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	}

	if err := s.repo.Create(ctx, enquiry); err != nil {
		s.cfg.Log.Error("Failed to create enquiry", "error", err)
		return nil, apperrors.Internal("Failed to create enquiry", err)
	}

	s.cfg.Log.Info("Enquiry created successfully", "id", enquiry.ID)
	return enquiry, nil
}

func (s *enquiryService) GetByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve enquiry")
	}

	return enquiry, nil
}

func (s *enquiryService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, int64, error) {
	var count int64
	var enquiries []*model.Enquiry
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count enquiries", "error", errCount)
			errCount = apperrors.Internal("Failed to count enquiries", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		enquiries, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list enquiries", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve enquiries", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return enquiries, count, nil
}

func (s *enquiryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "Failed to delete enquiry")
	}

	s.cfg.Log.Info("Enquiry deleted successfully", "id", id)
	return nil
}

func (s *enquiryService) mapError(err error, id, message string) error {
	if errors.Is(err, enquirieserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Enquiry", id)
	}
	if errors.Is(err, enquirieserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid enquiry ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}
