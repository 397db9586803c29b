package service

import (
	"context"
	"testing"

	enquirieserrors "theworks/internal/enquiries/errors"
	"theworks/internal/enquiries/validator"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/logger"
	"theworks/pkg/model"
)

const testEnquiryID = "65a000000000000000000001"

type mockEnquiryRepo struct {
	createFn   func(ctx context.Context, enquiry *model.Enquiry) error
	findByIDFn func(ctx context.Context, id string) (*model.Enquiry, error)
	findAllFn  func(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, error)
	countFn    func(ctx context.Context) (int64, error)
	deleteFn   func(ctx context.Context, id string) error

	createCalls int
}

func (m *mockEnquiryRepo) Create(ctx context.Context, enquiry *model.Enquiry) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, enquiry)
	}
	enquiry.ID = testEnquiryID
	return nil
}

func (m *mockEnquiryRepo) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, enquirieserrors.ErrNotFound
}

func (m *mockEnquiryRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockEnquiryRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockEnquiryRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return enquirieserrors.ErrNotFound
}

func newTestService(repo *mockEnquiryRepo) EnquiryService {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{Log: log}
	return NewEnquiryService(repo, validator.NewEnquiryValidator(log), cfg)
}

func TestCreateEnquirySanitizesInput(t *testing.T) {
	var stored *model.Enquiry
	repo := &mockEnquiryRepo{
		createFn: func(_ context.Context, enquiry *model.Enquiry) error {
			stored = enquiry
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), &model.EnquiryCreate{
		Name:    "  Sam   Doe ",
		Email:   " Sam@Example.COM ",
		Message: "Do you have\n\nevening classes?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Name != "Sam Doe" {
		t.Errorf("expected sanitized name, got %q", stored.Name)
	}
	if stored.Email != "sam@example.com" {
		t.Errorf("expected lowercased email, got %q", stored.Email)
	}
	if stored.Message != "Do you have\n\nevening classes?" {
		t.Errorf("message newlines must survive, got %q", stored.Message)
	}
}

func TestCreateEnquiryInvalidEmail(t *testing.T) {
	repo := &mockEnquiryRepo{}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), &model.EnquiryCreate{
		Name:    "Sam",
		Email:   "not-an-email",
		Message: "Hello",
	})

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("invalid enquiry must not be stored")
	}
}

func TestDeleteEnquiryNotFound(t *testing.T) {
	svc := newTestService(&mockEnquiryRepo{})

	err := svc.Delete(context.Background(), testEnquiryID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetAllEnquiries(t *testing.T) {
	repo := &mockEnquiryRepo{
		findAllFn: func(_ context.Context, limit int, offset int64) ([]*model.Enquiry, error) {
			return []*model.Enquiry{{ID: testEnquiryID, Name: "Sam"}}, nil
		},
		countFn: func(_ context.Context) (int64, error) { return 1, nil },
	}
	svc := newTestService(repo)

	enquiries, count, err := svc.GetAll(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 || len(enquiries) != 1 {
		t.Errorf("expected 1 enquiry, got count=%d len=%d", count, len(enquiries))
	}
}
