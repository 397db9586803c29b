package service

import (
	"context"
	"testing"
	"time"

	classeserrors "theworks/internal/classes/errors"
	trainerserrors "theworks/internal/trainers/errors"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/logger"
	"theworks/pkg/model"
)

const (
	testClassID   = "65a000000000000000000001"
	testTrainerID = "65a000000000000000000002"
)

type mockClassRepo struct {
	createFn      func(ctx context.Context, class *model.Class) error
	findByIDFn    func(ctx context.Context, id string) (*model.Class, error)
	findAllFn     func(ctx context.Context, limit int, offset int64) ([]*model.Class, error)
	findActiveFn  func(ctx context.Context, limit int, offset int64) ([]*model.Class, error)
	countFn       func(ctx context.Context) (int64, error)
	countActiveFn func(ctx context.Context) (int64, error)
	updateFn      func(ctx context.Context, id string, update *model.ClassUpdate) error
	deleteFn      func(ctx context.Context, id string) error

	createCalls int
}

func (m *mockClassRepo) Create(ctx context.Context, class *model.Class) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, class)
	}
	class.ID = testClassID
	return nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*model.Class, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, classeserrors.ErrNotFound
}

func (m *mockClassRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Class, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockClassRepo) FindActive(ctx context.Context, limit int, offset int64) ([]*model.Class, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockClassRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockClassRepo) CountActive(ctx context.Context) (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx)
	}
	return 0, nil
}

func (m *mockClassRepo) Update(ctx context.Context, id string, update *model.ClassUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return classeserrors.ErrNotFound
}

func (m *mockClassRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return classeserrors.ErrNotFound
}

type mockTrainerFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Trainer, error)
}

func (m *mockTrainerFinder) FindByID(ctx context.Context, id string) (*model.Trainer, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, trainerserrors.ErrNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
}

func validCreate() *model.ClassCreate {
	start := time.Now().Add(time.Hour)
	return &model.ClassCreate{
		Title:     "Morning Spin",
		TrainerID: testTrainerID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Capacity:  20,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestCreateClass(t *testing.T) {
	repo := &mockClassRepo{}
	trainers := &mockTrainerFinder{
		findByIDFn: func(_ context.Context, id string) (*model.Trainer, error) {
			return &model.Trainer{ID: id, Name: "Jo"}, nil
		},
	}
	svc := NewClassService(repo, trainers, testConfig())

	class, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !class.Active {
		t.Error("new classes must start active")
	}
}

func TestCreateClassUnknownTrainer(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, &mockTrainerFinder{}, testConfig())

	_, err := svc.Create(context.Background(), validCreate())
	assertCode(t, err, apperrors.CodeNotFound)
	if repo.createCalls != 0 {
		t.Error("a class with a dangling trainer reference must not be created")
	}
}

func TestCreateClassEndBeforeStart(t *testing.T) {
	input := validCreate()
	input.EndTime = input.StartTime.Add(-time.Hour)

	svc := NewClassService(&mockClassRepo{}, &mockTrainerFinder{}, testConfig())
	_, err := svc.Create(context.Background(), input)
	assertCode(t, err, apperrors.CodeValidation)
}

func TestCreateClassSanitizesTitle(t *testing.T) {
	var stored *model.Class
	repo := &mockClassRepo{
		createFn: func(_ context.Context, class *model.Class) error {
			stored = class
			return nil
		},
	}
	trainers := &mockTrainerFinder{
		findByIDFn: func(_ context.Context, id string) (*model.Trainer, error) {
			return &model.Trainer{ID: id}, nil
		},
	}
	svc := NewClassService(repo, trainers, testConfig())

	input := validCreate()
	input.Title = "  Morning   Spin  "
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Morning Spin" {
		t.Errorf("expected collapsed title, got %q", stored.Title)
	}
}

func TestGetClassNotFound(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, &mockTrainerFinder{}, testConfig())

	_, err := svc.GetByID(context.Background(), testClassID, false)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestGetClassInactiveHiddenFromNonAdmin(t *testing.T) {
	repo := &mockClassRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Class, error) {
			return &model.Class{ID: id, Title: "Spin", Active: false}, nil
		},
	}
	svc := NewClassService(repo, &mockTrainerFinder{}, testConfig())

	_, err := svc.GetByID(context.Background(), testClassID, false)
	assertCode(t, err, apperrors.CodeNotFound)

	class, err := svc.GetByID(context.Background(), testClassID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class.Active {
		t.Error("expected the stored inactive class back")
	}
}

func TestGetAllClassesActiveOnlyForNonAdmin(t *testing.T) {
	repo := &mockClassRepo{
		findActiveFn: func(_ context.Context, _ int, _ int64) ([]*model.Class, error) {
			return []*model.Class{{ID: testClassID, Active: true}}, nil
		},
		countActiveFn: func(_ context.Context) (int64, error) {
			return 1, nil
		},
		findAllFn: func(_ context.Context, _ int, _ int64) ([]*model.Class, error) {
			t.Error("non-admin listing must not read inactive classes")
			return nil, nil
		},
	}
	svc := NewClassService(repo, &mockTrainerFinder{}, testConfig())

	classes, count, err := svc.GetAll(context.Background(), false, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 || len(classes) != 1 {
		t.Fatalf("expected one active class, got count=%d len=%d", count, len(classes))
	}
}

func TestDeleteClassNotFound(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, &mockTrainerFinder{}, testConfig())

	err := svc.Delete(context.Background(), testClassID)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestUpdateClassCapacity(t *testing.T) {
	repo := &mockClassRepo{
		updateFn: func(_ context.Context, id string, update *model.ClassUpdate) error {
			return nil
		},
		findByIDFn: func(_ context.Context, id string) (*model.Class, error) {
			return &model.Class{ID: id, Title: "Spin", Capacity: 30, Active: true}, nil
		},
	}
	svc := NewClassService(repo, &mockTrainerFinder{}, testConfig())

	capacity := 30
	class, err := svc.Update(context.Background(), testClassID, &model.ClassUpdate{Capacity: &capacity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class.Capacity != 30 {
		t.Errorf("expected capacity 30, got %d", class.Capacity)
	}
}
