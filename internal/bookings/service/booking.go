package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookingserrors "theworks/internal/bookings/errors"
	"theworks/internal/bookings/repository"
	"theworks/internal/bookings/validator"
	classeserrors "theworks/internal/classes/errors"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	"theworks/pkg/events"
	"theworks/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// AddonFinder is the read path into the add-on store used to re-validate a
// batch before attaching. Implemented by the addons repository.
type AddonFinder interface {
	FindActiveByIDs(ctx context.Context, ids []string) ([]*model.Addon, error)
}

// ClassFinder is the read path into the class store used when a booking is
// created. Implemented by the classes repository.
type ClassFinder interface {
	FindByID(ctx context.Context, id string) (*model.Class, error)
}

type BookingService interface {
	Create(ctx context.Context, identity model.Identity, input *model.BookingCreate) (*model.Booking, error)
	GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, []string, error)
	GetOwn(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, identity model.Identity, id string, input *model.BookingStatusUpdate) (*model.Booking, error)
	AttachAddons(ctx context.Context, identity model.Identity, id string, input *model.AttachAddonsRequest) ([]string, error)
	DetachAddons(ctx context.Context, identity model.Identity, id string, input *model.DetachAddonsRequest) ([]string, error)
	Delete(ctx context.Context, identity model.Identity, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	addons    AddonFinder
	classes   ClassFinder
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	addons AddonFinder,
	classes ClassFinder,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		addons:    addons,
		classes:   classes,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, identity model.Identity, input *model.BookingCreate) (*model.Booking, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Booking create validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	class, err := s.classes.FindByID(ctx, input.ClassID)
	if err != nil {
		if errors.Is(err, classeserrors.ErrNotFound) || errors.Is(err, classeserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Class", input.ClassID)
		}
		return nil, apperrors.Internal("Failed to look up class", err)
	}
	if !class.Active {
		return nil, apperrors.NotFoundWithID("Class", input.ClassID)
	}

	// The owner is always the verified caller; the request body cannot
	// book on someone else's behalf.
	booking := &model.Booking{
		UserID:  identity.Subject,
		ClassID: input.ClassID,
		Status:  model.StatusPending,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Snapshot reads do not conflict with each other, so two concurrent
		// creates can both observe a free seat and overbook by one. Closing
		// that gap needs a per-class seat counter $inc'd in this transaction
		// to force a write conflict.
		taken, err := s.repo.CountActiveByClass(sessCtx, input.ClassID)
		if err != nil {
			return apperrors.Internal("Failed to check class capacity", err)
		}
		if taken >= int64(class.Capacity) {
			return apperrors.Conflict("Class is fully booked")
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"class_id", input.ClassID,
			"subject", identity.Subject,
			"error", err,
		)
		return nil, err
	}

	s.publisher.PublishBooking(ctx, events.BookingEvent{
		Type:      events.TypeBookingCreated,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		ClassID:   booking.ClassID,
		Status:    booking.Status,
	})

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"class_id", booking.ClassID,
		"subject", identity.Subject,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, identity model.Identity, id string) (*model.Booking, []string, error) {
	booking, err := s.resolveOwned(ctx, identity, id)
	if err != nil {
		return nil, nil, err
	}

	attachments, err := s.repo.FindAttachments(ctx, booking.ID)
	if err != nil {
		return nil, nil, apperrors.Internal("Failed to load booking add-ons", err)
	}

	return booking, attachmentIDs(attachments), nil
}

func (s *bookingService) GetOwn(ctx context.Context, identity model.Identity, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByOwner(ctx, identity.Subject)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "subject", identity.Subject, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByOwner(ctx, identity.Subject, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "subject", identity.Subject, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, identity model.Identity, id string, input *model.BookingStatusUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateStatusUpdate(input); err != nil {
		s.cfg.Log.Warn("Booking status validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid status input", map[string]any{"error": err.Error()})
	}

	booking, err := s.resolveOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if err := s.guardTransition(identity, booking.Status, input.Status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.Status, input.Status); err != nil {
		if errors.Is(err, bookingserrors.ErrStaleStatus) {
			return nil, apperrors.Conflict("Booking status changed concurrently")
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	booking.Status = input.Status

	s.publisher.PublishBooking(ctx, events.BookingEvent{
		Type:      events.TypeBookingStatusChanged,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		ClassID:   booking.ClassID,
		Status:    booking.Status,
	})

	s.cfg.Log.Info("Booking status updated", "id", id, "status", input.Status)
	return booking, nil
}

func (s *bookingService) AttachAddons(ctx context.Context, identity model.Identity, id string, input *model.AttachAddonsRequest) ([]string, error) {
	if err := s.validator.ValidateAttach(input); err != nil {
		s.cfg.Log.Warn("Add-on attach validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid add-on input", map[string]any{"error": err.Error()})
	}

	booking, err := s.resolveOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.StatusCancelled {
		return nil, apperrors.Conflict("Cannot modify add-ons of a cancelled booking")
	}

	var updated []string
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Every id in the batch must reference an existing, active add-on,
		// otherwise the whole batch fails before a single row is written.
		active, err := s.addons.FindActiveByIDs(sessCtx, input.AddonIDs)
		if err != nil {
			return apperrors.Internal("Failed to verify add-ons", err)
		}
		if missing := missingIDs(input.AddonIDs, active); len(missing) > 0 {
			return apperrors.NotFound("Add-on").WithDetails(map[string]any{"addon_ids": missing})
		}

		existing, err := s.repo.FindAttachments(sessCtx, booking.ID)
		if err != nil {
			return apperrors.Internal("Failed to load current add-ons", err)
		}
		attached := make(map[string]struct{}, len(existing))
		for _, a := range existing {
			attached[a.AddonID] = struct{}{}
		}

		batch := make([]*model.AddonAttachment, 0, len(input.AddonIDs))
		for _, addonID := range input.AddonIDs {
			if _, ok := attached[addonID]; ok {
				return apperrors.Conflict(fmt.Sprintf("Add-on %s is already attached", addonID))
			}
			batch = append(batch, &model.AddonAttachment{
				BookingID: booking.ID,
				AddonID:   addonID,
			})
		}

		if err := s.repo.InsertAttachments(sessCtx, batch); err != nil {
			if errors.Is(err, bookingserrors.ErrDuplicateAttachment) {
				return apperrors.Conflict("Add-on already attached by a concurrent request")
			}
			return apperrors.Internal("Failed to attach add-ons", err)
		}

		updated = make([]string, 0, len(existing)+len(batch))
		for _, a := range existing {
			updated = append(updated, a.AddonID)
		}
		updated = append(updated, input.AddonIDs...)
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to attach add-ons", "id", id, "error", err)
		return nil, err
	}

	s.publisher.PublishBooking(ctx, events.BookingEvent{
		Type:      events.TypeBookingAddonsChanged,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		AddonIDs:  updated,
	})

	s.cfg.Log.Info("Add-ons attached", "id", id, "count", len(input.AddonIDs))
	return updated, nil
}

func (s *bookingService) DetachAddons(ctx context.Context, identity model.Identity, id string, input *model.DetachAddonsRequest) ([]string, error) {
	if err := s.validator.ValidateDetach(input); err != nil {
		s.cfg.Log.Warn("Add-on detach validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid add-on input", map[string]any{"error": err.Error()})
	}

	booking, err := s.resolveOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.StatusCancelled {
		return nil, apperrors.Conflict("Cannot modify add-ons of a cancelled booking")
	}

	var updated []string
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		deleted, err := s.repo.DeleteAttachments(sessCtx, booking.ID, input.AddonIDs)
		if err != nil {
			return apperrors.Internal("Failed to detach add-ons", err)
		}
		// Returning an error aborts the transaction, so a partially
		// matching batch removes nothing.
		if deleted != int64(len(input.AddonIDs)) {
			return apperrors.NotFound("Add-on attachment").WithDetails(map[string]any{
				"requested": len(input.AddonIDs),
				"attached":  deleted,
			})
		}

		remaining, err := s.repo.FindAttachments(sessCtx, booking.ID)
		if err != nil {
			return apperrors.Internal("Failed to load current add-ons", err)
		}
		updated = attachmentIDs(remaining)
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to detach add-ons", "id", id, "error", err)
		return nil, err
	}

	s.publisher.PublishBooking(ctx, events.BookingEvent{
		Type:      events.TypeBookingAddonsChanged,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		AddonIDs:  updated,
	})

	s.cfg.Log.Info("Add-ons detached", "id", id, "count", len(input.AddonIDs))
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, identity model.Identity, id string) error {
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		// Attachments belong to the booking; they go with it.
		if err := s.repo.DeleteAllAttachments(sessCtx, id); err != nil {
			return apperrors.Internal("Failed to delete booking add-ons", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id, "by", identity.Subject)
	return nil
}

// --- Helpers ---

// resolveOwned fetches a booking scoped to the caller. Admins resolve any
// booking; everyone else resolves only their own, and a booking that exists
// but belongs to someone else is reported exactly like one that does not
// exist.
func (s *bookingService) resolveOwned(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var booking *model.Booking
	var err error
	if identity.IsAdmin() {
		booking, err = s.repo.FindByID(ctx, id)
	} else {
		booking, err = s.repo.FindByIDAndOwner(ctx, id, identity.Subject)
	}
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// guardTransition enforces the booking status machine: pending may confirm
// (admin only) or cancel, confirmed may cancel, cancelled is terminal.
func (s *bookingService) guardTransition(identity model.Identity, from, to string) error {
	if from == to {
		return apperrors.Conflict(fmt.Sprintf("Booking is already %s", from))
	}
	if from == model.StatusCancelled {
		return apperrors.Conflict("A cancelled booking cannot change status")
	}

	switch {
	case from == model.StatusPending && to == model.StatusConfirmed:
		if !identity.IsAdmin() {
			return apperrors.Forbidden("admin role required to confirm a booking")
		}
		return nil
	case to == model.StatusCancelled:
		return nil
	default:
		if identity.IsAdmin() && s.cfg.StatusAdminOverride {
			return nil
		}
		return apperrors.Conflict(fmt.Sprintf("Cannot change booking status from %s to %s", from, to))
	}
}

func attachmentIDs(attachments []*model.AddonAttachment) []string {
	ids := make([]string, 0, len(attachments))
	for _, a := range attachments {
		ids = append(ids, a.AddonID)
	}
	return ids
}

func missingIDs(requested []string, found []*model.Addon) []string {
	present := make(map[string]struct{}, len(found))
	for _, a := range found {
		present[a.ID] = struct{}{}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
