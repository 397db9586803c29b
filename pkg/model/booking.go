package model

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	ClassID   string    `json:"class_id" bson:"class_id" validate:"required,mongodb"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingCreate is the only shape a client may submit when booking a class.
// The owner and status are assigned server-side and are deliberately absent
// here so they cannot be set from a request body.
type BookingCreate struct {
	ClassID string `json:"class_id" validate:"required,mongodb"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// AddonAttachment is the join row between a booking and an add-on. Rows are
// only ever written as a whole batch belonging to one booking.
type AddonAttachment struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID string    `json:"booking_id" bson:"booking_id"`
	AddonID   string    `json:"addon_id" bson:"addon_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type AttachAddonsRequest struct {
	AddonIDs []string `json:"addon_ids" validate:"required,min=1,max=20,unique,dive,mongodb"`
}

type DetachAddonsRequest struct {
	AddonIDs []string `json:"addon_ids" validate:"required,min=1,max=20,unique,dive,mongodb"`
}
