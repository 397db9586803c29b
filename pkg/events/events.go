package events

import (
	"time"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingAddonsChanged = "booking.addons_changed"
)

// BookingEvent is published after a booking mutation commits. Consumers
// (notification delivery and the like) live outside this service.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	ClassID    string    `json:"class_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	AddonIDs   []string  `json:"addon_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
