// Package view owns the mapping from {resource type, viewer role} to the
// field set a response may contain. Handlers never strip fields themselves;
// a sensitive field added to a model stays hidden until it is listed here.
package view

import (
	"time"

	"theworks/pkg/model"
)

type TrainerPublic struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Bio         string   `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Active      bool     `json:"active"`
}

type TrainerAdmin struct {
	TrainerPublic
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Trainer strips contact details for every viewer that is not an admin.
func Trainer(t *model.Trainer, role model.Role) any {
	public := TrainerPublic{
		ID:          t.ID,
		Name:        t.Name,
		Bio:         t.Bio,
		Specialties: t.Specialties,
		Active:      t.Active,
	}
	if role != model.RoleAdmin {
		return public
	}
	return TrainerAdmin{
		TrainerPublic: public,
		Phone:         t.Phone,
		Email:         t.Email,
		CreatedAt:     t.CreatedAt,
	}
}

func Trainers(trainers []*model.Trainer, role model.Role) []any {
	out := make([]any, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, Trainer(t, role))
	}
	return out
}

type BookingView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClassID   string    `json:"class_id"`
	Status    string    `json:"status"`
	AddonIDs  []string  `json:"addon_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking is only ever shown to its owner or an admin, both of whom may see
// the owner id. Ownership scoping happens before projection.
func Booking(b *model.Booking, addonIDs []string) BookingView {
	if addonIDs == nil {
		addonIDs = []string{}
	}
	return BookingView{
		ID:        b.ID,
		UserID:    b.UserID,
		ClassID:   b.ClassID,
		Status:    b.Status,
		AddonIDs:  addonIDs,
		CreatedAt: b.CreatedAt,
	}
}

type EnquiryAdmin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type EnquiryReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Enquiry gives admins the full record; the submitting public caller only
// gets a receipt, so contact details never echo back over the wire.
func Enquiry(e *model.Enquiry, role model.Role) any {
	if role != model.RoleAdmin {
		return EnquiryReceipt{ID: e.ID, CreatedAt: e.CreatedAt}
	}
	return EnquiryAdmin{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func Enquiries(enquiries []*model.Enquiry, role model.Role) []any {
	out := make([]any, 0, len(enquiries))
	for _, e := range enquiries {
		out = append(out, Enquiry(e, role))
	}
	return out
}

type ClassView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TrainerID   string    `json:"trainer_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	Active      bool      `json:"active"`
}

func Class(c *model.Class) ClassView {
	return ClassView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		TrainerID:   c.TrainerID,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Capacity:    c.Capacity,
		Active:      c.Active,
	}
}

func Classes(classes []*model.Class) []ClassView {
	out := make([]ClassView, 0, len(classes))
	for _, c := range classes {
		out = append(out, Class(c))
	}
	return out
}

type AddonView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Active      bool   `json:"active"`
}

func Addon(a *model.Addon) AddonView {
	return AddonView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		PriceCents:  a.PriceCents,
		Active:      a.Active,
	}
}

func Addons(addons []*model.Addon) []AddonView {
	out := make([]AddonView, 0, len(addons))
	for _, a := range addons {
		out = append(out, Addon(a))
	}
	return out
}
