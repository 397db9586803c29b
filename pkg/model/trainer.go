package model

import (
	"time"
)

// Trainer carries contact details that must never reach a public response;
// pkg/view owns the per-role projection.
type Trainer struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Bio         string    `json:"bio" bson:"bio" validate:"omitempty,max=2000"`
	Specialties []string  `json:"specialties" bson:"specialties" validate:"omitempty,max=10,dive,min=2,max=50"`
	Phone       string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Email       string    `json:"email" bson:"email" validate:"omitempty,email"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type TrainerCreate struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Bio         string   `json:"bio" validate:"omitempty,max=2000"`
	Specialties []string `json:"specialties" validate:"omitempty,max=10,dive,min=2,max=50"`
	Phone       string   `json:"phone" validate:"omitempty,e164"`
	Email       string   `json:"email" validate:"omitempty,email"`
}

type TrainerUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio         *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Specialties *[]string `json:"specialties,omitempty" validate:"omitempty,max=10,dive,min=2,max=50"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Active      *bool     `json:"active,omitempty"`
}
