package model

import (
	"time"
)

type Class struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=100"`
	Description string    `json:"description" bson:"description" validate:"omitempty,max=2000"`
	TrainerID   string    `json:"trainer_id" bson:"trainer_id" validate:"required,mongodb"`
	StartTime   time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ClassCreate struct {
	Title       string    `json:"title" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	TrainerID   string    `json:"trainer_id" validate:"required,mongodb"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Capacity    int       `json:"capacity" validate:"required,min=1,max=500"`
}

type ClassUpdate struct {
	Title       string     `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	TrainerID   string     `json:"trainer_id,omitempty" validate:"omitempty,mongodb"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	Active      *bool      `json:"active,omitempty"`
}
