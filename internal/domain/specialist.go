package domain

import (
	"time"
)

type Specialist struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Specialization  string    `json:"specialization"`
	Description     string    `json:"description"`
	Timezone        string    `json:"timezone"`
	ConsultPrice    float64   `json:"consult_price"`
	IsVerified      bool      `json:"is_verified"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
	User            User      `json:"user"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateSpecialistDTO struct {
	Specialization string  `json:"specialization" binding:"required"`
	Description    string  `json:"description,omitempty"`
	Timezone       string  `json:"timezone,omitempty"`
	ConsultPrice   float64 `json:"consult_price,omitempty" binding:"min=0"`
}

type UpdateSpecialistDTO struct {
	Specialization *string  `json:"specialization"`
	Description    *string  `json:"description"`
	Timezone       *string  `json:"timezone"`
	ConsultPrice   *float64 `json:"consult_price" binding:"omitempty,min=0"`
}
