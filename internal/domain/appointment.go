package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type Appointment struct {
	ID             int64             `json:"id"`
	ClientID       int64             `json:"client_id"`
	SpecialistID   int64             `json:"specialist_id"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Status         AppointmentStatus `json:"status"`
	Comment        string            `json:"comment,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ClientName     string            `json:"client_name,omitempty"`
	ClientPhone    string            `json:"client_phone,omitempty"`
	SpecialistName string            `json:"specialist_name,omitempty"`
}

type CreateAppointmentDTO struct {
	SpecialistID int64     `json:"specialist_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	Comment      string    `json:"comment,omitempty"`
}

type UpdateAppointmentDTO struct {
	Status    *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	StartTime *time.Time         `json:"start_time"`
	EndTime   *time.Time         `json:"end_time"`
	Comment   *string            `json:"comment"`
}

type AppointmentFilter struct {
	ClientID      *int64             `json:"client_id"`
	SpecialistID  *int64             `json:"specialist_id"`
	Status        *AppointmentStatus `json:"status"`
	ExcludeStatus *AppointmentStatus `json:"exclude_status"`
	StartDate     *time.Time         `json:"start_date"`
	EndDate       *time.Time         `json:"end_date"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}
