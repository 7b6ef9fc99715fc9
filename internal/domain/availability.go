package domain

import (
	"time"
)

// AvailabilityTemplate описывает недельное правило доступности специалиста.
// День недели нумеруется с воскресенья: 0=Sunday ... 6=Saturday.
type AvailabilityTemplate struct {
	ID              int64     `json:"id"`
	SpecialistID    int64     `json:"specialist_id"`
	DayOfWeek       int       `json:"day_of_week"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	SlotDuration    int       `json:"slot_duration"`
	BufferBefore    int       `json:"buffer_before"`
	BufferAfter     int       `json:"buffer_after"`
	MaxAppointments int       `json:"max_appointments"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateTemplateDTO struct {
	DayOfWeek       int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	SlotDuration    int    `json:"slot_duration" binding:"required"`
	BufferBefore    int    `json:"buffer_before" binding:"min=0"`
	BufferAfter     int    `json:"buffer_after" binding:"min=0"`
	MaxAppointments int    `json:"max_appointments" binding:"omitempty,min=1"`
}

type UpdateTemplateDTO struct {
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	SlotDuration    *int    `json:"slot_duration"`
	BufferBefore    *int    `json:"buffer_before"`
	BufferAfter     *int    `json:"buffer_after"`
	MaxAppointments *int    `json:"max_appointments"`
	IsActive        *bool   `json:"is_active"`
}

// AvailabilityException переопределяет доступность на конкретную дату:
// выходной (IsAvailable=false) либо особое окно работы вместо недельных правил.
type AvailabilityException struct {
	ID           int64     `json:"id"`
	SpecialistID int64     `json:"specialist_id"`
	Date         time.Time `json:"date"`
	IsAvailable  bool      `json:"is_available"`
	StartTime    *string   `json:"start_time,omitempty"`
	EndTime      *string   `json:"end_time,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateExceptionDTO struct {
	Date        string  `json:"date" binding:"required"`
	IsAvailable bool    `json:"is_available"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Reason      string  `json:"reason,omitempty"`
}

type UpdateExceptionDTO struct {
	IsAvailable *bool   `json:"is_available"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Reason      *string `json:"reason"`
}

type TemplateFilter struct {
	SpecialistID *int64 `json:"specialist_id"`
	DayOfWeek    *int   `json:"day_of_week"`
	OnlyActive   bool   `json:"only_active"`
}

type ExceptionFilter struct {
	SpecialistID *int64     `json:"specialist_id"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}
