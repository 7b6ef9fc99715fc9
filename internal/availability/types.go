package availability

import (
	"time"
)

const StatusCancelled = "cancelled"

// WeeklyTemplate описывает повторяющееся недельное правило доступности.
// BufferBefore и MaxAppointments хранятся, но при генерации слотов
// не учитываются (зарезервированы до уточнения продуктовых требований).
type WeeklyTemplate struct {
	DayOfWeek       int    `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	SlotDuration    int    `json:"slot_duration"`
	BufferBefore    int    `json:"buffer_before"`
	BufferAfter     int    `json:"buffer_after"`
	MaxAppointments int    `json:"max_appointments"`
	IsActive        bool   `json:"is_active"`
}

// DateException описывает исключение для конкретной даты: либо день полностью
// закрыт (IsAvailable=false), либо шаблоны заменяются одним окном
// StartTime–EndTime.
type DateException struct {
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
	StartTime   *string   `json:"start_time,omitempty"`
	EndTime     *string   `json:"end_time,omitempty"`
}

// Booking представляет существующую запись, источник конфликтов.
// Записи со статусом StatusCancelled не блокируют слоты.
type Booking struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}
