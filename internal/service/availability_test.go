package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookly/config"
	"bookly/internal/availability"
	"bookly/internal/domain"
)

func testAvailabilityConfig() config.AvailabilityConfig {
	return config.AvailabilityConfig{
		Timezone:            "Europe/Paris",
		DefaultSlotDuration: 60,
	}
}

type availabilityFixture struct {
	svc          *AvailabilityServiceImpl
	templates    *mockTemplateRepo
	exceptions   *mockExceptionRepo
	appointments *mockAppointmentRepo
	specialists  *mockSpecialistRepo
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	templates := newMockTemplateRepo()
	exceptions := newMockExceptionRepo()
	appointments := newMockAppointmentRepo()
	specialists := newMockSpecialistRepo()
	specialists.specialists[1] = &domain.Specialist{ID: 1, UserID: 10, Timezone: "Europe/Paris"}

	svc := NewAvailabilityService(templates, exceptions, appointments, specialists, testAvailabilityConfig(), zap.NewNop())

	return &availabilityFixture{
		svc:          svc,
		templates:    templates,
		exceptions:   exceptions,
		appointments: appointments,
		specialists:  specialists,
	}
}

func mondayTemplateDTO() domain.CreateTemplateDTO {
	return domain.CreateTemplateDTO{
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 60,
	}
}

func TestAvailabilityService_CreateTemplate(t *testing.T) {
	f := newAvailabilityFixture(t)

	id, err := f.svc.CreateTemplate(context.Background(), 1, mondayTemplateDTO())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestAvailabilityService_CreateTemplate_UnknownSpecialist(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.CreateTemplate(context.Background(), 99, mondayTemplateDTO())
	assert.Error(t, err)
}

func TestAvailabilityService_CreateTemplate_InvertedWindow(t *testing.T) {
	f := newAvailabilityFixture(t)

	dto := mondayTemplateDTO()
	dto.StartTime = "12:00"
	dto.EndTime = "09:00"

	_, err := f.svc.CreateTemplate(context.Background(), 1, dto)
	assert.ErrorIs(t, err, ErrBadTimeWindow)
}

func TestAvailabilityService_CreateTemplate_BadClock(t *testing.T) {
	f := newAvailabilityFixture(t)

	dto := mondayTemplateDTO()
	dto.StartTime = "9:00"

	_, err := f.svc.CreateTemplate(context.Background(), 1, dto)
	assert.ErrorIs(t, err, availability.ErrInvalidClock)
}

func TestAvailabilityService_CreateTemplate_BadDuration(t *testing.T) {
	f := newAvailabilityFixture(t)

	dto := mondayTemplateDTO()
	dto.SlotDuration = 5

	_, err := f.svc.CreateTemplate(context.Background(), 1, dto)
	assert.Error(t, err)
}

func TestAvailabilityService_CreateException_DuplicateDate(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.CreateException(context.Background(), 1, domain.CreateExceptionDTO{
		Date:        "2026-01-12",
		IsAvailable: false,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateException(context.Background(), 1, domain.CreateExceptionDTO{
		Date:        "2026-01-12",
		IsAvailable: false,
	})
	assert.Error(t, err)
}

func TestAvailabilityService_CreateException_HalfWindow(t *testing.T) {
	f := newAvailabilityFixture(t)

	start := "14:00"
	_, err := f.svc.CreateException(context.Background(), 1, domain.CreateExceptionDTO{
		Date:        "2026-01-12",
		IsAvailable: true,
		StartTime:   &start,
	})
	assert.Error(t, err)
}

func TestAvailabilityService_CreateException_BadDate(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.CreateException(context.Background(), 1, domain.CreateExceptionDTO{
		Date:        "12.01.2026",
		IsAvailable: false,
	})
	assert.Error(t, err)
}

func TestAvailabilityService_UpdateException_PartialWindow(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	start, end := "10:00", "12:00"
	id, err := f.svc.CreateException(ctx, 1, domain.CreateExceptionDTO{
		Date:        "2026-01-12",
		IsAvailable: true,
		StartTime:   &start,
		EndTime:     &end,
	})
	require.NoError(t, err)

	// Обновление одного края окна сверяется с сохранённым вторым краем.
	badStart := "13:00"
	err = f.svc.UpdateException(ctx, id, domain.UpdateExceptionDTO{StartTime: &badStart})
	assert.ErrorIs(t, err, ErrBadTimeWindow)

	goodStart := "11:00"
	err = f.svc.UpdateException(ctx, id, domain.UpdateExceptionDTO{StartTime: &goodStart})
	require.NoError(t, err)

	exc, err := f.svc.GetExceptionByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, exc.StartTime)
	assert.Equal(t, "11:00", *exc.StartTime)
}

func TestAvailabilityService_GetDaySlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTemplate(ctx, 1, mondayTemplateDTO())
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 2026-01-12 это понедельник, запись 10:00-11:00.
	f.appointments.appointments[1] = &domain.Appointment{
		ID:           1,
		SpecialistID: 1,
		StartTime:    time.Date(2026, 1, 12, 10, 0, 0, 0, loc),
		EndTime:      time.Date(2026, 1, 12, 11, 0, 0, 0, loc),
		Status:       domain.AppointmentStatusConfirmed,
	}

	slots, err := f.svc.GetDaySlots(ctx, 1, "2026-01-12")
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
	assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, loc), slots[0].StartTime)
}

func TestAvailabilityService_GetDaySlots_BlockedDay(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTemplate(ctx, 1, mondayTemplateDTO())
	require.NoError(t, err)

	_, err = f.svc.CreateException(ctx, 1, domain.CreateExceptionDTO{
		Date:        "2026-01-12",
		IsAvailable: false,
		Reason:      "отпуск",
	})
	require.NoError(t, err)

	slots, err := f.svc.GetDaySlots(ctx, 1, "2026-01-12")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityService_GetAvailableSlots_Range(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTemplate(ctx, 1, mondayTemplateDTO())
	require.NoError(t, err)

	result, err := f.svc.GetAvailableSlots(ctx, 1, "2026-01-12", "2026-01-19")
	require.NoError(t, err)
	require.Len(t, result, 7)

	assert.Len(t, result["2026-01-12"], 3)
	assert.Empty(t, result["2026-01-13"])
}

func TestAvailabilityService_GetAvailableSlots_BadRange(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetAvailableSlots(ctx, 1, "2026-01-19", "2026-01-12")
	assert.ErrorIs(t, err, ErrBadSlotRange)

	_, err = f.svc.GetAvailableSlots(ctx, 1, "2026-01-01", "2026-03-15")
	assert.ErrorIs(t, err, ErrBadSlotRange)
}

func TestAvailabilityService_GetAvailableSlots_DSTRangeCap(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	// 31 календарный день через перевод часов 2026-10-25 в Париже:
	// по настенным часам период длиннее 31*24 часов, но не превышает лимит.
	result, err := f.svc.GetAvailableSlots(ctx, 1, "2026-10-05", "2026-11-05")
	require.NoError(t, err)
	assert.Len(t, result, 31)

	_, err = f.svc.GetAvailableSlots(ctx, 1, "2026-10-05", "2026-11-06")
	assert.ErrorIs(t, err, ErrBadSlotRange)
}

func TestAvailabilityService_GetAvailableSlots_UnknownSpecialist(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.svc.GetAvailableSlots(context.Background(), 99, "2026-01-12", "")
	assert.Error(t, err)
}

func TestAvailabilityService_GetAvailableSlots_FallbackTimezone(t *testing.T) {
	f := newAvailabilityFixture(t)
	ctx := context.Background()

	// Специалист без своего часового пояса использует пояс из конфигурации.
	f.specialists.specialists[2] = &domain.Specialist{ID: 2, UserID: 20}

	_, err := f.svc.CreateTemplate(ctx, 2, mondayTemplateDTO())
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	result, err := f.svc.GetAvailableSlots(ctx, 2, "2026-01-12", "")
	require.NoError(t, err)
	require.Len(t, result["2026-01-12"], 3)
	assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, loc), result["2026-01-12"][0].StartTime)
}
