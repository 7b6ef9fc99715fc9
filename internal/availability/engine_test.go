package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Config{Location: parisLocation(t), DefaultSlotDuration: 60})
}

func mondayTemplate() WeeklyTemplate {
	return WeeklyTemplate{
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 60,
		IsActive:     true,
	}
}

func clock(t *testing.T, loc *time.Location, date string, hour, min int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	require.NoError(t, err)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, loc)
}

func TestDaySlots_MondayWithBookedSlot(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	// 2026-01-12 это понедельник
	monday := clock(t, loc, "2026-01-12", 0, 0)
	bookings := []Booking{
		{
			StartTime: clock(t, loc, "2026-01-12", 10, 0),
			EndTime:   clock(t, loc, "2026-01-12", 11, 0),
			Status:    "confirmed",
		},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, nil, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, clock(t, loc, "2026-01-12", 9, 0), slots[0].StartTime)
	assert.Equal(t, clock(t, loc, "2026-01-12", 10, 0), slots[0].EndTime)
	assert.True(t, slots[0].Available)

	assert.Equal(t, clock(t, loc, "2026-01-12", 10, 0), slots[1].StartTime)
	assert.False(t, slots[1].Available)

	assert.Equal(t, clock(t, loc, "2026-01-12", 11, 0), slots[2].StartTime)
	assert.True(t, slots[2].Available)
}

func TestDaySlots_BlockedDayReturnsEmpty(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	exceptions := []DateException{
		{Date: monday, IsAvailable: false},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, exceptions, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestDaySlots_OverrideReplacesTemplates(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	start := "14:00"
	end := "16:00"
	exceptions := []DateException{
		{Date: monday, IsAvailable: true, StartTime: &start, EndTime: &end},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, exceptions, nil)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, clock(t, loc, "2026-01-12", 14, 0), slots[0].StartTime)
	assert.Equal(t, clock(t, loc, "2026-01-12", 15, 0), slots[0].EndTime)
	assert.Equal(t, clock(t, loc, "2026-01-12", 15, 0), slots[1].StartTime)
	assert.Equal(t, clock(t, loc, "2026-01-12", 16, 0), slots[1].EndTime)
}

func TestDaySlots_ExceptionWithoutWindowKeepsTemplates(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	exceptions := []DateException{
		{Date: monday, IsAvailable: true},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, exceptions, nil)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestDaySlots_InactiveAndForeignTemplatesExcluded(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	inactive := mondayTemplate()
	inactive.IsActive = false

	tuesday := mondayTemplate()
	tuesday.DayOfWeek = 2

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{inactive, tuesday}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlots_BufferAfterSeparatesSlots(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	tpl := WeeklyTemplate{
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 45,
		BufferAfter:  15,
		IsActive:     true,
	}

	monday := clock(t, loc, "2026-01-12", 0, 0)
	slots, err := engine.DaySlots(monday, []WeeklyTemplate{tpl}, nil, nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	for i := 0; i < len(slots)-1; i++ {
		assert.Equal(t, slots[i].EndTime.Add(15*time.Minute), slots[i+1].StartTime)
	}
}

func TestDaySlots_CancelledBookingDoesNotBlock(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	bookings := []Booking{
		{
			StartTime: clock(t, loc, "2026-01-12", 10, 0),
			EndTime:   clock(t, loc, "2026-01-12", 11, 0),
			Status:    StatusCancelled,
		},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, nil, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestDaySlots_TouchingBookingDoesNotBlock(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	bookings := []Booking{
		{
			// Запись 12:00–13:00 граничит с последним слотом 11:00–12:00
			StartTime: clock(t, loc, "2026-01-12", 12, 0),
			EndTime:   clock(t, loc, "2026-01-12", 13, 0),
			Status:    "pending",
		},
	}

	slots, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, nil, bookings)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[2].Available)
}

func TestDaySlots_OverlappingTemplatesAreNotMerged(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	first := mondayTemplate()
	second := mondayTemplate()
	second.StartTime = "11:00"
	second.EndTime = "13:00"

	monday := clock(t, loc, "2026-01-12", 0, 0)
	slots, err := engine.DaySlots(monday, []WeeklyTemplate{first, second}, nil, nil)
	require.NoError(t, err)

	// 3 слота первого шаблона + 2 второго, слот 11:00 присутствует дважды
	require.Len(t, slots, 5)
	assert.Equal(t, slots[2].StartTime, slots[3].StartTime)
}

func TestDaySlots_Deterministic(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	monday := clock(t, loc, "2026-01-12", 0, 0)
	bookings := []Booking{
		{
			StartTime: clock(t, loc, "2026-01-12", 9, 0),
			EndTime:   clock(t, loc, "2026-01-12", 10, 0),
			Status:    "confirmed",
		},
	}

	first, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, nil, bookings)
	require.NoError(t, err)
	second, err := engine.DaySlots(monday, []WeeklyTemplate{mondayTemplate()}, nil, bookings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDaySlots_InvalidTemplateClock(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	tpl := mondayTemplate()
	tpl.StartTime = "9 утра"

	monday := clock(t, loc, "2026-01-12", 0, 0)
	_, err := engine.DaySlots(monday, []WeeklyTemplate{tpl}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestDaySlots_DSTTransitionKeepsWallClock(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	// 2026-03-29 это воскресенье перехода на летнее время в Париже
	tpl := WeeklyTemplate{
		DayOfWeek:    0,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 60,
		IsActive:     true,
	}

	sunday := clock(t, loc, "2026-03-29", 0, 0)
	slots, err := engine.DaySlots(sunday, []WeeklyTemplate{tpl}, nil, nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, 9, slots[0].StartTime.Hour())
	// После перехода местные 09:00 соответствуют 07:00 UTC
	assert.Equal(t, 7, slots[0].StartTime.UTC().Hour())
}

func TestRangeSlots_OneKeyPerDay(t *testing.T) {
	loc := parisLocation(t)
	engine := newTestEngine(t)

	from := clock(t, loc, "2026-01-12", 0, 0)
	to := from.AddDate(0, 0, 7)

	result, err := engine.RangeSlots(from, to, []WeeklyTemplate{mondayTemplate()}, nil, nil)
	require.NoError(t, err)
	require.Len(t, result, 7)

	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		daySlots, ok := result[day.Format("2006-01-02")]
		require.True(t, ok, "нет ключа для дня %s", day.Format("2006-01-02"))
		if int(day.Weekday()) == 1 {
			assert.Len(t, daySlots, 3)
		} else {
			assert.Empty(t, daySlots)
		}
	}
}

func TestHasOverlap(t *testing.T) {
	loc := parisLocation(t)

	booking := Booking{
		StartTime: clock(t, loc, "2026-01-15", 10, 0),
		EndTime:   clock(t, loc, "2026-01-15", 11, 0),
		Status:    "confirmed",
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		bookings []Booking
		want     bool
	}{
		{
			name:     "частичное пересечение",
			start:    clock(t, loc, "2026-01-15", 10, 30),
			end:      clock(t, loc, "2026-01-15", 11, 30),
			bookings: []Booking{booking},
			want:     true,
		},
		{
			name:     "кандидат внутри записи",
			start:    clock(t, loc, "2026-01-15", 10, 15),
			end:      clock(t, loc, "2026-01-15", 10, 45),
			bookings: []Booking{booking},
			want:     true,
		},
		{
			name:     "запись внутри кандидата",
			start:    clock(t, loc, "2026-01-15", 9, 0),
			end:      clock(t, loc, "2026-01-15", 12, 0),
			bookings: []Booking{booking},
			want:     true,
		},
		{
			name:     "общая граница не пересечение",
			start:    clock(t, loc, "2026-01-15", 11, 0),
			end:      clock(t, loc, "2026-01-15", 12, 0),
			bookings: []Booking{booking},
			want:     false,
		},
		{
			name:  "отмененная запись не блокирует",
			start: clock(t, loc, "2026-01-15", 10, 30),
			end:   clock(t, loc, "2026-01-15", 11, 30),
			bookings: []Booking{
				{StartTime: booking.StartTime, EndTime: booking.EndTime, Status: StatusCancelled},
			},
			want: false,
		},
		{
			name:     "нет записей",
			start:    clock(t, loc, "2026-01-15", 10, 0),
			end:      clock(t, loc, "2026-01-15", 11, 0),
			bookings: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasOverlap(tt.start, tt.end, tt.bookings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasOverlap_Commutative(t *testing.T) {
	loc := parisLocation(t)

	aStart := clock(t, loc, "2026-01-15", 10, 30)
	aEnd := clock(t, loc, "2026-01-15", 11, 30)
	bStart := clock(t, loc, "2026-01-15", 10, 0)
	bEnd := clock(t, loc, "2026-01-15", 11, 0)

	direct, err := HasOverlap(aStart, aEnd, []Booking{{StartTime: bStart, EndTime: bEnd, Status: "confirmed"}})
	require.NoError(t, err)
	swapped, err := HasOverlap(bStart, bEnd, []Booking{{StartTime: aStart, EndTime: aEnd, Status: "confirmed"}})
	require.NoError(t, err)

	assert.Equal(t, direct, swapped)
}

func TestHasOverlap_InvalidInterval(t *testing.T) {
	loc := parisLocation(t)

	start := clock(t, loc, "2026-01-15", 11, 0)
	end := clock(t, loc, "2026-01-15", 10, 0)

	_, err := HasOverlap(start, end, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = HasOverlap(start, start, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
