package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClock    = errors.New("неверный формат времени, ожидается HH:MM")
	ErrInvalidInterval = errors.New("начало интервала должно быть раньше окончания")
)

// ParseClock разбирает строку "HH:MM" в минуты с начала суток.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return t.Hour()*60 + t.Minute(), nil
}

// DateKey возвращает календарную дату момента t в зоне loc в формате YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
