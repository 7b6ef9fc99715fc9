package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "12:30", want: 750},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09-00", wantErr: true},
		{in: "", wantErr: true},
		{in: "девять", wantErr: true},
		{in: "09:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateKey(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC по парижскому времени уже следующий день
	moment := time.Date(2026, 1, 14, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-14", DateKey(moment, time.UTC))
	assert.Equal(t, "2026-01-15", DateKey(moment, paris))
}
