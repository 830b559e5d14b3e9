package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "12:30"},
		{name: "trimmed", input: " 19:00 "},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := MustTimeString("21:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("22:00"), next)

	_, err = ts.AddMinutes(180)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("19:45").On(date)
	assert.Equal(t, time.Date(2026, 10, 20, 19, 45, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("12:30:00")))
	assert.Equal(t, TimeString("12:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("12:00").IsBefore(MustTimeString("12:30")))
	assert.False(t, MustTimeString("12:30").IsBefore(MustTimeString("12:30")))
	assert.True(t, MustTimeString("22:00").IsAfter(MustTimeString("19:00")))
}
