package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePartySize(t *testing.T) {
	p, err := ParsePartySize(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, Party(4), p)

	p, err = ParsePartySize(OverflowPartySize)
	require.NoError(t, err)
	assert.True(t, p.Overflow)
	assert.Equal(t, "13+", p.String())

	_, err = ParsePartySize("")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = ParsePartySize("four")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParsePartySize_OnlyExactOverflowValue(t *testing.T) {
	for _, raw := range []string{"1+", "abc+", "12+", "14+", "+", "13++"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParsePartySize(raw)

			assert.ErrorIs(t, err, ErrInvalidFormat)
			assert.NotErrorIs(t, err, ErrPartySizeTooLarge)
		})
	}
}

func TestPartySize_Check(t *testing.T) {
	assert.NoError(t, Party(1).Check(12))
	assert.NoError(t, Party(12).Check(12))
	assert.ErrorIs(t, Party(13).Check(12), ErrPartySizeTooLarge)
	assert.ErrorIs(t, OverflowParty().Check(12), ErrPartySizeTooLarge)
	assert.ErrorIs(t, Party(0).Check(12), ErrInvalidFormat)
	assert.ErrorIs(t, Party(-3).Check(12), ErrInvalidFormat)
}

func TestRejection_IsMatchesByCode(t *testing.T) {
	err := Reject(CodeTooSoon, "arrive after %s", "12:00")

	assert.ErrorIs(t, err, ErrTooSoon)
	assert.NotErrorIs(t, err, ErrTooFarAhead)

	wrapped := errors.Join(errors.New("context"), err)
	r, ok := AsRejection(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeTooSoon, r.Code)
	assert.Equal(t, "arrive after 12:00", r.Message)

	_, ok = AsRejection(errors.New("plain"))
	assert.False(t, ok)
}

func TestRestaurantConfig_Defaults(t *testing.T) {
	cfg := DefaultRestaurantConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.Capacity)
	assert.Equal(t, 120, cfg.TableDurationMinutes)
	assert.Equal(t, 2, cfg.MinLeadHours)
	assert.Equal(t, 60, cfg.MaxAdvanceDays)
	assert.Equal(t, 30, cfg.SlotGranularityMinutes)
	assert.True(t, cfg.Lunch.Contains("14:00"))
	assert.False(t, cfg.Lunch.Contains("14:30"))

	cfg.Capacity = 0
	assert.Error(t, cfg.Validate())
}
