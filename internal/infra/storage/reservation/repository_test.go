package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, 20300514, LockKey(time.Date(2030, 5, 14, 19, 30, 0, 0, time.UTC)))
	assert.NotEqual(t,
		LockKey(time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC)),
		LockKey(time.Date(2030, 5, 15, 0, 0, 0, 0, time.UTC)),
	)
}

func TestDateArg_KeepsCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2030-05-14", dateArg(time.Date(2030, 5, 14, 0, 0, 0, 0, tokyo)))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
	assert.Equal(t, "Dupont", escapeLike("Dupont"))
}
