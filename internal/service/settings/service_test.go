package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func TestService_Get(t *testing.T) {
	s := NewService(domain.DefaultRestaurantConfig())
	s.timeProvider = fixedTime{now: time.Date(2030, 5, 13, 10, 0, 0, 0, time.UTC)}

	resp := s.Get()

	assert.Equal(t, "Le Lagon", resp.Name)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, 50, resp.Capacity)
	assert.Equal(t, "monday", resp.ClosedWeekday)
	assert.Equal(t, 12, resp.MaxPartySize)
	assert.Equal(t, "13+", resp.OverflowPartySize)
	assert.Equal(t, []models.MealWindowResponse{
		{Meal: "lunch", Start: "12:00", End: "14:00"},
		{Meal: "dinner", Start: "19:00", End: "22:00"},
	}, resp.Windows)
	assert.Equal(t, "2030-05-13", resp.BookableFrom)
	assert.Equal(t, "2030-07-12", resp.BookableUntil)
}
