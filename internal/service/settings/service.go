package settings

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider, использующая реальное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Service отдает правила бронирования для формы на сайте
type Service struct {
	config       domain.RestaurantConfig
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса настроек
func NewService(config domain.RestaurantConfig) *Service {
	return &Service{
		config:       config,
		timeProvider: &RealTimeProvider{},
	}
}

// Get возвращает текущие настройки и диапазон дат, доступных для бронирования
func (s *Service) Get() *models.SettingsResponse {
	today := domain.DateOnly(s.timeProvider.Now().In(s.config.Location))

	windows := make([]models.MealWindowResponse, 0, 2)
	for _, w := range s.config.Windows() {
		windows = append(windows, models.MealWindowResponse{
			Meal:  string(w.Meal),
			Start: w.Window.Start.String(),
			End:   w.Window.End.String(),
		})
	}

	return &models.SettingsResponse{
		Name:                   s.config.Name,
		Timezone:               s.config.Location.String(),
		Capacity:               s.config.Capacity,
		TableDurationMinutes:   s.config.TableDurationMinutes,
		MinLeadHours:           s.config.MinLeadHours,
		MaxAdvanceDays:         s.config.MaxAdvanceDays,
		ClosedWeekday:          strings.ToLower(s.config.ClosedWeekday.String()),
		SlotGranularityMinutes: s.config.SlotGranularityMinutes,
		MaxPartySize:           s.config.MaxPartySize,
		OverflowPartySize:      domain.OverflowPartySize,
		Windows:                windows,
		BookableFrom:           today.Format(domain.DateFormat),
		BookableUntil:          today.AddDate(0, 0, s.config.MaxAdvanceDays).Format(domain.DateFormat),
	}
}
