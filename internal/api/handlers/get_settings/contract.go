package get_settings

import "github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"

type SettingsService interface {
	Get() *models.SettingsResponse
}
