package get_menu

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

type MenuService interface {
	PublicMenu(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
