package admin_menu_items

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

type MenuService interface {
	ListItems(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error)
	CreateItem(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItemResponse, error)
	UpdateItem(ctx context.Context, id int64, req *models.MenuItemRequest) (*models.MenuItemResponse, error)
	ToggleItem(ctx context.Context, id int64) (*models.ToggleResponse, error)
	ReorderItems(ctx context.Context, req *models.ReorderRequest) error
	DeleteItem(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
