package get_categories

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

type MenuService interface {
	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
