package menu

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	CategoryExists(ctx context.Context, name, slug string, excludeID *int64) (bool, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	CountItemsInCategory(ctx context.Context, categoryID int64) (int, error)

	ListItems(ctx context.Context, filter domain.MenuFilter) ([]*domain.MenuItem, error)
	GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	ToggleItemAvailability(ctx context.Context, id int64) (bool, error)
	SetItemPosition(ctx context.Context, id int64, position int) error
	DeleteItem(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
