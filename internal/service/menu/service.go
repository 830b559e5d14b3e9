package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	menuRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

// Service сервис меню: публичная витрина и управление из админки
type Service struct {
	menuRepo  MenuRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(menuRepo MenuRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		menuRepo:  menuRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListCategories список категорий в порядке отображения
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.menuRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCategoryList(categories), nil
}

// CreateCategory создает категорию. Имя и slug должны быть уникальны
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Info("CreateCategory: name=%s, slug=%s", req.Name, req.Slug)

	if err := s.ensureUniqueCategory(ctx, "CreateCategory", req, nil); err != nil {
		return nil, err
	}

	created, err := s.menuRepo.CreateCategory(ctx, &domain.Category{Name: req.Name, Slug: req.Slug})
	if err != nil {
		s.logger.Error("CreateCategory: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCategory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCategory: successfully created category id=%d", created.ID)
	return models.FromDomainCategory(created), nil
}

// UpdateCategory переименовывает категорию
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Info("UpdateCategory: id=%d, name=%s, slug=%s", id, req.Name, req.Slug)

	category, err := s.getCategory(ctx, "UpdateCategory", id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueCategory(ctx, "UpdateCategory", req, &id); err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = req.Slug
	if err := s.menuRepo.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, menuRepo.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("UpdateCategory: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateCategory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCategory(category), nil
}

// DeleteCategory удаляет пустую категорию
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCategory: id=%d", id)

	if _, err := s.getCategory(ctx, "DeleteCategory", id); err != nil {
		return err
	}

	count, err := s.menuRepo.CountItemsInCategory(ctx, id)
	if err != nil {
		s.logger.Error("DeleteCategory: failed to count items for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCategory - count items: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("DeleteCategory: category id=%d still has %d items", id, count)
		return ErrCategoryNotEmpty
	}

	if err := s.menuRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, menuRepo.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		s.logger.Error("DeleteCategory: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCategory - repository error: %v", ErrInternal, err)
	}

	return nil
}

// PublicMenu доступные блюда с фильтрами витрины
func (s *Service) PublicMenu(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error) {
	return s.listItems(ctx, "PublicMenu", req.ToDomainFilter(true))
}

// ListItems все блюда для админки, включая недоступные
func (s *Service) ListItems(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error) {
	return s.listItems(ctx, "ListItems", req.ToDomainFilter(false))
}

// CreateItem добавляет блюдо в конец меню
func (s *Service) CreateItem(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItemResponse, error) {
	item, err := req.ToDomainItem()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Info("CreateItem: name=%s, category=%d", item.Name, item.CategoryID)

	if _, err := s.getCategory(ctx, "CreateItem", item.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.menuRepo.CreateItem(ctx, item)
	if err != nil {
		s.logger.Error("CreateItem: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateItem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateItem: successfully created item id=%d", created.ID)
	return models.FromDomainItem(created), nil
}

// UpdateItem редактирует блюдо. Позиция в меню сохраняется
func (s *Service) UpdateItem(ctx context.Context, id int64, req *models.MenuItemRequest) (*models.MenuItemResponse, error) {
	item, err := req.ToDomainItem()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.logger.Info("UpdateItem: id=%d", id)

	existing, err := s.getItem(ctx, "UpdateItem", id)
	if err != nil {
		return nil, err
	}
	if _, err := s.getCategory(ctx, "UpdateItem", item.CategoryID); err != nil {
		return nil, err
	}

	item.ID = id
	item.Position = existing.Position
	item.CreatedAt = existing.CreatedAt

	if err := s.menuRepo.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("UpdateItem: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateItem - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainItem(item), nil
}

// ToggleItem переключает доступность блюда
func (s *Service) ToggleItem(ctx context.Context, id int64) (*models.ToggleResponse, error) {
	available, err := s.menuRepo.ToggleItemAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("ToggleItem: item id=%d not found", id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("ToggleItem: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleItem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ToggleItem: item id=%d available=%t", id, available)
	return &models.ToggleResponse{ID: id, IsAvailable: available}, nil
}

// ReorderItems задает порядок блюд одной транзакцией
func (s *Service) ReorderItems(ctx context.Context, req *models.ReorderRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items list is empty", ErrInvalidInput)
	}
	s.logger.Info("ReorderItems: %d items", len(req.Items))

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for position, id := range req.Items {
			if err := s.menuRepo.SetItemPosition(txCtx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReorderItems: repository error: %v", err)
		return fmt.Errorf("%w: ReorderItems - repository error: %v", ErrInternal, err)
	}

	return nil
}

// DeleteItem удаляет блюдо
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	s.logger.Info("DeleteItem: id=%d", id)

	if err := s.menuRepo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("DeleteItem: item id=%d not found", id)
			return ErrItemNotFound
		}
		s.logger.Error("DeleteItem: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteItem - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) listItems(ctx context.Context, method string, filter domain.MenuFilter) (*models.MenuItemListResponse, error) {
	items, err := s.menuRepo.ListItems(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return models.FromDomainItemList(items), nil
}

func (s *Service) ensureUniqueCategory(ctx context.Context, method string, req *models.CategoryRequest, excludeID *int64) error {
	exists, err := s.menuRepo.CategoryExists(ctx, req.Name, req.Slug, excludeID)
	if err != nil {
		s.logger.Error("%s: failed to check uniqueness: %v", method, err)
		return fmt.Errorf("%w: %s - check uniqueness: %v", ErrInternal, method, err)
	}
	if exists {
		s.logger.Warn("%s: name=%s or slug=%s already taken", method, req.Name, req.Slug)
		return ErrCategoryExists
	}
	return nil
}

func (s *Service) getCategory(ctx context.Context, method string, id int64) (*domain.Category, error) {
	category, err := s.menuRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrCategoryNotFound) {
			s.logger.Warn("%s: category id=%d not found", method, id)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("%s: repository error for category id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return category, nil
}

func (s *Service) getItem(ctx context.Context, method string, id int64) (*domain.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			s.logger.Warn("%s: item id=%d not found", method, id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("%s: repository error for item id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return item, nil
}
