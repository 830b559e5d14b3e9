package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	menuRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/menu"
	menuService "github.com/m04kA/SMC-RestaurantService/internal/service/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

type seedItem struct {
	category string
	item     models.MenuItemRequest
}

var seedCategories = []models.CategoryRequest{
	{Name: "Entrées", Slug: "entrees"},
	{Name: "Plats", Slug: "plats"},
	{Name: "Desserts", Slug: "desserts"},
	{Name: "Boissons", Slug: "boissons"},
}

var seedItems = []seedItem{
	{"entrees", models.MenuItemRequest{
		Name:        "Accras de Morue",
		Description: ptr.Ptr("Beignets de morue croustillants, sauce chien maison."),
		Price:       12,
	}},
	{"entrees", models.MenuItemRequest{
		Name:        "Ceviche de Daurade",
		Description: ptr.Ptr("Daurade fraîche marinée au citron vert, lait de coco et piment doux."),
		Price:       16,
		IsSpecial:   true,
		DietaryTags: []string{"gluten-free"},
	}},
	{"plats", models.MenuItemRequest{
		Name:        "Langouste Grillée",
		Description: ptr.Ptr("Langouste entière grillée au beurre d'ail, riz créole."),
		Price:       45,
		IsSpecial:   true,
		DietaryTags: []string{"gluten-free"},
	}},
	{"plats", models.MenuItemRequest{
		Name:        "Colombo de Poulet",
		Description: ptr.Ptr("Poulet mijoté aux épices colombo, légumes pays."),
		Price:       18,
	}},
	{"plats", models.MenuItemRequest{
		Name:        "Veggie Curry",
		Description: ptr.Ptr("Légumes de saison au lait de coco et curry doux, quinoa."),
		Price:       16,
		DietaryTags: []string{"vegetarian", "vegan"},
	}},
	{"desserts", models.MenuItemRequest{
		Name:        "Blanc Manger Coco",
		Description: ptr.Ptr("Flan traditionnel au lait de coco, coulis de fruits rouges."),
		Price:       8,
		DietaryTags: []string{"vegetarian"},
	}},
}

// newSeedCmd заполняет пустую базу стартовым меню. Повторный запуск ничего не дублирует
func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Создать стартовые категории и блюда",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.log.Close()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			wrapped := dbmetrics.Wrap(db, nil)
			svc := menuService.NewService(menuRepo.NewRepository(wrapped), txmanager.NewTransactionManager(wrapped), a.log)

			created, err := seedMenu(cmd.Context(), svc)
			if err != nil {
				return err
			}

			a.log.Info("seed: created %d categories and %d items", created.categories, created.items)
			return nil
		},
	}
}

type seedMenuService interface {
	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error)
	ListItems(ctx context.Context, req *models.FilterRequest) (*models.MenuItemListResponse, error)
	CreateItem(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItemResponse, error)
}

type seedResult struct {
	categories int
	items      int
}

func seedMenu(ctx context.Context, svc seedMenuService) (seedResult, error) {
	var result seedResult

	for i := range seedCategories {
		req := seedCategories[i]
		if _, err := svc.CreateCategory(ctx, &req); err != nil {
			if errors.Is(err, menuService.ErrCategoryExists) {
				continue
			}
			return result, fmt.Errorf("seed category %s: %w", req.Slug, err)
		}
		result.categories++
	}

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		return result, fmt.Errorf("seed: list categories: %w", err)
	}
	categoryIDs := make(map[string]int64, len(categories.Categories))
	for _, c := range categories.Categories {
		categoryIDs[c.Slug] = c.ID
	}

	existing, err := svc.ListItems(ctx, &models.FilterRequest{})
	if err != nil {
		return result, fmt.Errorf("seed: list items: %w", err)
	}
	names := make(map[string]bool, len(existing.Items))
	for _, item := range existing.Items {
		names[item.Name] = true
	}

	for _, s := range seedItems {
		if names[s.item.Name] {
			continue
		}
		req := s.item
		req.CategoryID = categoryIDs[s.category]
		if _, err := svc.CreateItem(ctx, &req); err != nil {
			return result, fmt.Errorf("seed item %s: %w", req.Name, err)
		}
		result.items++
	}

	return result, nil
}
