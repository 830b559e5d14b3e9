package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

var (
	// ErrNameRequired возвращается при пустом имени
	ErrNameRequired = errors.New("name is required")

	// ErrSlugRequired возвращается при пустом slug
	ErrSlugRequired = errors.New("slug is required")

	// ErrInvalidPrice возвращается при отрицательной цене
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrCategoryRequired возвращается, когда не указана категория блюда
	ErrCategoryRequired = errors.New("category is required")
)

// Request модели

// CategoryRequest создание или переименование категории
type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Normalize обрезает пробелы, приводит slug к нижнему регистру и проверяет обязательные поля
func (r *CategoryRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Slug == "" {
		return ErrSlugRequired
	}
	return nil
}

// MenuItemRequest создание или редактирование блюда
type MenuItemRequest struct {
	CategoryID  int64    `json:"categoryId"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Allergens   *string  `json:"allergens,omitempty"`
	DietaryTags []string `json:"dietaryTags,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"` // nil - доступно
	IsSpecial   bool     `json:"isSpecial"`
}

// ToDomainItem проверяет поля и конвертирует request в domain модель
func (r *MenuItemRequest) ToDomainItem() (*domain.MenuItem, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if r.CategoryID <= 0 {
		return nil, ErrCategoryRequired
	}
	if r.Price < 0 {
		return nil, ErrInvalidPrice
	}

	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return &domain.MenuItem{
		CategoryID:  r.CategoryID,
		Name:        name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Allergens:   r.Allergens,
		DietaryTags: domain.SplitTags(domain.JoinTags(r.DietaryTags)),
		IsAvailable: available,
		IsSpecial:   r.IsSpecial,
	}, nil
}

// FilterRequest фильтр меню. Category "all" или пустая строка - все категории
type FilterRequest struct {
	Category   string `json:"category,omitempty"`
	Search     string `json:"search,omitempty"`
	Vegetarian bool   `json:"vegetarian,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *FilterRequest) ToDomainFilter(onlyAvailable bool) domain.MenuFilter {
	filter := domain.MenuFilter{
		Vegetarian:    r.Vegetarian,
		OnlyAvailable: onlyAvailable,
	}

	if c := strings.ToLower(strings.TrimSpace(r.Category)); c != "" && c != "all" {
		filter.CategorySlug = &c
	}
	if s := strings.TrimSpace(r.Search); s != "" {
		filter.Search = &s
	}

	return filter
}

// ReorderRequest новый порядок блюд: позиция блюда равна его индексу в списке
type ReorderRequest struct {
	Items []int64 `json:"items"`
}

// Response модели

// CategoryResponse категория меню
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

// CategoryListResponse список категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// MenuItemResponse блюдо
type MenuItemResponse struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Allergens   *string   `json:"allergens,omitempty"`
	DietaryTags []string  `json:"dietaryTags"`
	IsAvailable bool      `json:"isAvailable"`
	IsSpecial   bool      `json:"isSpecial"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MenuItemListResponse список блюд
type MenuItemListResponse struct {
	Items []MenuItemResponse `json:"items"`
}

// ToggleResponse новое состояние доступности блюда
type ToggleResponse struct {
	ID          int64 `json:"id"`
	IsAvailable bool  `json:"isAvailable"`
}

// Методы конвертации

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Position: c.Position,
	}
}

// FromDomainCategoryList конвертирует список категорий в DTO
func FromDomainCategoryList(categories []*domain.Category) *CategoryListResponse {
	resp := &CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		if item := FromDomainCategory(c); item != nil {
			resp.Categories = append(resp.Categories, *item)
		}
	}
	return resp
}

// FromDomainItem конвертирует domain модель в DTO
func FromDomainItem(m *domain.MenuItem) *MenuItemResponse {
	if m == nil {
		return nil
	}

	tags := m.DietaryTags
	if tags == nil {
		tags = []string{}
	}

	return &MenuItemResponse{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Allergens:   m.Allergens,
		DietaryTags: tags,
		IsAvailable: m.IsAvailable,
		IsSpecial:   m.IsSpecial,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomainItemList конвертирует список блюд в DTO
func FromDomainItemList(items []*domain.MenuItem) *MenuItemListResponse {
	resp := &MenuItemListResponse{Items: make([]MenuItemResponse, 0, len(items))}
	for _, m := range items {
		if item := FromDomainItem(m); item != nil {
			resp.Items = append(resp.Items, *item)
		}
	}
	return resp
}
