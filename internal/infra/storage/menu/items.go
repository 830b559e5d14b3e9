package menu

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

const itemsTable = "menu_items"

var itemColumns = []string{
	"mi.id",
	"mi.category_id",
	"mi.name",
	"mi.description",
	"mi.price",
	"mi.image_url",
	"mi.allergens",
	"mi.dietary_tags",
	"mi.is_available",
	"mi.is_special",
	"mi.position",
	"mi.created_at",
}

// ListItems возвращает позиции меню по фильтру в порядке отображения
func (r *Repository) ListItems(ctx context.Context, filter domain.MenuFilter) ([]*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(itemColumns...).
		From(itemsTable + " mi").
		OrderBy("mi.position ASC", "mi.id ASC")

	if filter.CategorySlug != nil {
		selectBuilder = selectBuilder.
			Join(categoriesTable + " c ON c.id = mi.category_id").
			Where(squirrel.Eq{"c.slug": *filter.CategorySlug})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"mi.name": "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"})
	}
	if filter.Vegetarian {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"mi.dietary_tags": "%" + domain.TagVegetarian + "%"})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mi.is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListItems - scan item: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// GetItemByID получает позицию меню по ID
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From(itemsTable + " mi").
		Where(squirrel.Eq{"mi.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - scan item: %v", ErrScanRow, err)
	}

	return item, nil
}

// CreateItem создает позицию меню в конце списка
func (r *Repository) CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(itemsTable).
		Columns(
			"category_id",
			"name",
			"description",
			"price",
			"image_url",
			"allergens",
			"dietary_tags",
			"is_available",
			"is_special",
			"position",
		).
		Values(
			item.CategoryID,
			item.Name,
			item.Description,
			item.Price,
			item.ImageURL,
			item.Allergens,
			domain.JoinTags(item.DietaryTags),
			item.IsAvailable,
			item.IsSpecial,
			squirrel.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM menu_items)"),
		).
		Suffix("RETURNING id, position, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateItem - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.Position, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateItem - execute insert: %v", ErrExecQuery, err)
	}
	item.CreatedAt = createdAt.Time

	return item, nil
}

// UpdateItem обновляет редактируемые поля позиции меню
func (r *Repository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(itemsTable).
		Set("category_id", item.CategoryID).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("image_url", item.ImageURL).
		Set("allergens", item.Allergens).
		Set("dietary_tags", domain.JoinTags(item.DietaryTags)).
		Set("is_available", item.IsAvailable).
		Set("is_special", item.IsSpecial).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateItem - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateItem", ErrItemNotFound)
}

// ToggleItemAvailability инвертирует доступность позиции и возвращает новое значение
func (r *Repository) ToggleItemAvailability(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(itemsTable).
		Set("is_available", squirrel.Expr("NOT is_available")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING is_available").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ToggleItemAvailability - build update query: %v", ErrBuildQuery, err)
	}

	var available bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&available)
	if err == sql.ErrNoRows {
		return false, ErrItemNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleItemAvailability - scan row: %v", ErrScanRow, err)
	}

	return available, nil
}

// SetItemPosition задает позицию в порядке отображения.
// Неизвестные ID пропускаются
func (r *Repository) SetItemPosition(ctx context.Context, id int64, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(itemsTable).
		Set("position", position).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetItemPosition - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetItemPosition - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteItem удаляет позицию меню
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(itemsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteItem - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "DeleteItem", ErrItemNotFound)
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		item      domain.MenuItem
		tags      sql.NullString
		createdAt sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&item.CategoryID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageURL,
		&item.Allergens,
		&tags,
		&item.IsAvailable,
		&item.IsSpecial,
		&item.Position,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	item.DietaryTags = domain.SplitTags(tags.String)
	item.CreatedAt = createdAt.Time

	return &item, nil
}
