package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

const categoriesTable = "categories"

// Repository репозиторий меню: категории и позиции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListCategories возвращает все категории в порядке отображения
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "slug", "position").
		From(categoriesTable).
		OrderBy("position ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Position); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan category: %v", ErrScanRow, err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

// GetCategoryByID получает категорию по ID
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "slug", "position").
		From(categoriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Category
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Slug, &c.Position)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - scan category: %v", ErrScanRow, err)
	}

	return &c, nil
}

// CategoryExists проверяет, занято ли имя или slug другой категорией.
// excludeID исключает саму редактируемую категорию
func (r *Repository) CategoryExists(ctx context.Context, name, slug string, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From(categoriesTable).
		Where(squirrel.Or{
			squirrel.Eq{"name": name},
			squirrel.Eq{"slug": slug},
		}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CategoryExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CategoryExists - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// CreateCategory создает категорию в конце списка
func (r *Repository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(categoriesTable).
		Columns("name", "slug", "position").
		Values(
			category.Name,
			category.Slug,
			squirrel.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM categories)"),
		).
		Suffix("RETURNING id, position").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Position); err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - execute insert: %v", ErrExecQuery, err)
	}

	return category, nil
}

// UpdateCategory переименовывает категорию
func (r *Repository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(categoriesTable).
		Set("name", category.Name).
		Set("slug", category.Slug).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCategory - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateCategory", ErrCategoryNotFound)
}

// DeleteCategory удаляет категорию
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(categoriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCategory - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "DeleteCategory", ErrCategoryNotFound)
}

// CountItemsInCategory количество позиций меню в категории
func (r *Repository) CountItemsInCategory(ctx context.Context, categoryID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(itemsTable).
		Where(squirrel.Eq{"category_id": categoryID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountItemsInCategory - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountItemsInCategory - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) execAffectingOne(
	ctx context.Context,
	executor DBExecutor,
	query string,
	args []interface{},
	method string,
	notFound error,
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
