package menu

import "errors"

var (
	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("category not found")

	// ErrItemNotFound возвращается, когда позиция меню не найдена
	ErrItemNotFound = errors.New("menu item not found")

	// ErrCategoryExists возвращается, когда имя или slug уже заняты
	ErrCategoryExists = errors.New("category with this name or slug already exists")

	// ErrCategoryNotEmpty возвращается при удалении категории, в которой есть блюда
	ErrCategoryNotEmpty = errors.New("category still has menu items")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
