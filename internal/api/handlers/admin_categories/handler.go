package admin_categories

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

const (
	msgInvalidCategoryID  = "некорректный ID категории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "название и slug категории обязательны"
	msgNotFound           = "категория не найдена"
	msgAlreadyExists      = "категория с таким названием или slug уже существует"
	msgNotEmpty           = "в категории есть блюда, сначала удалите или перенесите их"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/categories", 0, err)
		return
	}

	h.logger.Info("POST /admin/categories - Category created: category_id=%d, slug=%s", category.ID, category.Slug)
	handlers.RespondJSON(w, http.StatusCreated, category)
}

// Update PUT /api/v1/admin/categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/categories/{id}", id, err)
		return
	}

	h.logger.Info("PUT /admin/categories/{id} - Category updated: category_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, category)
}

// Delete DELETE /api/v1/admin/categories/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/categories/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /admin/categories/{id} - Category deleted: category_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, menu.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, menu.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: category_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, menu.ErrCategoryExists):
		h.logger.Warn("%s - Category already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, menu.ErrCategoryNotEmpty):
		h.logger.Warn("%s - Category is not empty: category_id=%d", route, id)
		handlers.RespondConflict(w, msgNotEmpty)

	default:
		h.logger.Error("%s - Failed to process category: category_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
