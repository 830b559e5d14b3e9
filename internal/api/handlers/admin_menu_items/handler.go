package admin_menu_items

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

const (
	msgInvalidItemID      = "некорректный ID блюда"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVegetarian  = "параметр vegetarian должен быть true или false"
	msgInvalidInput       = "некорректные данные блюда: название, категория и неотрицательная цена обязательны"
	msgItemNotFound       = "блюдо не найдено"
	msgCategoryNotFound   = "категория не найдена"
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

// List GET /api/v1/admin/menu-items?category=mains&search=duck
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.FilterRequest{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if raw := query.Get("vegetarian"); raw != "" {
		vegetarian, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/menu-items - Invalid vegetarian flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidVegetarian)
			return
		}
		req.Vegetarian = vegetarian
	}

	items, err := h.service.ListItems(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/menu-items", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create POST /api/v1/admin/menu-items
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/menu-items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/menu-items", 0, err)
		return
	}

	h.logger.Info("POST /admin/menu-items - Item created: item_id=%d", item.ID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}

// Update PUT /api/v1/admin/menu-items/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /admin/menu-items/{id}")
	if !ok {
		return
	}

	var req models.MenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/menu-items/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/menu-items/{id}", id, err)
		return
	}

	h.logger.Info("PUT /admin/menu-items/{id} - Item updated: item_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, item)
}

// Toggle PATCH /api/v1/admin/menu-items/{id}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PATCH /admin/menu-items/{id}/toggle")
	if !ok {
		return
	}

	result, err := h.service.ToggleItem(r.Context(), id)
	if err != nil {
		h.respondError(w, "PATCH /admin/menu-items/{id}/toggle", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Reorder POST /api/v1/admin/menu-items/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/menu-items/reorder - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ReorderItems(r.Context(), &req); err != nil {
		h.respondError(w, "POST /admin/menu-items/reorder", 0, err)
		return
	}

	h.logger.Info("POST /admin/menu-items/reorder - Reordered %d items", len(req.Items))
	handlers.RespondNoContent(w)
}

// Delete DELETE /api/v1/admin/menu-items/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /admin/menu-items/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/menu-items/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /admin/menu-items/{id} - Item deleted: item_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid item ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, menu.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, menu.ErrItemNotFound):
		h.logger.Warn("%s - Item not found: item_id=%d", route, id)
		handlers.RespondNotFound(w, msgItemNotFound)

	case errors.Is(err, menu.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found", route)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	default:
		h.logger.Error("%s - Failed to process menu item: item_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
