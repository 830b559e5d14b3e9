package get_menu

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/menu/models"
)

const (
	msgInvalidVegetarian = "параметр vegetarian должен быть true или false"
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

// Handle GET /api/v1/menu?category=starters&search=soup&vegetarian=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseFilter(r)
	if err != nil {
		h.logger.Warn("GET /menu - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVegetarian)
		return
	}

	menu, err := h.service.PublicMenu(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /menu - Failed to get menu: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /menu - Menu retrieved: %d items", len(menu.Items))
	handlers.RespondJSON(w, http.StatusOK, menu)
}

// ParseFilter читает фильтры меню из query параметров
func ParseFilter(r *http.Request) (*models.FilterRequest, error) {
	query := r.URL.Query()
	req := &models.FilterRequest{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	if raw := query.Get("vegetarian"); raw != "" {
		vegetarian, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.Vegetarian = vegetarian
	}

	return req, nil
}
