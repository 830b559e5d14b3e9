package get_available_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability?date=2025-10-15&guests=4
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawDate := query.Get("date")
	rawGuests := query.Get("guests")

	useCaseReq, err := ToUseCaseRequest(rawDate, rawGuests, h.location)
	if err != nil {
		h.respondError(w, rawDate, rawGuests, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, rawDate, rawGuests, err)
		return
	}

	h.logger.Info("GET /availability - Slots retrieved: date=%s, guests=%d, lunch=%d, dinner=%d",
		rawDate, result.Guests, len(result.Lunch), len(result.Dinner))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, rawDate, rawGuests string, err error) {
	if rejection, ok := domain.AsRejection(err); ok {
		h.logger.Warn("GET /availability - Rejected: date=%q, guests=%q, code=%s", rawDate, rawGuests, rejection.Code)
		handlers.RespondRejection(w, rejection)
		return
	}

	h.logger.Error("GET /availability - Failed to get slots: date=%q, guests=%q, error=%v", rawDate, rawGuests, err)
	handlers.RespondInternalError(w)
}
