package update_reservation_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, id int64, adminID string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, adminID, req)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func setupRouter(svc *mockService) http.Handler {
	r := mux.NewRouter()
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.AdminAuth)
	admin.HandleFunc("/reservations/{id}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)
	return r
}

func patch(h http.Handler, target, adminID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	if adminID != "" {
		req.Header.Set(middleware.AdminIDHeader, adminID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, int64(7), "admin-1", &models.UpdateStatusRequest{Status: "cancelled"}).
		Return(&models.ReservationResponse{ID: 7, Status: "cancelled"}, nil)

	w := patch(setupRouter(svc), "/api/v1/admin/reservations/7/status", "admin-1", `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		adminID string
		body    string
		err     error
		status  int
	}{
		{"no admin", "/api/v1/admin/reservations/7/status", "", `{"status":"cancelled"}`, nil, http.StatusUnauthorized},
		{"bad id", "/api/v1/admin/reservations/abc/status", "admin-1", `{"status":"cancelled"}`, nil, http.StatusBadRequest},
		{"bad body", "/api/v1/admin/reservations/7/status", "admin-1", `status=cancelled`, nil, http.StatusBadRequest},
		{"bad status", "/api/v1/admin/reservations/7/status", "admin-1", `{"status":"archived"}`, reservations.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", "/api/v1/admin/reservations/7/status", "admin-1", `{"status":"cancelled"}`, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"internal", "/api/v1/admin/reservations/7/status", "admin-1", `{"status":"cancelled"}`, reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := patch(setupRouter(svc), tt.target, tt.adminID, tt.body)

			assert.Equal(t, tt.status, w.Code)
			if tt.err == nil {
				svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
