package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"date": "2030-05-14",
	"time": "19:30",
	"guests": "4",
	"firstName": "Jean",
	"lastName": "Dupont",
	"email": "jean@example.com",
	"phone": "+33 6 12 34 56 78"
}`

func post(uc *mockUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Handle(w, req)
	return w
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.Date == "2030-05-14" && req.Time == "19:30" && req.Guests == "4" && req.SpecialRequests == nil
	})).Return(&createReservation.Response{
		ID:        42,
		Date:      time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("19:30"),
		Guests:    4,
		Status:    string(domain.StatusConfirmed),
		FirstName: "Jean",
		LastName:  "Dupont",
	}, nil)

	w := post(uc, validBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2030-05-14", resp.Date)
	assert.Equal(t, "19:30", resp.Time)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandler_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusUnprocessableEntity},
		{"too soon", domain.Reject(domain.CodeTooSoon, "book 2 hours ahead"), http.StatusUnprocessableEntity},
		{"party too large", domain.ErrPartySizeTooLarge, http.StatusUnprocessableEntity},
		{"no capacity", domain.ErrNoCapacity, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := post(uc, validBody)

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			rejection, _ := domain.AsRejection(tt.err)
			assert.Equal(t, string(rejection.Code), resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	for _, body := range []string{"", "{", `{"date": "2030-05-14", "tables": 2}`} {
		uc := &mockUseCase{}

		w := post(uc, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	}
}

func TestHandler_InternalError(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.Join(createReservation.ErrInternal, errors.New("connection reset")))

	w := post(uc, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
