package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) ListRecent(ctx context.Context, limit uint64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, id int64, upd domain.ReservationUpdate) (*domain.Reservation, error) {
	args := m.Called(ctx, id, upd)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockRepo) CountByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error) {
	args := m.Called(ctx, from, to)
	r, _ := args.Get(0).(map[string]int)
	return r, args.Error(1)
}

func (m *mockRepo) SumActiveGuestsByDate(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Invalidate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var (
	tuesday   = time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2030, 5, 15, 0, 0, 0, 0, time.UTC)
)

func newService(repo *mockRepo, cache AvailabilityCache) *Service {
	s := NewService(repo, cache, domain.DefaultRestaurantConfig(), logger.NewNop())
	s.timeProvider = fixedTime{now: time.Date(2030, 5, 14, 15, 0, 0, 0, time.UTC)}
	return s
}

func TestService_List_BuildsFilter(t *testing.T) {
	repo := &mockRepo{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
		return f.Status != nil && *f.Status == domain.StatusConfirmed &&
			f.Search != nil && *f.Search == "dup" &&
			f.Date != nil && f.Date.Equal(tuesday)
	})).Return([]*domain.Reservation{{ID: 1, Date: tuesday, StartTime: "19:30"}}, nil)

	resp, err := newService(repo, nil).List(context.Background(), &models.ListRequest{
		Status: "confirmed",
		Search: " dup ",
		Date:   "2030-05-14",
	})

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "2030-05-14", resp.Reservations[0].Date)
	assert.Equal(t, "19:30", resp.Reservations[0].Time)
}

func TestService_List_InvalidFilter(t *testing.T) {
	tests := []struct {
		name string
		req  models.ListRequest
	}{
		{"status", models.ListRequest{Status: "no_show"}},
		{"date", models.ListRequest{Date: "14/05/2030"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}

			_, err := newService(repo, nil).List(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := newService(repo, nil).GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}
	repo.On("UpdateStatus", mock.Anything, int64(3), domain.StatusCancelled).Return(nil)
	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Reservation{ID: 3, Date: tuesday, StartTime: "19:30", Status: domain.StatusCancelled}, nil)
	cache.On("Invalidate", mock.Anything, tuesday).Return(nil).Once()

	resp, err := newService(repo, cache).UpdateStatus(context.Background(), 3, "admin-1",
		&models.UpdateStatusRequest{Status: "Cancelled"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	cache.AssertExpectations(t)
}

func TestService_UpdateStatus_Invalid(t *testing.T) {
	repo := &mockRepo{}

	_, err := newService(repo, nil).UpdateStatus(context.Background(), 3, "admin-1",
		&models.UpdateStatusRequest{Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_NoRevalidation(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}

	// 60 гостей больше вместимости: правка администратора все равно применяется
	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Reservation{ID: 5, Date: tuesday, StartTime: "12:00", Guests: 2}, nil)
	repo.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(u domain.ReservationUpdate) bool {
		return u.Guests == 60 && u.StartTime == "23:15" && u.Date.Equal(wednesday) && *u.InternalNotes == "VIP"
	})).Return(&domain.Reservation{ID: 5, Date: wednesday, StartTime: "23:15", Guests: 60, Status: domain.StatusConfirmed}, nil)
	cache.On("Invalidate", mock.Anything, tuesday).Return(nil).Once()
	cache.On("Invalidate", mock.Anything, wednesday).Return(errors.New("redis down")).Once()

	notes := " VIP "
	resp, err := newService(repo, cache).Update(context.Background(), 5, "admin-1", &models.UpdateRequest{
		Date:          "2030-05-15",
		Time:          "23:15",
		Guests:        60,
		Status:        "confirmed",
		InternalNotes: &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.Guests)
	cache.AssertExpectations(t)
}

func TestService_Update_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateRequest
	}{
		{"date", models.UpdateRequest{Date: "2030-5-15", Time: "19:00", Guests: 2, Status: "confirmed"}},
		{"time", models.UpdateRequest{Date: "2030-05-15", Time: "7pm", Guests: 2, Status: "confirmed"}},
		{"guests", models.UpdateRequest{Date: "2030-05-15", Time: "19:00", Guests: 0, Status: "confirmed"}},
		{"status", models.UpdateRequest{Date: "2030-05-15", Time: "19:00", Guests: 2, Status: "gone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}

			_, err := newService(repo, nil).Update(context.Background(), 5, "admin-1", &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Dashboard(t *testing.T) {
	repo := &mockRepo{}
	from := time.Date(2030, 5, 8, 0, 0, 0, 0, time.UTC)
	repo.On("CountByDateRange", mock.Anything, from, tuesday).
		Return(map[string]int{"2030-05-10": 3, "2030-05-14": 4}, nil)
	repo.On("SumActiveGuestsByDate", mock.Anything, tuesday).Return(21, nil)
	repo.On("ListRecent", mock.Anything, uint64(recentLimit)).
		Return([]*domain.Reservation{{ID: 8, Date: tuesday, StartTime: "20:00"}}, nil)

	resp, err := newService(repo, nil).Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, resp.TodayReservations)
	assert.Equal(t, 21, resp.TodayGuests)
	assert.Equal(t, 42.0, resp.FillRate)
	require.Len(t, resp.LastSevenDays, 7)
	assert.Equal(t, models.DayCount{Date: "2030-05-08", Count: 0}, resp.LastSevenDays[0])
	assert.Equal(t, models.DayCount{Date: "2030-05-10", Count: 3}, resp.LastSevenDays[2])
	assert.Equal(t, models.DayCount{Date: "2030-05-14", Count: 4}, resp.LastSevenDays[6])
	require.Len(t, resp.Recent, 1)
}

func TestService_Dashboard_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("CountByDateRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := newService(repo, nil).Dashboard(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestFillRate(t *testing.T) {
	assert.Equal(t, 0.0, FillRate(0, 50))
	assert.Equal(t, 33.3, FillRate(1, 3))
	assert.Equal(t, 100.0, FillRate(50, 50))
	assert.Equal(t, 0.0, FillRate(10, 0))
}
