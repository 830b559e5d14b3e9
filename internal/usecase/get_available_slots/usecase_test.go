package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, date)
	reservations, _ := args.Get(0).([]*domain.Reservation)
	return reservations, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, date time.Time, guests int) (*domain.DaySlots, int64, error) {
	args := m.Called(ctx, date, guests)
	slots, _ := args.Get(0).(*domain.DaySlots)
	generation, _ := args.Get(1).(int64)
	return slots, generation, args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, date time.Time, guests int, generation int64, slots *domain.DaySlots) (bool, error) {
	args := m.Called(ctx, date, guests, generation, slots)
	return args.Bool(0), args.Error(1)
}

// generationCache кеш в памяти с поколением на дату
type generationCache struct {
	generations map[string]int64
	entries     map[string]*domain.DaySlots
}

func newGenerationCache() *generationCache {
	return &generationCache{
		generations: make(map[string]int64),
		entries:     make(map[string]*domain.DaySlots),
	}
}

func (c *generationCache) key(date time.Time, guests int, generation int64) string {
	return fmt.Sprintf("%s/%d/%d", date.Format(domain.DateFormat), generation, guests)
}

func (c *generationCache) Get(_ context.Context, date time.Time, guests int) (*domain.DaySlots, int64, error) {
	generation := c.generations[date.Format(domain.DateFormat)]
	return c.entries[c.key(date, guests, generation)], generation, nil
}

func (c *generationCache) Set(_ context.Context, date time.Time, guests int, generation int64, slots *domain.DaySlots) (bool, error) {
	if c.generations[date.Format(domain.DateFormat)] != generation {
		return false, nil
	}
	c.entries[c.key(date, guests, generation)] = slots
	return true, nil
}

func (c *generationCache) Invalidate(_ context.Context, date time.Time) error {
	c.generations[date.Format(domain.DateFormat)]++
	return nil
}

// racingRepo отдает снимок бронирований, а параллельное бронирование коммитится
// и сбрасывает кеш сразу после первого чтения
type racingRepo struct {
	cache        *generationCache
	reservations []*domain.Reservation
	concurrent   *domain.Reservation
	reads        int
}

func (r *racingRepo) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	r.reads++
	snapshot := append([]*domain.Reservation(nil), r.reservations...)
	if r.concurrent != nil {
		r.reservations = append(r.reservations, r.concurrent)
		r.concurrent = nil
		if err := r.cache.Invalidate(ctx, date); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ObserveAvailability(source string) {
	m.Called(source)
}

func newUseCase(repo ReservationRepository, cache AvailabilityCache, metrics Metrics) *UseCase {
	return NewUseCase(repo, cache, metrics, domain.DefaultRestaurantConfig(), logger.NewNop())
}

func TestUseCase_ComputesAndCaches(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}
	metrics := &mockMetrics{}

	repo.On("GetActiveByDate", mock.Anything, tuesday).
		Return([]*domain.Reservation{reservation(tuesday, "19:00", 48)}, nil)
	cache.On("Get", mock.Anything, tuesday, 4).Return(nil, int64(3), nil)
	cache.On("Set", mock.Anything, tuesday, 4, int64(3), mock.AnythingOfType("*domain.DaySlots")).Return(true, nil)
	metrics.On("ObserveAvailability", sourceComputed).Return()

	uc := newUseCase(repo, cache, metrics)
	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(4)})

	require.NoError(t, err)
	assert.Len(t, resp.Lunch, 5)
	assert.Equal(t, ts("21:00", "21:30", "22:00"), resp.Dinner)
	assert.Equal(t, 4, resp.Guests)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestUseCase_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}
	metrics := &mockMetrics{}

	cached := &domain.DaySlots{Lunch: ts("12:00"), Dinner: ts()}
	cache.On("Get", mock.Anything, tuesday, 2).Return(cached, int64(0), nil)
	metrics.On("ObserveAvailability", sourceCache).Return()

	uc := newUseCase(repo, cache, metrics)
	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(2)})

	require.NoError(t, err)
	assert.Equal(t, ts("12:00"), resp.Lunch)
	repo.AssertNotCalled(t, "GetActiveByDate", mock.Anything, mock.Anything)
}

func TestUseCase_CacheFailuresAreIgnored(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}

	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)
	cache.On("Get", mock.Anything, tuesday, 2).Return(nil, int64(0), errors.New("redis down"))

	uc := newUseCase(repo, cache, nil)
	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(2)})

	require.NoError(t, err)
	assert.Len(t, resp.Dinner, 7)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_CacheWriteFailureIsIgnored(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}

	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)
	cache.On("Get", mock.Anything, tuesday, 2).Return(nil, int64(0), nil)
	cache.On("Set", mock.Anything, tuesday, 2, int64(0), mock.Anything).Return(false, errors.New("redis down"))

	uc := newUseCase(repo, cache, nil)
	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(2)})

	require.NoError(t, err)
	assert.Len(t, resp.Dinner, 7)
	cache.AssertExpectations(t)
}

func TestUseCase_InvalidationDuringComputationIsNotServed(t *testing.T) {
	cache := newGenerationCache()
	repo := &racingRepo{
		cache:      cache,
		concurrent: reservation(tuesday, "19:00", 50),
	}
	uc := newUseCase(repo, cache, nil)
	req := &Request{Date: tuesday, Party: domain.Party(3)}

	// Первый ответ рассчитан до параллельного бронирования
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, first.Dinner, 7)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ts("21:00", "21:30", "22:00"), second.Dinner)
	assert.Equal(t, 2, repo.reads)

	// Свежий результат закеширован под новым поколением
	third, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ts("21:00", "21:30", "22:00"), third.Dinner)
	assert.Equal(t, 2, repo.reads)
}

func TestUseCase_WithoutCache(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)

	uc := newUseCase(repo, nil, nil)
	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(2)})

	require.NoError(t, err)
	assert.Len(t, resp.Lunch, 5)
}

func TestUseCase_RejectsBeforeStorage(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		expected error
	}{
		{"closed day", &Request{Date: monday, Party: domain.Party(2)}, domain.ErrClosedDay},
		{"overflow party", &Request{Date: tuesday, Party: domain.OverflowParty()}, domain.ErrPartySizeTooLarge},
		{"zero guests", &Request{Date: tuesday, Party: domain.Party(0)}, domain.ErrInvalidFormat},
		{"missing date", &Request{Party: domain.Party(2)}, domain.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			metrics := &mockMetrics{}
			metrics.On("ObserveAvailability", sourceRejected).Return()

			uc := newUseCase(repo, nil, metrics)
			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.expected)
			repo.AssertNotCalled(t, "GetActiveByDate", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetActiveByDate", mock.Anything, tuesday).Return(nil, errors.New("connection refused"))

	uc := newUseCase(repo, nil, nil)
	_, err := uc.Execute(context.Background(), &Request{Date: tuesday, Party: domain.Party(2)})

	assert.ErrorIs(t, err, ErrInternal)
}
