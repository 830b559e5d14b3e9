package create_reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) LockDate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

func (m *mockRepo) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, date)
	reservations, _ := args.Get(0).([]*domain.Reservation)
	return reservations, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, reservation)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Reservation) *domain.Reservation); ok {
		return fn(ctx, reservation), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Reservation)
	return created, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Invalidate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ObserveReservation(outcome string) {
	m.Called(outcome)
}

func (m *mockMetrics) ObserveNotificationFailure(kind string) {
	m.Called(kind)
}

// fakeTxManager выполняет fn сразу и запоминает, что транзакция была
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var tuesday = time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC)

// conflictTx транзакция, коммит которой отклоняется postgres, пока commitErrs не кончатся
type conflictTx struct {
	db *conflictDB
}

func (t *conflictTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *conflictTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *conflictTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *conflictTx) Commit() error {
	if len(t.db.commitErrs) == 0 {
		t.db.commits++
		return nil
	}
	err := t.db.commitErrs[0]
	t.db.commitErrs = t.db.commitErrs[1:]
	return err
}

func (t *conflictTx) Rollback() error {
	return nil
}

type conflictDB struct {
	commitErrs []error
	begins     int
	commits    int
	opts       *sql.TxOptions
}

func (d *conflictDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begins++
	d.opts = opts
	return &conflictTx{db: d}, nil
}

func newUseCase(repo *mockRepo, tx TransactionManager, notifier Notifier, cache AvailabilityCache, metrics Metrics) *UseCase {
	uc := NewUseCase(repo, tx, notifier, cache, metrics, domain.DefaultRestaurantConfig(), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_CreatesConfirmedReservation(t *testing.T) {
	repo := &mockRepo{}
	tx := &fakeTxManager{}
	notifier := &mockNotifier{}
	cache := &mockCache{}
	metrics := &mockMetrics{}

	repo.On("LockDate", mock.Anything, tuesday).Return(nil).Once()
	repo.On("GetActiveByDate", mock.Anything, tuesday).
		Return([]*domain.Reservation{existingAt("2030-05-14", "19:00", 40)}, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.StatusConfirmed && r.Guests == 4 && r.StartTime == "19:30"
	})).Return(func(_ context.Context, r *domain.Reservation) *domain.Reservation {
		created := *r
		created.ID = 42
		return &created
	}, nil).Once()
	cache.On("Invalidate", mock.Anything, tuesday).Return(nil).Once()
	notifier.On("PublishReservationConfirmed", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.ID == 42
	})).Return(nil).Once()
	metrics.On("ObserveReservation", outcomeAccepted).Return().Once()

	uc := newUseCase(repo, tx, notifier, cache, metrics)
	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	notifier.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestUseCase_RejectsWithoutTouchingStorage(t *testing.T) {
	repo := &mockRepo{}
	tx := &fakeTxManager{}
	metrics := &mockMetrics{}
	metrics.On("ObserveReservation", string(domain.CodePartySizeTooLarge)).Return().Once()

	req := validRequest()
	req.Guests = domain.OverflowPartySize

	uc := newUseCase(repo, tx, nil, nil, metrics)
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrPartySizeTooLarge)
	assert.Equal(t, 0, tx.calls)
	repo.AssertNotCalled(t, "LockDate", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestUseCase_NoCapacityUnderLock(t *testing.T) {
	repo := &mockRepo{}
	tx := &fakeTxManager{}
	metrics := &mockMetrics{}

	repo.On("LockDate", mock.Anything, tuesday).Return(nil)
	repo.On("GetActiveByDate", mock.Anything, tuesday).
		Return([]*domain.Reservation{existingAt("2030-05-14", "18:00", 48)}, nil)
	metrics.On("ObserveReservation", string(domain.CodeNoCapacity)).Return().Once()

	uc := newUseCase(repo, tx, nil, nil, metrics)
	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrNoCapacity)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestUseCase_NotificationFailureKeepsReservation(t *testing.T) {
	repo := &mockRepo{}
	tx := &fakeTxManager{}
	notifier := &mockNotifier{}
	metrics := &mockMetrics{}

	repo.On("LockDate", mock.Anything, tuesday).Return(nil)
	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{
		ID: 7, Date: tuesday, StartTime: "19:30", Guests: 4, Status: domain.StatusConfirmed,
	}, nil)
	notifier.On("PublishReservationConfirmed", mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))
	metrics.On("ObserveReservation", outcomeAccepted).Return().Once()
	metrics.On("ObserveNotificationFailure", notificationKind).Return().Once()

	uc := newUseCase(repo, tx, notifier, nil, metrics)
	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	metrics.AssertExpectations(t)
}

func TestUseCase_StorageErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *mockRepo)
	}{
		{
			name: "lock",
			setup: func(repo *mockRepo) {
				repo.On("LockDate", mock.Anything, tuesday).Return(errors.New("deadlock"))
			},
		},
		{
			name: "read",
			setup: func(repo *mockRepo) {
				repo.On("LockDate", mock.Anything, tuesday).Return(nil)
				repo.On("GetActiveByDate", mock.Anything, tuesday).Return(nil, errors.New("timeout"))
			},
		},
		{
			name: "insert",
			setup: func(repo *mockRepo) {
				repo.On("LockDate", mock.Anything, tuesday).Return(nil)
				repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("constraint"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			tt.setup(repo)
			notifier := &mockNotifier{}

			uc := newUseCase(repo, &fakeTxManager{}, notifier, nil, nil)
			_, err := uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrInternal)
			notifier.AssertNotCalled(t, "PublishReservationConfirmed", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_SerializationConflictRereadsUnderLock(t *testing.T) {
	repo := &mockRepo{}
	metrics := &mockMetrics{}
	db := &conflictDB{commitErrs: []error{&pq.Error{Code: "40001"}}}

	// Первая попытка не видит параллельное бронирование, повтор видит его после коммита
	repo.On("LockDate", mock.Anything, tuesday).Return(nil).Twice()
	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil).Once()
	repo.On("GetActiveByDate", mock.Anything, tuesday).
		Return([]*domain.Reservation{existingAt("2030-05-14", "18:00", 48)}, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{
		ID: 9, Date: tuesday, StartTime: "19:30", Guests: 4, Status: domain.StatusConfirmed,
	}, nil).Once()
	metrics.On("ObserveReservation", string(domain.CodeNoCapacity)).Return().Once()

	uc := newUseCase(repo, txmanager.NewTransactionManager(db), nil, nil, metrics)
	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrNoCapacity)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, db.begins)
	assert.Equal(t, sql.LevelDefault, db.opts.Isolation)
	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestUseCase_PersistentConflictIsInternal(t *testing.T) {
	repo := &mockRepo{}
	conflict := &pq.Error{Code: "40001"}
	db := &conflictDB{commitErrs: []error{conflict, conflict, conflict}}

	repo.On("LockDate", mock.Anything, tuesday).Return(nil)
	repo.On("GetActiveByDate", mock.Anything, tuesday).Return([]*domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{
		ID: 9, Date: tuesday, StartTime: "19:30", Guests: 4, Status: domain.StatusConfirmed,
	}, nil)

	uc := newUseCase(repo, txmanager.NewTransactionManager(db), nil, nil, nil)
	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 3, db.begins)
	assert.Equal(t, 0, db.commits)
}
