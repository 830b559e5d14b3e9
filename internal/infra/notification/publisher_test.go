package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name, durable)
	return amqp.Queue{Name: name}, ret.Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

var testConfig = Config{
	ConfirmedQueue: "reservation.confirmed",
	ReminderQueue:  "reservation.reminder",
	RestaurantName: "Le Lagon",
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              42,
		Date:            time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       "19:30",
		Guests:          4,
		Status:          domain.StatusConfirmed,
		FirstName:       "Marie",
		LastName:        "Dupont",
		Email:           "marie@example.com",
		Phone:           "+33600000000",
		SpecialRequests: ptr.Ptr("window seat"),
	}
}

func newTestPublisher(t *testing.T, ch *mockChannel) *Publisher {
	ch.On("QueueDeclare", testConfig.ConfirmedQueue, true).Return(nil).Once()
	ch.On("QueueDeclare", testConfig.ReminderQueue, true).Return(nil).Once()

	p, err := NewPublisherWithChannel(ch, testConfig, logger.NewNop())
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2030, 5, 13, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestPublisher_Confirmed(t *testing.T) {
	ch := &mockChannel{}
	p := newTestPublisher(t, ch)

	var sent amqp.Publishing
	ch.On("PublishWithContext", "", testConfig.ConfirmedQueue, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(amqp.Publishing) }).
		Return(nil).Once()

	err := p.PublishReservationConfirmed(context.Background(), testReservation())

	require.NoError(t, err)
	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)

	var event ReservationEvent
	require.NoError(t, json.Unmarshal(sent.Body, &event))
	assert.Equal(t, EventReservationConfirmed, event.Type)
	assert.Equal(t, int64(42), event.ReservationID)
	assert.Equal(t, "2030-05-14", event.Date)
	assert.Equal(t, "19:30", event.Time)
	assert.Equal(t, "Le Lagon", event.RestaurantName)
	assert.Equal(t, "window seat", *event.SpecialRequests)
	ch.AssertExpectations(t)
}

func TestPublisher_ReminderUsesReminderQueue(t *testing.T) {
	ch := &mockChannel{}
	p := newTestPublisher(t, ch)
	ch.On("PublishWithContext", "", testConfig.ReminderQueue, mock.Anything).Return(nil).Once()

	err := p.PublishReservationReminder(context.Background(), testReservation())

	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &mockChannel{}
	p := newTestPublisher(t, ch)
	ch.On("PublishWithContext", "", testConfig.ConfirmedQueue, mock.Anything).Return(errors.New("channel closed"))

	err := p.PublishReservationConfirmed(context.Background(), testReservation())

	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewPublisherWithChannel_DeclareError(t *testing.T) {
	ch := &mockChannel{}
	ch.On("QueueDeclare", testConfig.ConfirmedQueue, true).Return(errors.New("access refused"))

	_, err := NewPublisherWithChannel(ch, testConfig, logger.NewNop())

	assert.ErrorIs(t, err, ErrDeclareQueue)
}
