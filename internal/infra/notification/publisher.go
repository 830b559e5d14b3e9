package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// Config очереди и подпись ресторана в сообщениях
type Config struct {
	URL            string
	ConfirmedQueue string
	ReminderQueue  string
	RestaurantName string
}

// Publisher публикует события бронирований в RabbitMQ.
// Сообщения постоянные (persistent), очереди durable, публикация через default exchange.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection // nil, если канал передан снаружи
	channel Channel
	cfg     Config
	now     func() time.Time
	logger  Logger
}

// NewPublisher подключается к брокеру и объявляет очереди
func NewPublisher(cfg Config, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisherWithChannel(ch, cfg, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	logger.Info("Notification: connected to broker, queues=%s,%s", cfg.ConfirmedQueue, cfg.ReminderQueue)
	return p, nil
}

// NewPublisherWithChannel создает издателя поверх готового канала
func NewPublisherWithChannel(ch Channel, cfg Config, logger Logger) (*Publisher, error) {
	for _, queue := range []string{cfg.ConfirmedQueue, cfg.ReminderQueue} {
		if _, err := ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDeclareQueue, queue, err)
		}
	}

	return &Publisher{
		channel: ch,
		cfg:     cfg,
		now:     time.Now,
		logger:  logger,
	}, nil
}

// PublishReservationConfirmed отправляет подтверждение бронирования
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, r *domain.Reservation) error {
	return p.publish(ctx, p.cfg.ConfirmedQueue, newEvent(EventReservationConfirmed, p.cfg.RestaurantName, r, p.now()))
}

// PublishReservationReminder отправляет напоминание о завтрашнем бронировании
func (p *Publisher) PublishReservationReminder(ctx context.Context, r *domain.Reservation) error {
	return p.publish(ctx, p.cfg.ReminderQueue, newEvent(EventReservationReminder, p.cfg.RestaurantName, r, p.now()))
}

func (p *Publisher) publish(ctx context.Context, queue string, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}

	// amqp.Channel не потокобезопасен для публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: %s reservation id=%d: %v", ErrPublish, event.Type, event.ReservationID, err)
	}

	p.logger.Info("Notification: published %s for reservation id=%d", event.Type, event.ReservationID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.logger.Error("Notification: failed to close channel: %v", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
