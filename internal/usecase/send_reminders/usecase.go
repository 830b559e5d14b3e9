package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// UseCase рассылает напоминания о завтрашних подтвержденных бронированиях.
// Запускается извне: командой remind по cron или встроенным планировщиком.
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// SelectReservationsNeedingReminder подтвержденные бронирования ровно на date
func SelectReservationsNeedingReminder(
	ctx context.Context,
	date time.Time,
	repo ReservationRepository,
) ([]*domain.Reservation, error) {
	reservations, err := repo.GetByDateAndStatus(ctx, date, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Date()
	selected := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		ry, rm, rd := r.Date.Date()
		if r.Status != domain.StatusConfirmed || ry != y || rm != m || rd != d {
			continue
		}
		selected = append(selected, r)
	}
	return selected, nil
}

// Execute отправляет напоминания на завтра. Ошибка одного напоминания не останавливает рассылку
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	tomorrow := domain.DateOnly(uc.timeProvider.Now().In(uc.location)).AddDate(0, 0, 1)
	uc.logger.Info("SendReminders: date=%s", tomorrow.Format(domain.DateFormat))

	reservations, err := SelectReservationsNeedingReminder(ctx, tomorrow, uc.reservationRepo)
	if err != nil {
		uc.logger.Error("SendReminders: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	resp := &Response{Date: tomorrow, Total: len(reservations)}

	for _, r := range reservations {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendReminders: interrupted after %d of %d: %v", resp.Sent+resp.Failed, resp.Total, err)
			return resp, err
		}

		if err := uc.notifier.PublishReservationReminder(ctx, r); err != nil {
			uc.logger.Error("SendReminders: failed to send reminder for reservation id=%d: %v", r.ID, err)
			resp.Failed++
			uc.observe(resultFailed)
			continue
		}

		resp.Sent++
		uc.observe(resultSent)
	}

	uc.logger.Info("SendReminders: date=%s, sent=%d, failed=%d",
		tomorrow.Format(domain.DateFormat), resp.Sent, resp.Failed)

	return resp, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReminder(result)
	}
}
