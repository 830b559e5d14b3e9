package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

type reminderSender interface {
	Execute(ctx context.Context) (*send_reminders.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler раз в interval проверяет, пора ли отправить напоминания.
// Рассылка выполняется не чаще одного раза в сутки, после runAt по времени ресторана.
type Scheduler struct {
	reminders reminderSender
	interval  time.Duration
	runAt     types.TimeString
	location  *time.Location
	now       func() time.Time
	logger    Logger

	lastRun time.Time // дата последней успешной рассылки
}

func New(
	reminders reminderSender,
	interval time.Duration,
	runAt types.TimeString,
	location *time.Location,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		interval:  interval,
		runAt:     runAt,
		location:  location,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler: started, interval=%s, run_at=%s", s.interval, s.runAt)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now().In(s.location)
	today := domain.DateOnly(now)

	if !s.lastRun.IsZero() && !today.After(s.lastRun) {
		return
	}
	if types.NewTimeString(now).IsBefore(s.runAt) {
		return
	}

	resp, err := s.reminders.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: failed to send reminders: %v", err)
		return
	}

	s.lastRun = today
	s.logger.Info("Scheduler: reminders for %s sent=%d failed=%d",
		resp.Date.Format(domain.DateFormat), resp.Sent, resp.Failed)
}
