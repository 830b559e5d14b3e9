package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	sendRemindersUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
)

var errRabbitMQDisabled = errors.New("remind: rabbitmq is disabled, nowhere to send reminders")

// newRemindCmd разовая рассылка напоминаний на завтра (для запуска по cron).
// Повторный запуск отправит напоминания еще раз: расписание cron должно запускать команду раз в день
func newRemindCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Отправить напоминания о завтрашних бронированиях (каждый запуск отправляет заново)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.log.Close()

			if !a.cfg.RabbitMQ.Enabled {
				return errRabbitMQDisabled
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			publisher, err := a.newPublisher()
			if err != nil {
				return err
			}
			defer publisher.Close()

			useCase := sendRemindersUC.NewUseCase(
				reservationRepo.NewRepository(dbmetrics.Wrap(db, nil)),
				publisher,
				nil,
				a.restaurant.Location,
				a.log,
			)

			result, err := useCase.Execute(ctx)
			if err != nil {
				return err
			}

			a.log.Info("remind: date=%s, total=%d, sent=%d, failed=%d",
				result.Date.Format(domain.DateFormat), result.Total, result.Sent, result.Failed)
			return nil
		},
	}
}
