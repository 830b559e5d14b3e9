package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-RestaurantService/internal/config"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notification"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

// app общие зависимости всех команд
type app struct {
	cfg        *config.Config
	restaurant domain.RestaurantConfig
	log        *logger.Logger
}

func bootstrap(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewWithFormat(cfg.Logs.File, cfg.Logs.Level, cfg.Logs.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Секция уже проверена в config.Load
	restaurant, err := cfg.Restaurant.Domain()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("invalid restaurant config: %w", err)
	}

	log.Info("Configuration loaded from %s", configPath)
	return &app{cfg: cfg, restaurant: restaurant, log: log}, nil
}

func (a *app) openDB() (*sql.DB, error) {
	db, err := sql.Open("postgres", a.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(a.cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(a.cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(a.cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.DBName)
	return db, nil
}

func (a *app) newPublisher() (*notification.Publisher, error) {
	return notification.NewPublisher(notification.Config{
		URL:            a.cfg.RabbitMQ.URL,
		ConfirmedQueue: a.cfg.RabbitMQ.ConfirmedQueue,
		ReminderQueue:  a.cfg.RabbitMQ.ReminderQueue,
		RestaurantName: a.restaurant.Name,
	}, a.log)
}
