package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/muhammadolammi/careerinsights/internal/archive"
	"github.com/muhammadolammi/careerinsights/internal/config"
	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/events"
	"github.com/muhammadolammi/careerinsights/internal/insights"
	"github.com/muhammadolammi/careerinsights/internal/logger"
	"github.com/muhammadolammi/careerinsights/internal/retry"
	"github.com/muhammadolammi/careerinsights/internal/scheduler"
)

// apiConfig holds the wired dependencies shared by every command.
type apiConfig struct {
	Config  *config.Config
	Log     *logger.Logger
	DB      *sql.DB
	Service *insights.Service
	Locker  scheduler.Locker
	closers []func() error
}

// newAPIConfig opens the database and the model and attaches the optional
// integrations that are configured.
func newAPIConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (*apiConfig, error) {
	a := &apiConfig{Config: cfg, Log: log, Locker: scheduler.NopLocker{}}

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging db: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	llm, err := insights.NewGeminiModel(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
	if err != nil {
		a.Close()
		return nil, err
	}
	generator := insights.NewRetryGenerator(
		insights.NewGeminiGenerator(llm),
		retry.Policy{Attempts: cfg.AIRetryAttempts, BaseDelay: cfg.AIRetryBaseDelay},
	)

	opts := []insights.Option{}

	if cfg.R2 != nil {
		archiver, err := archive.NewR2Archiver(ctx, cfg.R2.AccountID, cfg.R2.Bucket, cfg.R2.AccessKey, cfg.R2.SecretKey)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, insights.WithArchiver(archiver))
	} else {
		log.Info("R2 not configured, raw AI responses will only be logged")
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, publisher.Close)
		opts = append(opts, insights.WithPublisher(publisher))
	}

	if cfg.RedisURL != "" {
		rdb, err := scheduler.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		a.Locker = scheduler.NewRedisLocker(rdb)
	}

	a.Service = insights.NewService(database.New(db), generator, log, opts...)
	return a, nil
}

// Close releases connections in reverse order of opening.
func (a *apiConfig) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}
