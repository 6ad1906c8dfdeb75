// File: cmd/server/providers.go
package main

import (
	"plusone_backend/internal/config"
	"plusone_backend/internal/connection"
	"plusone_backend/internal/jobs"
	"plusone_backend/internal/platform/database"
	"plusone_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDatabase opens the database and hands Wire the cleanup that closes
// it and flushes the logger on shutdown.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		logger.Info("Closing database connection")
		database.CloseGORMDB(db)
		_ = logger.Sync()
	}
	return db, cleanup, nil
}

// provideReconcileJob binds the configured schedule to the counter job.
func provideReconcileJob(
	users user.Repository,
	connections connection.ConnectionRepository,
	requests connection.RequestRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *jobs.CounterReconcileJob {
	return jobs.NewCounterReconcileJob(users, connections, requests, cfg.CounterReconcileSchedule, logger)
}
