// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"plusone_backend/internal/app"
	"plusone_backend/internal/auth"
	"plusone_backend/internal/config"
	"plusone_backend/internal/connection"
	"plusone_backend/internal/notifier"
	"plusone_backend/internal/platform/elasticsearch"
	"plusone_backend/internal/platform/logger"
	"plusone_backend/internal/post"
	"plusone_backend/internal/profile"
	"plusone_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		logger.New,
		provideDatabase,
		elasticsearch.NewClient,

		// Users and discovery
		user.NewGORMRepository,
		user.NewSearchService,
		user.NewHandler,

		// Auth
		auth.NewTokenService,
		auth.NewService,
		auth.NewHandler,

		// Notifications
		notifier.NewEmailNotifier,
		wire.Bind(new(notifier.Notifier), new(*notifier.EmailNotifier)),

		// Connections
		connection.NewGORMRequestRepository,
		connection.NewGORMConnectionRepository,
		connection.NewService,
		connection.NewHandler,

		// Posts
		post.NewGORMRepository,
		post.NewService,
		post.NewHandler,

		// Profiles
		profile.NewService,
		profile.NewHandler,

		// Background jobs
		provideReconcileJob,

		// Application layer
		app.NewServer,
	)
	return nil, nil, nil
}
