// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, completion client) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
	"github.com/HIMANSHUIPE/HSClassification/internal/config"
	"github.com/HIMANSHUIPE/HSClassification/pkg/database"
	"github.com/HIMANSHUIPE/HSClassification/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and the outbound completion client.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Completion completion.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	client, err := completion.New(&cfg.Completion)
	if err != nil {
		return nil, fmt.Errorf("completion init failed: %w", err)
	}

	if cfg.Completion.Enabled() {
		logger.Info(
			"completion client initialized",
			"provider", cfg.Completion.Provider,
			"model", cfg.Completion.Model,
		)
	} else {
		logger.Warn("completion API key not set; classification disabled")
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Database:   db,
		Completion: client,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The database hook is registered for startup and shutdown coordination; the
// completion client is a stateless HTTP client and needs neither.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
