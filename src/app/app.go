// Package app wires the storage, provider, and orchestration services
// together for the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/config"
	"github.com/autoreturn/autoreturn/src/executor"
	"github.com/autoreturn/autoreturn/src/llmclient"
	"github.com/autoreturn/autoreturn/src/returnsagent"
	"github.com/autoreturn/autoreturn/src/storage"
)

// App holds the initialized services shared by the commands.
type App struct {
	Provider aisdk.Provider
	Store    *storage.DB
	Config   *config.Config
	Logger   *slog.Logger
}

// New opens the store and builds the provider client from the effective
// configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	provider := llmclient.NewClient(llmclient.Config{
		APIKey:     cfg.API.APIKey,
		BaseURL:    cfg.API.BaseURL,
		Logger:     logger,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RetryCount: cfg.API.RetryCount,
	})

	return &App{
		Provider: provider,
		Store:    store,
		Config:   cfg,
		Logger:   logger,
	}, nil
}

// Model binds a client to the configured model.
func (a *App) Model(ctx context.Context) (aisdk.ModelClient, error) {
	if a.Config.API.APIKey == "" {
		return nil, llmclient.ErrNoAPIKey
	}
	return a.Provider.Model(ctx, a.Config.API.Model)
}

// TurnService builds the orchestration service over the app's store.
func (a *App) TurnService() *executor.Service {
	return executor.NewService(executor.ServiceConfig{
		Database:     a.Store.DB(),
		SystemPrompt: returnsagent.SystemPrompt(),
		MaxTurns:     a.Config.Chat.MaxTurns,
		Logger:       a.Logger,
	})
}

// ToolLatency returns the simulated backend delay per tool call.
func (a *App) ToolLatency() time.Duration {
	return time.Duration(a.Config.Chat.ToolLatencyMs) * time.Millisecond
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
