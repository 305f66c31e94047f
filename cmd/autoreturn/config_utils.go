package main

import (
	"context"
	"log/slog"

	"github.com/autoreturn/autoreturn/src/app"
	"github.com/autoreturn/autoreturn/src/config"
	"github.com/autoreturn/autoreturn/src/returnsagent/toolsutil"
)

// loadConfig builds the effective configuration and applies command-line
// overrides on top.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.NewLoader(cli.Config).Load()
	if err != nil {
		return nil, err
	}
	if cli.APIKey != "" {
		cfg.API.APIKey = cli.APIKey
	}
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}
	if cli.Model != "" {
		cfg.API.Model = cli.Model
	}
	if cli.Database != "" {
		cfg.Storage.DatabasePath = cli.Database
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	return cfg, nil
}

// initApp initializes the shared application services for a command.
func initApp(ctx context.Context, cli *CLI) (*app.App, *slog.Logger, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, nil, err
	}
	logger := createCLILogger(cfg)
	toolsutil.SetLogger(logger)

	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return appInstance, logger, nil
}
