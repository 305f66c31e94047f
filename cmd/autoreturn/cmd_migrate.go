package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/autoreturn/autoreturn/src/config"
	"github.com/autoreturn/autoreturn/src/storage"
)

// MigrateCmd manages the database schema.
type MigrateCmd struct {
	Up     MigrateUpCmd     `cmd:"" help:"Apply pending migrations"`
	Status MigrateStatusCmd `cmd:"" help:"Show applied migration versions"`
}

// MigrateUpCmd applies pending migrations.
type MigrateUpCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

func (c *MigrateUpCmd) Run(kctx *kong.Context, cli *CLI) error {
	db, err := openMigrateDB(c.DBPath, cli)
	if err != nil {
		return err
	}
	defer db.Close()

	// Open applies pending migrations itself.
	fmt.Println("Database schema is up to date.")
	return nil
}

// MigrateStatusCmd lists applied migration versions.
type MigrateStatusCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

func (c *MigrateStatusCmd) Run(kctx *kong.Context, cli *CLI) error {
	db, err := openMigrateDB(c.DBPath, cli)
	if err != nil {
		return err
	}
	defer db.Close()

	var versions []int
	query := `SELECT version FROM schema_migrations ORDER BY version`
	if err := sqlscan.Select(context.Background(), db.DB(), &versions, query); err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	for _, v := range versions {
		fmt.Printf("applied: %d\n", v)
	}
	return nil
}

func openMigrateDB(dbPath string, cli *CLI) (*storage.DB, error) {
	if dbPath == "" {
		cfg, err := loadConfig(cli)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.Storage.DatabasePath
		if dbPath == "" {
			dbPath = config.DefaultDatabasePath()
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
