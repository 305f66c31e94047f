package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/autoreturn/autoreturn/src/storage"
)

// SeedCmd loads the demo catalog, the demo user, and their orders.
type SeedCmd struct{}

func (s *SeedCmd) Run(kctx *kong.Context, cli *CLI) error {
	ctx := context.Background()
	appInstance, logger, err := initApp(ctx, cli)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	if err := storage.Seed(ctx, appInstance.Store.DB()); err != nil {
		return err
	}
	logger.Info("demo data loaded", "user", storage.DemoUserID)
	fmt.Println("Demo data loaded.")
	return nil
}
