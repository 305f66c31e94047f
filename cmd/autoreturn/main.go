package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the top-level command structure.
type CLI struct {
	APIKey   string `env:"AUTORETURN_API_KEY" help:"Model provider API key"`
	BaseURL  string `help:"Custom API base URL"`
	Model    string `short:"m" help:"Model to use"`
	Config   string `help:"Path to config file"`
	Database string `help:"Path to sqlite database"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`

	Chat    ChatCmd    `cmd:"" default:"1" help:"Start an interactive support session (default)"`
	Prompt  PromptCmd  `cmd:"" help:"Run a single support turn"`
	Seed    SeedCmd    `cmd:"" help:"Load the demo catalog, user, and orders"`
	Orders  OrdersCmd  `cmd:"" help:"List a user's orders"`
	Migrate MigrateCmd `cmd:"" help:"Database schema management"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("autoreturn"),
		kong.Description("AI-assisted returns desk for the AutoReturn storefront"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
