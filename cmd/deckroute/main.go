// Command deckroute routes presentation strawmen to slide generation
// services.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/cli"
	"github.com/custodia-labs/deckroute/internal/app"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetSetup(func(configDir, dataDir string) (*cli.Services, func() error, error) {
		a, err := app.New(app.Config{ConfigDir: configDir, DataDir: dataDir})
		if err != nil {
			return nil, nil, err
		}
		return &cli.Services{
			Settings:   a.Settings,
			Runs:       a.Runs,
			Catalog:    a,
			NewRouter:  a.NewRouter,
			NewPlanner: a.NewPlanner,
		}, a.Close, nil
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
