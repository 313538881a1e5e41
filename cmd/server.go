package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"divtracker/internal/controller"
	"divtracker/internal/delivery/http"
	"divtracker/internal/repository"
	"divtracker/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the divtracker client daemon",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Schema first, so a fresh install boots without a manual migrate step.
	if err := runMigrations("up"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.client, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.client,
		appDep.notifier,
	)

	// A stored session lets the daemon resume without a fresh login.
	if restored, err := services.AuthService.RestoreSession(ctx); err != nil {
		appDep.log.Warn("Failed to restore session")
	} else if restored {
		appDep.log.Info("Session restored from local store")
	}

	watchlistController := controller.NewWatchlistController(appDep.log, services.WatchlistSync)
	watchlistController.Start(ctx)

	tickerController := controller.NewTickerSearchController(appDep.log, services.WatchlistSync, appDep.cache)

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.validator, services, watchlistController, tickerController)

	gateway := NewGatewayServer(ctx, appDep, httpHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gateway.Start(); err != nil && err != httpNet.ErrServerClosed {
			return err
		}
		return nil
	})

	if appDep.cfg.Scheduler.AutoRefreshEnabled {
		services.Scheduler.Start(ctx)
	}

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	<-gctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	services.Scheduler.Stop()
	watchlistController.Stop()

	if err := gateway.Stop(); err != nil {
		log.Fatalf("Failed to stop gateway: %v", err)
	}

	if err := g.Wait(); err != nil {
		appDep.log.Error("Gateway exited with error")
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
