package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"task-assistant/internal/delivery/http"
	"task-assistant/internal/repository"
	"task-assistant/internal/scriptrunner"
	"task-assistant/internal/service"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the task-assistant service",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.cache,
		appDep.senders,
		scriptrunner.NewSSHRunner(appDep.cfg, appDep.log),
	)
	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.validator, services)
	apiServer := NewHTTPServer(ctx, appDep, httpHandler)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		services.SchedulerService.Start(gCtx)
		<-gCtx.Done()
		return nil
	})

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	services.SchedulerService.Stop()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := g.Wait(); err != nil {
		appDep.log.Error("Service exited with error")
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
