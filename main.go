package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"distviz/internal"
	"distviz/internal/api"
	"distviz/internal/config"
	"distviz/internal/container"
	"distviz/internal/render"
	"distviz/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	internal.SetDefaultLevel(internal.ParseLogLevel(appConfig.Server.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	format, _ := render.ParseFormat(appConfig.Chart.Format)
	pages, err := ui.NewApp(ui.Config{
		Port:         appConfig.Server.Port,
		Format:       format,
		Resolution:   appConfig.Chart.Resolution,
		DefaultWidth: appConfig.Chart.DefaultWidth,
		APIBase:      "http://localhost:" + appConfig.Server.APIPort,
	})
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	apiServer := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           api.NewRouter(appContainer.Handler, appContainer.SSEHub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		internal.DefaultLogger.Info("Starting distviz API server on :%s", appConfig.Server.APIPort)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return pages.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return appContainer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("distviz stopped")
}
