package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"distviz/internal"
	"distviz/internal/render"
	"distviz/internal/sampling"
	uimw "distviz/ui/middleware"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// App serves the distribution pages
type App struct {
	router    *chi.Mux
	templates *template.Template
	config    Config
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port         string
	Format       render.Format
	Resolution   int
	DefaultWidth int
	APIBase      string // shown on pages for scripted access; empty hides it
}

// NewApp creates a new UI application
func NewApp(config Config) (*App, error) {
	if config.Format == "" {
		config.Format = render.PNG
	}
	if config.DefaultWidth <= 0 {
		config.DefaultWidth = 640
	}
	if config.Resolution <= 0 {
		config.Resolution = sampling.DefaultResolution
	}

	templates, err := template.New("").Funcs(funcMap()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		config:    config,
		logger:    internal.DefaultLogger,
	}

	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to open static files: %w", err)
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Route("/distributions/{kind}", func(r chi.Router) {
		r.Use(uimw.EnsureDistribution(a.logger))
		r.Get("/", a.handleDistribution)
		r.Get("/chart", a.handleChart)
	})
}

// Handler exposes the router for embedding in an http.Server
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled
func (a *App) Start(ctx context.Context) error {
	port := a.config.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting distviz UI server on :%s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
