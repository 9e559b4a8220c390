package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"distviz/internal"
	"distviz/internal/api"
	"distviz/internal/config"
	"distviz/internal/render"
	"distviz/internal/session"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Instances and their live updates
	Registry    *session.Registry
	SSEHub      *api.SSEHub
	Broadcaster *api.FrameBroadcaster

	// Export (nil when EXPORT_DIR is unset)
	FrameStore session.FrameStore

	Handler *api.Handler

	stopJanitor context.CancelFunc
	wg          sync.WaitGroup
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.DefaultLogger,
	}

	if err := c.initSessions(); err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}
	if err := c.initExport(); err != nil {
		return nil, fmt.Errorf("failed to initialize export store: %w", err)
	}
	c.Handler = api.NewHandler(c.Registry, c.FrameStore)

	c.Logger.Info("[Container] initialized: format=%s width=%d resolution=%d export=%t",
		cfg.Chart.Format, cfg.Chart.DefaultWidth, cfg.Chart.Resolution, c.FrameStore != nil)
	return c, nil
}

// initSessions wires the registry to the SSE hub
func (c *Container) initSessions() error {
	format, err := render.ParseFormat(c.Config.Chart.Format)
	if err != nil {
		return err
	}

	c.Registry = session.NewRegistry(session.Options{
		Format:       format,
		Resolution:   c.Config.Chart.Resolution,
		DefaultWidth: c.Config.Chart.DefaultWidth,
		MaxInstances: c.Config.Chart.MaxInstances,
	})
	c.Registry.SetLogger(c.Logger)

	c.SSEHub = api.NewSSEHub()
	c.Broadcaster = api.NewFrameBroadcaster(c.SSEHub)
	c.Registry.OnFrame(c.Broadcaster.Listen)
	return nil
}

// initExport opens the frame store and starts its cleanup loop
func (c *Container) initExport() error {
	if c.Config.Export.Dir == "" {
		return nil
	}
	store, err := session.NewLocalFrameStore(c.Config.Export.Dir)
	if err != nil {
		return err
	}
	c.FrameStore = store

	if c.Config.Export.MaxAge > 0 && c.Config.Export.Interval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.stopJanitor = cancel
		c.wg.Add(1)
		go c.runJanitor(ctx, store)
	}
	return nil
}

func (c *Container) runJanitor(ctx context.Context, store session.FrameStore) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.Config.Export.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.CleanupExpired(ctx, c.Config.Export.MaxAge); err != nil {
				c.Logger.Warn("[Container] export cleanup failed: %v", err)
			}
		}
	}
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.stopJanitor != nil {
		c.stopJanitor()
	}
	if c.SSEHub != nil {
		c.SSEHub.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
