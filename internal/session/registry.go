// Package session keeps the live distribution instances of the HTTP shell.
// Each instance serializes its own events behind a mutex; the pipeline
// underneath holds no locks.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
	"distviz/internal/controller"
	"distviz/internal/render"
	"distviz/internal/scheduler"
)

// FrameEvent announces a frame committed by one instance.
type FrameEvent struct {
	InstanceID core.InstanceID
	SessionID  string
	Kind       core.Kind
	Frame      scheduler.Frame
}

// FrameListener is told about every frame any instance commits. It runs
// while the instance is locked and must not block.
type FrameListener func(FrameEvent)

// Options configures new instances.
type Options struct {
	Format         render.Format
	Resolution     int
	GridResolution int
	DefaultWidth   int // initial container width; 0 leaves instances detached until resized
	MaxInstances   int // 0 means unlimited
}

// Registry holds instances keyed by ID.
type Registry struct {
	mu        sync.RWMutex
	instances map[core.InstanceID]*Instance
	opts      Options
	listeners []FrameListener
	logger    *internal.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Format == "" {
		opts.Format = render.PNG
	}
	return &Registry{
		instances: make(map[core.InstanceID]*Instance),
		opts:      opts,
		logger:    internal.DefaultLogger,
	}
}

// SetLogger replaces the logger.
func (r *Registry) SetLogger(l *internal.Logger) { r.logger = l }

// OnFrame registers fn for frames of every instance, present and future.
func (r *Registry) OnFrame(fn FrameListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Create builds an instance of kind in its own session.
func (r *Registry) Create(kind core.Kind) (*Instance, error) {
	return r.CreateInSession("", kind)
}

// CreateInSession builds an instance of kind with default parameters and
// renders its first frame when a default width is configured. An empty
// sessionID puts the instance in a session named after itself.
func (r *Registry) CreateInSession(sessionID string, kind core.Kind) (*Instance, error) {
	m, err := distribution.Lookup(kind)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.New(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	ctrl.SetLogger(r.logger)

	r.mu.Lock()
	if r.opts.MaxInstances > 0 && len(r.instances) >= r.opts.MaxInstances {
		r.mu.Unlock()
		return nil, fmt.Errorf("instance limit of %d reached", r.opts.MaxInstances)
	}
	id := core.NewInstanceID()
	if sessionID == "" {
		sessionID = id.String()
	}
	inst := &Instance{
		ID:         id,
		SessionID:  sessionID,
		Kind:       kind,
		CreatedAt:  time.Now(),
		resolution: r.opts.Resolution,
		container:  &container{width: r.opts.DefaultWidth},
		ctrl:       ctrl,
	}
	inst.target = render.NewTarget(inst.container, r.opts.Format)
	inst.sched = scheduler.New(ctrl, inst.target, scheduler.Options{Resolution: r.opts.Resolution, GridResolution: r.opts.GridResolution})
	inst.sched.SetLogger(r.logger)
	inst.sched.OnFrame(func(f scheduler.Frame) {
		r.broadcast(FrameEvent{InstanceID: inst.ID, SessionID: inst.SessionID, Kind: kind, Frame: f})
	})
	r.instances[inst.ID] = inst
	r.mu.Unlock()

	inst.mu.Lock()
	err = inst.sched.Recompute()
	inst.mu.Unlock()
	if err != nil {
		r.mu.Lock()
		delete(r.instances, inst.ID)
		r.mu.Unlock()
		return nil, err
	}
	r.logger.Info("[Session] created %s instance %s in session %s", kind, inst.ID, inst.SessionID)
	return inst, nil
}

// Get returns the instance with id.
func (r *Registry) Get(id core.InstanceID) (*Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrInstanceNotFound, id)
	}
	return inst, nil
}

// Delete drops an instance.
func (r *Registry) Delete(id core.InstanceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrInstanceNotFound, id)
	}
	delete(r.instances, id)
	r.logger.Info("[Session] deleted instance %s", id)
	return nil
}

// List snapshots every instance, oldest first.
func (r *Registry) List() []Snapshot {
	r.mu.RLock()
	all := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		all = append(all, inst)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	out := make([]Snapshot, len(all))
	for i, inst := range all {
		out[i] = inst.Snapshot()
	}
	return out
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

func (r *Registry) broadcast(ev FrameEvent) {
	r.mu.RLock()
	listeners := append([]FrameListener(nil), r.listeners...)
	r.mu.RUnlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
