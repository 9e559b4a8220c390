package session

import (
	"fmt"
	"sync"
	"time"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal/controller"
	"distviz/internal/render"
	"distviz/internal/sampling"
	"distviz/internal/scheduler"
)

// container is the host element of one instance; its width arrives as a
// resize signal.
type container struct {
	width int
}

func (c *container) Width() int { return c.width }

// Instance is one live distribution visualizer.
type Instance struct {
	ID        core.InstanceID
	SessionID string
	Kind      core.Kind
	CreatedAt time.Time

	mu         sync.Mutex
	resolution int
	container  *container
	target     *render.Target
	ctrl       *controller.Controller
	sched      *scheduler.Scheduler
}

// Snapshot is a consistent, JSON-ready view of an instance.
type Snapshot struct {
	ID         core.InstanceID     `json:"id"`
	SessionID  string              `json:"session_id"`
	Kind       core.Kind           `json:"kind"`
	Name       string              `json:"name"`
	Params     distribution.Params `json:"params"`
	Width      int                 `json:"width"`
	State      string              `json:"state"`
	Frame      *scheduler.Frame    `json:"frame,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	ChartReady bool                `json:"chart_ready"`
}

// Snapshot reads the instance under its lock.
func (i *Instance) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.snapshot()
}

func (i *Instance) snapshot() Snapshot {
	s := Snapshot{
		ID:        i.ID,
		SessionID: i.SessionID,
		Kind:      i.Kind,
		Name:      i.ctrl.Model().Spec().Name,
		Params:    i.ctrl.Values(),
		Width:     i.container.width,
		State:     i.sched.State().String(),
		CreatedAt: i.CreatedAt,
	}
	if f, ok := i.sched.Frame(); ok {
		s.Frame = &f
		s.ChartReady = true
	}
	return s
}

// Set applies a raw parameter edit; the scheduler re-renders before it returns.
func (i *Instance) Set(name, raw string) (controller.Change, Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	change, err := i.ctrl.Set(name, raw)
	if err != nil {
		return controller.Change{}, Snapshot{}, err
	}
	return change, i.snapshot(), nil
}

// SetValue applies a numeric parameter edit.
func (i *Instance) SetValue(name string, v float64) (controller.Change, Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	change, err := i.ctrl.SetValue(name, v)
	if err != nil {
		return controller.Change{}, Snapshot{}, err
	}
	return change, i.snapshot(), nil
}

// Reset restores the defaults.
func (i *Instance) Reset() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ctrl.Reset()
	return i.snapshot()
}

// Resize delivers a container width and re-renders at the new size.
func (i *Instance) Resize(width int) (Snapshot, error) {
	if width < 0 || width > render.MaxWidth {
		return Snapshot{}, fmt.Errorf("%w: width must lie in [0, %d], got %d", core.ErrConstraint, render.MaxWidth, width)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.container.width = width
	if err := i.sched.Recompute(); err != nil {
		return Snapshot{}, err
	}
	return i.snapshot(), nil
}

// SetSurface toggles the joint heat map of joint models.
func (i *Instance) SetSurface(on bool) (Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.ctrl.Model().(distribution.JointModel); !ok && on {
		return Snapshot{}, fmt.Errorf("%w: %s has no joint surface", core.ErrConstraint, i.Kind)
	}
	if err := i.sched.SetSurface(on); err != nil {
		return Snapshot{}, err
	}
	return i.snapshot(), nil
}

// Chart returns the encoded current frame and its description.
func (i *Instance) Chart() ([]byte, render.Format, scheduler.Frame, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	f, ok := i.sched.Frame()
	if !ok {
		return nil, "", scheduler.Frame{}, fmt.Errorf("%w: instance %s has no width yet", core.ErrRenderUnavailable, i.ID)
	}
	return i.target.Frame(), i.target.Format(), f, nil
}

// Series samples the current parameters at the chart's resolution.
func (i *Instance) Series() (distribution.Validated, sampling.Series) {
	i.mu.Lock()
	defer i.mu.Unlock()
	v := i.ctrl.Validated()
	return v, sampling.Sample(v, i.resolution)
}
