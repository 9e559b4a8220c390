// Package scheduler is the reactive glue between a parameter controller and
// a render target: every committed change is validated, sampled and rendered
// before the next one is accepted.
package scheduler

import (
	"errors"
	"fmt"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
	"distviz/internal/controller"
	"distviz/internal/render"
	"distviz/internal/sampling"
)

// State is the scheduler's position in its two-state cycle.
type State int

const (
	Idle State = iota
	Recomputing
)

func (s State) String() string {
	if s == Recomputing {
		return "recomputing"
	}
	return "idle"
}

// Frame describes the most recent successful render.
type Frame struct {
	Caption  string                 `json:"caption"`
	Legend   string                 `json:"legend"`
	Mean     distribution.Statistic `json:"mean"`
	Variance distribution.Statistic `json:"variance"`
	Points   int                    `json:"points"`
	Width    int                    `json:"width"`
	Height   int                    `json:"height"`
	Hash     core.Hash              `json:"hash"`
	Sequence uint64                 `json:"sequence"`
	Surface  bool                   `json:"surface,omitempty"`
}

// Options tunes a scheduler.
type Options struct {
	Resolution     int  // continuous sample count; 0 uses the model's preference
	GridResolution int  // joint lattice size per axis; 0 uses the model's preference
	Surface        bool // render the joint surface of joint models instead of the 1-D chart
}

// Scheduler owns one controller/target pair.
type Scheduler struct {
	ctrl     *controller.Controller
	target   *render.Target
	opts     Options
	state    State
	frame    Frame
	sequence uint64
	onFrame  []func(Frame)
	logger   *internal.Logger
}

// New wires s to ctrl so every committed change triggers a recompute.
func New(ctrl *controller.Controller, target *render.Target, opts Options) *Scheduler {
	s := &Scheduler{
		ctrl:   ctrl,
		target: target,
		opts:   opts,
		logger: internal.DefaultLogger,
	}
	ctrl.Subscribe(func(controller.Change) {
		if err := s.Recompute(); err != nil {
			s.logger.Error("[Scheduler] %s: recompute failed: %v", ctrl.Model().Spec().Kind, err)
		}
	})
	return s
}

// SetLogger replaces the logger.
func (s *Scheduler) SetLogger(l *internal.Logger) { s.logger = l }

// OnFrame registers fn for every newly committed frame.
func (s *Scheduler) OnFrame(fn func(Frame)) { s.onFrame = append(s.onFrame, fn) }

// State returns the current state.
func (s *Scheduler) State() State { return s.state }

// Frame returns the latest frame; ok is false before the first render.
func (s *Scheduler) Frame() (Frame, bool) { return s.frame, s.sequence > 0 }

// Target returns the owned render target.
func (s *Scheduler) Target() *render.Target { return s.target }

// SetSurface switches joint models between the 1-D chart and the surface.
func (s *Scheduler) SetSurface(on bool) error {
	s.opts.Surface = on
	return s.Recompute()
}

// Recompute runs validate → sample → render to completion. An unavailable
// container is not an error: the frame simply stays as it was.
func (s *Scheduler) Recompute() error {
	if s.state == Recomputing {
		panic("scheduler: Recompute re-entered while recomputing")
	}
	s.state = Recomputing
	defer func() { s.state = Idle }()

	m := s.ctrl.Model()
	v, err := distribution.Validate(m, s.ctrl.Values())
	if err != nil {
		return fmt.Errorf("controller state rejected: %w", err)
	}
	spec := m.Spec()
	p := v.Params()

	frame := Frame{
		Caption:  distribution.Caption(v),
		Legend:   distribution.Legend(spec, p),
		Mean:     m.Mean(p),
		Variance: m.Variance(p),
	}

	jm, joint := m.(distribution.JointModel)
	if joint && s.opts.Surface {
		grid, gerr := sampling.SampleGrid(v, s.opts.GridResolution)
		if gerr != nil {
			return gerr
		}
		frame.Caption = jm.JointCaption(p)
		frame.Points = len(grid.Xs) * len(grid.Ys)
		frame.Surface = true
		err = render.RenderSurface(s.target, grid, frame.Caption)
	} else {
		series := sampling.Sample(v, s.opts.Resolution)
		frame.Points = series.Len()
		err = render.Render(s.target, series, frame.Caption, frame.Legend, render.StyleFor(spec, s.containerWidth()))
	}
	if errors.Is(err, render.ErrRenderUnavailable) {
		s.logger.Debug("[Scheduler] %s: skipped render: %v", spec.Kind, err)
		return nil
	}
	if err != nil {
		return err
	}

	s.sequence++
	frame.Sequence = s.sequence
	frame.Width, frame.Height = s.target.Size()
	frame.Hash = core.NewHash(s.target.Frame())
	s.frame = frame
	s.logger.Trace("[Scheduler] %s: frame %d %s (%d points)", spec.Kind, frame.Sequence, frame.Hash.Short(), frame.Points)
	for _, fn := range s.onFrame {
		fn(frame)
	}
	return nil
}

// containerWidth is the width the caption font is chosen for.
func (s *Scheduler) containerWidth() int {
	if c := s.target.Container(); c != nil {
		return c.Width()
	}
	return 0
}
