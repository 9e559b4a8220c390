package api

import (
	"time"

	"distviz/internal/session"
)

// FrameBroadcaster adapts the SSEHub to the session registry's frame listener
type FrameBroadcaster struct {
	sseHub *SSEHub
	now    func() time.Time
}

// NewFrameBroadcaster creates a new frame broadcaster
func NewFrameBroadcaster(sseHub *SSEHub) *FrameBroadcaster {
	return &FrameBroadcaster{sseHub: sseHub, now: time.Now}
}

// Listen is a session.FrameListener
func (fb *FrameBroadcaster) Listen(ev session.FrameEvent) {
	f := ev.Frame
	fb.sseHub.Broadcast(ChartEvent{
		SessionID:  ev.SessionID,
		EventType:  EventChartUpdated,
		InstanceID: ev.InstanceID.String(),
		Kind:       ev.Kind.String(),
		Data: map[string]interface{}{
			"caption":  f.Caption,
			"legend":   f.Legend,
			"mean":     f.Mean.String(),
			"variance": f.Variance.String(),
			"hash":     f.Hash.Short(),
			"sequence": f.Sequence,
			"width":    f.Width,
			"height":   f.Height,
		},
		Timestamp: fb.now(),
	})
}
