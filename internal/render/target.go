package render

import (
	"fmt"
	"strings"

	"distviz/domain/core"
)

// AspectRatio is height / width of every rendered frame.
const AspectRatio = 0.75

// MaxWidth is the widest container a target renders into.
const MaxWidth = 4096

// ErrRenderUnavailable is returned when the target has no usable container.
var ErrRenderUnavailable = core.ErrRenderUnavailable

// Format is the encoding of a frame.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType is the MIME type of frames in this format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Container is the host element a target is mounted in. A width of 0 means
// the container is detached or not laid out yet.
type Container interface {
	Width() int
}

// FixedWidth is a Container with a constant width, used by the CLI and by
// hosts that push resize signals.
type FixedWidth int

func (w FixedWidth) Width() int { return int(w) }

// Target is a drawing surface owned by exactly one distribution instance.
// It keeps only the last committed frame.
type Target struct {
	container Container
	format    Format
	width     int
	height    int
	frame     []byte
}

// NewTarget creates a target bound to c. c may be nil until attached.
func NewTarget(c Container, format Format) *Target {
	if format == "" {
		format = PNG
	}
	return &Target{container: c, format: format}
}

// Attach rebinds the target to another container.
func (t *Target) Attach(c Container) { t.container = c }

// Container returns the bound container, nil when detached.
func (t *Target) Container() Container { return t.container }

// Format returns the frame encoding.
func (t *Target) Format() Format { return t.format }

// Size returns the dimensions of the last render pass.
func (t *Target) Size() (width, height int) { return t.width, t.height }

// Frame returns a copy of the last committed frame, nil before the first render.
func (t *Target) Frame() []byte {
	if t.frame == nil {
		return nil
	}
	out := make([]byte, len(t.frame))
	copy(out, t.frame)
	return out
}

// resize reads the container width and sizes the surface to width × 0.75.
func (t *Target) resize() error {
	if t.container == nil {
		return fmt.Errorf("%w: no container attached", ErrRenderUnavailable)
	}
	w := t.container.Width()
	if w <= 0 {
		return fmt.Errorf("%w: container width is %d", ErrRenderUnavailable, w)
	}
	if w > MaxWidth {
		return fmt.Errorf("%w: container width %d exceeds %d", core.ErrRenderFailed, w, MaxWidth)
	}
	t.width = w
	t.height = int(float64(w) * AspectRatio)
	return nil
}

func (t *Target) commit(frame []byte) {
	t.frame = frame
}
