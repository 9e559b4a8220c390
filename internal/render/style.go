package render

import (
	"distviz/domain/distribution"
)

// SeriesKind selects how a series is drawn.
type SeriesKind int

const (
	Bars SeriesKind = iota
	Line
)

const (
	captionFontSize       = 12.0
	narrowCaptionFontSize = 9.0

	// NarrowWidth is the container width at or below which captions shrink.
	NarrowWidth = 300

	// maxYStretch caps autoscaling at this multiple of the preferred y max.
	maxYStretch = 10.0
)

// Style is the per-distribution drawing descriptor.
type Style struct {
	Kind            SeriesKind
	Color           string // hex, with or without '#'
	CaptionFontSize float64
	YMax            float64 // preferred top of the y axis
}

// StyleFor derives the style of spec at the given container width.
func StyleFor(spec *distribution.Spec, width int) Style {
	s := Style{
		Kind:            Line,
		Color:           spec.Color,
		CaptionFontSize: captionFontSize,
		YMax:            spec.YMax,
	}
	if spec.Support == distribution.Discrete {
		s.Kind = Bars
	}
	if width > 0 && width <= NarrowWidth {
		s.CaptionFontSize = narrowCaptionFontSize
	}
	if s.YMax <= 0 {
		s.YMax = 1
	}
	return s
}

// yTop is the y-axis ceiling: the preferred maximum, stretched to fit the
// tallest finite point but never beyond maxYStretch times the preference.
func (s Style) yTop(maxY float64) float64 {
	top := s.YMax
	if maxY > top {
		top = maxY * 1.05
	}
	if limit := s.YMax * maxYStretch; top > limit {
		top = limit
	}
	return top
}
