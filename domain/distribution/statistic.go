package distribution

import (
	"fmt"
	"math"
)

// StatKind classifies a summary statistic.
type StatKind int

const (
	StatFinite StatKind = iota
	StatInfinite
	StatUndefined
)

// Statistic is a mean or variance that may legitimately be infinite or
// undefined for some parameters. It never carries a NaN.
type Statistic struct {
	Value float64
	Kind  StatKind
}

// Finite wraps v, demoting NaN to Undefined and ±Inf to Infinite.
func Finite(v float64) Statistic {
	switch {
	case math.IsNaN(v):
		return Undefined()
	case math.IsInf(v, 0):
		return Infinite()
	}
	return Statistic{Value: v, Kind: StatFinite}
}

// Infinite is a statistic that diverges to +∞.
func Infinite() Statistic {
	return Statistic{Value: math.Inf(1), Kind: StatInfinite}
}

// Undefined is a statistic that does not exist for the parameters.
func Undefined() Statistic {
	return Statistic{Kind: StatUndefined}
}

// IsFinite reports whether the statistic carries a usable number.
func (s Statistic) IsFinite() bool { return s.Kind == StatFinite }

// String formats the statistic for captions: two decimals, "∞" or "undefined".
func (s Statistic) String() string {
	switch s.Kind {
	case StatInfinite:
		return "∞"
	case StatUndefined:
		return "undefined"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

// MarshalText lets JSON encoders emit the caption form.
func (s Statistic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
