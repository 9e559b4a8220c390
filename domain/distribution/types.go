package distribution

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"distviz/domain/core"
)

// Support distinguishes integer-valued (mass) from real-valued (density) models.
type Support int

const (
	Discrete Support = iota
	Continuous
)

func (s Support) String() string {
	if s == Discrete {
		return "discrete"
	}
	return "continuous"
}

// ParamKind is the declared type of a parameter.
type ParamKind int

const (
	Integer ParamKind = iota
	Real
)

func (k ParamKind) String() string {
	if k == Integer {
		return "integer"
	}
	return "real"
}

// Interval is the validity predicate of a parameter. Unbounded ends use ±Inf.
type Interval struct {
	Min     float64
	Max     float64
	MinOpen bool
	MaxOpen bool
}

// Positive is (0, ∞).
func Positive() Interval {
	return Interval{Min: 0, Max: math.Inf(1), MinOpen: true, MaxOpen: true}
}

// Between is the closed interval [min, max].
func Between(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// PositiveAtMost is (0, max].
func PositiveAtMost(max float64) Interval {
	return Interval{Min: 0, Max: max, MinOpen: true}
}

// OpenUnit is (0, 1).
func OpenUnit() Interval {
	return Interval{Min: 0, Max: 1, MinOpen: true, MaxOpen: true}
}

// AnyReal is (-∞, ∞).
func AnyReal() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1), MinOpen: true, MaxOpen: true}
}

// Contains reports whether v satisfies the interval.
func (iv Interval) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if v < iv.Min || (iv.MinOpen && v == iv.Min) {
		return false
	}
	if v > iv.Max || (iv.MaxOpen && v == iv.Max) {
		return false
	}
	return true
}

func (iv Interval) String() string {
	var b strings.Builder
	if iv.MinOpen {
		b.WriteByte('(')
	} else {
		b.WriteByte('[')
	}
	b.WriteString(formatBound(iv.Min))
	b.WriteString(", ")
	b.WriteString(formatBound(iv.Max))
	if iv.MaxOpen {
		b.WriteByte(')')
	} else {
		b.WriteByte(']')
	}
	return b.String()
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Slider carries the input range a host UI should offer for a parameter.
type Slider struct {
	Min  float64
	Max  float64
	Step float64
}

// Parameter is one named, typed input of a distribution.
type Parameter struct {
	Name      string // key used by the controller and the HTTP shell
	Symbol    string // display symbol, e.g. "λ"
	Label     string
	Kind      ParamKind
	Default   float64
	Valid     Interval
	Slider    Slider
	Precision int // decimals shown in legends; ignored for integers
}

// Parse converts raw user input into the parameter's declared type.
func (p Parameter) Parse(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if p.Kind == Integer {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return float64(n), nil
		}
		// Range inputs occasionally report "3.0" for integer steps.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, &ParseError{Param: p.Name, Raw: raw, Kind: p.Kind, Err: err}
		}
		return f, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Param: p.Name, Raw: raw, Kind: p.Kind, Err: err}
	}
	return f, nil
}

// Format renders a value the way legends show it.
func (p Parameter) Format(v float64) string {
	if p.Kind == Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	prec := p.Precision
	if prec <= 0 {
		prec = 2
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Bound is a cross-parameter rule: Param must stay ≤ AtMost. Bounds are
// applied in declaration order, which must be topological (a parameter is
// only used as AtMost after its own bounds have been applied).
type Bound struct {
	Param  string
	AtMost string
}

// Range is a closed interval on the x axis. For discrete models Min and Max
// are the inclusive integer ends of the displayed support.
type Range struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// Params maps parameter names to values. Integer parameters hold integral floats.
type Params map[string]float64

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int returns an integer parameter value.
func (p Params) Int(name string) int {
	return int(p[name])
}

// Spec is the immutable description of one distribution kind.
type Spec struct {
	Kind       core.Kind
	Name       string
	Summary    string
	Formula    string
	Moments    string
	Support    Support
	Parameters []Parameter
	Bounds     []Bound
	YMax       float64 // preferred upper end of the y axis
	Resolution int     // preferred continuous sample count
	// GridResolution is the preferred lattice size per axis of a joint surface.
	GridResolution int
	Color          string // series color, hex
}

// Parameter looks a parameter up by name.
func (s *Spec) Parameter(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Defaults returns a fresh parameter set holding every default.
func (s *Spec) Defaults() Params {
	out := make(Params, len(s.Parameters))
	for _, p := range s.Parameters {
		out[p.Name] = p.Default
	}
	return out
}

// Description renders the spec as markdown for host pages.
func (s *Spec) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Name, s.Summary)
	if s.Formula != "" {
		fmt.Fprintf(&b, "**%s:** `%s`\n\n", s.functionLabel(), s.Formula)
	}
	if s.Moments != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Moments)
	}
	b.WriteString("| Parameter | Type | Valid | Default |\n|---|---|---|---|\n")
	for _, p := range s.Parameters {
		fmt.Fprintf(&b, "| %s (%s) | %s | %s | %s |\n", p.Symbol, p.Label, p.Kind, p.Valid, p.Format(p.Default))
	}
	for _, bd := range s.Bounds {
		fmt.Fprintf(&b, "\n* %s ≤ %s", s.symbol(bd.Param), s.symbol(bd.AtMost))
	}
	return b.String()
}

func (s *Spec) functionLabel() string {
	if s.Support == Discrete {
		return "Probability Function"
	}
	return "Probability Density Function"
}

func (s *Spec) symbol(name string) string {
	if p, ok := s.Parameter(name); ok {
		return p.Symbol
	}
	return name
}
