// Package testkit provides fixtures for distviz tests: reference
// distributions, random parameter generation and wired registries.
package testkit

import (
	"math/rand"
	"testing"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
	"distviz/internal/session"
)

// TestKit generates fixtures from a seeded source so failures replay
type TestKit struct {
	rng *rand.Rand
}

// NewTestKit creates a test kit seeded with seed
func NewTestKit(seed int64) *TestKit {
	return &TestKit{rng: rand.New(rand.NewSource(seed))}
}

// Validated builds a validated parameter set, failing t on rejection
func Validated(t testing.TB, kind core.Kind, p distribution.Params) distribution.Validated {
	t.Helper()
	m, err := distribution.Lookup(kind)
	if err != nil {
		t.Fatalf("lookup %s: %v", kind, err)
	}
	if p == nil {
		p = m.Spec().Defaults()
	}
	v, err := distribution.Validate(m, p)
	if err != nil {
		t.Fatalf("validate %s %v: %v", kind, p, err)
	}
	return v
}

// NewRegistry creates a registry that logs only errors
func NewRegistry(t testing.TB, opts session.Options) *session.Registry {
	t.Helper()
	r := session.NewRegistry(opts)
	r.SetLogger(internal.NewLogger(internal.LogLevelError))
	return r
}
