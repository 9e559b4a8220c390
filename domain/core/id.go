package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// InstanceID identifies one live distribution instance (parameters + target).
type InstanceID ID

// NewInstanceID creates a fresh instance identifier
func NewInstanceID() InstanceID {
	return InstanceID(NewID())
}

func (id InstanceID) String() string { return ID(id).String() }

// ParseInstanceID parses a string into InstanceID, rejecting anything that is not a UUID
func ParseInstanceID(s string) (InstanceID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("instance ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("instance ID %q is not a UUID: %w", s, err)
	}
	return InstanceID(s), nil
}

// Kind names a distribution family, e.g. "binomial" or "student_t".
type Kind string

func (k Kind) String() string { return string(k) }

// ParseKind normalizes user input into a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("distribution kind cannot be empty")
	}
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return Kind(s), nil
}
