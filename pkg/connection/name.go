// Package connection holds the client side of the secret-text connection
// dialog: name normalization, the snapshot name validator, the form and a
// small API client.
package connection

import (
	"errors"
	"regexp"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameInvalid  = errors.New("name may only contain letters, digits and underscores")
	ErrNameTaken    = errors.New("a connection with this name already exists")
)

var (
	validName   = regexp.MustCompile(`^[A-Za-z0-9_]*$`)
	invalidChar = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// NormalizeName derives a default connection name from a piece name by
// replacing every character outside [A-Za-z0-9_] with an underscore.
func NormalizeName(pieceName string) string {
	return invalidChar.ReplaceAllString(pieceName, "_")
}

func ValidName(name string) bool {
	return validName.MatchString(name)
}

// NameSnapshot is the set of connection names that existed when a form was
// opened. It never changes after construction and does no I/O.
type NameSnapshot struct {
	names map[string]struct{}
}

// NewNameSnapshot builds a snapshot from existing names. exclude is the name
// of the connection being edited, so it does not collide with itself.
func NewNameSnapshot(existing []string, exclude string) *NameSnapshot {
	names := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		if n == exclude {
			continue
		}
		names[n] = struct{}{}
	}
	return &NameSnapshot{names: names}
}

func (s *NameSnapshot) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Validate checks required, pattern and uniqueness in that order.
func (s *NameSnapshot) Validate(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if !ValidName(name) {
		return ErrNameInvalid
	}
	if s.Contains(name) {
		return ErrNameTaken
	}
	return nil
}
