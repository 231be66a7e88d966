package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// VisibleIn reports whether a record scoped to scope (nil = global) is visible
// in the selected market.
func VisibleIn(scope *uuid.UUID, selected uuid.UUID) bool {
	return scope == nil || *scope == selected
}

// ScopesOverlap reports whether two market scopes can both apply to one market.
func ScopesOverlap(a, b *uuid.UUID) bool {
	return a == nil || b == nil || *a == *b
}

var (
	pinPattern      = regexp.MustCompile(`^[0-9]{4,6}$`)
	initialsPattern = regexp.MustCompile(`^\p{L}{2,4}$`)
)

// ValidatePIN checks the PIN format.
func ValidatePIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPIN
	}
	return nil
}

// NormalizeInitials trims and upper-cases initials and validates their format.
func NormalizeInitials(initials string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(initials))
	if !initialsPattern.MatchString(s) {
		return "", ErrInvalidInitials
	}
	return s, nil
}
