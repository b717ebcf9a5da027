package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Guide validation errors.
var (
	ErrEmptyGuideID    = errors.New("guide id cannot be empty")
	ErrInvalidCapacity = errors.New("vehicle capacity must be positive")
	ErrBadRunKey       = errors.New("malformed run key")
)

// Guide is a read-only projection of one guide row on the board.
// Outsourced guides are special rows created to staff a run without an
// internal guide; they are excluded from capacity and exclusivity checks.
type Guide struct {
	ID         string
	Name       string
	Capacity   int
	Outsourced bool
	Contact    string
}

// Validate checks the guide projection.
func (g *Guide) Validate() error {
	if g.ID == "" {
		return ErrEmptyGuideID
	}
	if !g.Outsourced && g.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// RunKey builds the synthetic key of a tour run: tourID, start time and guide
// id joined with '@'. The empty guide id denotes the unassigned pool.
func RunKey(tourID, start, guideID string) string {
	return tourID + "@" + start + "@" + guideID
}

// ParseRunKey splits a run key back into its parts.
func ParseRunKey(key string) (tourID, start, guideID string, err error) {
	parts := strings.Split(key, "@")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrBadRunKey, key)
	}
	return parts[0], parts[1], parts[2], nil
}
