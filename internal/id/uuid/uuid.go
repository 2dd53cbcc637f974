// Package uuid generates and validates request IDs.
package uuid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator creates time-ordered UUID v7 request IDs.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a UUID7 string.
func (Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid7: %w", err)
	}
	return id.String(), nil
}

// Normalize accepts a caller-supplied request ID when it is a well-formed,
// non-nil UUID and returns it in canonical lowercase form.
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	// uuid.Parse also accepts braced and urn forms; only the 36-char form is taken.
	if len(raw) != 36 {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return "", false
	}
	return id.String(), true
}
