package project

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh project id. UUIDv7 keeps ids time-ordered, which
// makes hand-edited documents easier to scan.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}

	return id.String(), nil
}
