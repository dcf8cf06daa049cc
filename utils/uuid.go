package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string, used for request ids
func GenerateID() string {
	return uuid.New().String()
}
