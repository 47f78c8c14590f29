package util

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random id, falling back to the time-based variant
// when the random source fails.
func GenerateUUID() string {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return uuid.Must(uuid.NewUUID()).String()
	}
	return newUUID.String()
}
