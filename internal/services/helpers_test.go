package services

import (
	"testing"

	"github.com/google/uuid"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}
