package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

func TestEventStorageSetRejectsUnknownKind(t *testing.T) {
	s := NewEventStorage(nil)

	err := s.Set(&types.EventEnvelope{Kind: "mystery"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
