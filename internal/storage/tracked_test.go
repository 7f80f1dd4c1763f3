package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

func TestSetTrackedRejectsInvalidStatus(t *testing.T) {
	// status validation happens before any redis round trip
	err := SetTracked(nil, "someMarket", types.TrackedMarket{Status: "BOGUS"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{TRACKED_TRIGGER_ONLY, TRACKED_BOTH, PAUSE, NOT_TRACKED} {
		assert.True(t, validStatus(status), status)
	}
	assert.False(t, validStatus(""))
	assert.False(t, validStatus("tracked_both"))
}
