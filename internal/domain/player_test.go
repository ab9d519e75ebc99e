package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayEnded(t *testing.T) {
	assert.True(t, PlayEnded(99.6, 100, true, DefaultSyncDelta))
	assert.False(t, PlayEnded(99.0, 100, true, DefaultSyncDelta))
	assert.False(t, PlayEnded(99.6, 100, false, DefaultSyncDelta))
	assert.False(t, PlayEnded(0, 100, true, DefaultSyncDelta))
}

func TestNeedsCorrection(t *testing.T) {
	assert.False(t, NeedsCorrection(10.0, 10.4, DefaultSyncDelta))
	assert.False(t, NeedsCorrection(10.4, 10.0, DefaultSyncDelta))
	assert.True(t, NeedsCorrection(10.0, 10.6, DefaultSyncDelta))
	assert.True(t, NeedsCorrection(12.0, 10.0, DefaultSyncDelta))
}
