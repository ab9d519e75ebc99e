package domain

import "math"

// DefaultSyncDelta is the drift tolerance in seconds. A client whose local
// position is within this distance of the authoritative progress keeps
// playing uninterrupted; beyond it, it snaps to the authoritative position.
const DefaultSyncDelta = 0.5

// PlayEnded reports whether playback has effectively reached the end of the
// media, in which case a play action means restart rather than resume.
func PlayEnded(progress, duration float64, paused bool, syncDelta float64) bool {
	return paused && progress > duration-syncDelta
}

// NeedsCorrection reports whether a client's local position has drifted far
// enough from the authoritative progress to force a seek.
func NeedsCorrection(local, authoritative, syncDelta float64) bool {
	return math.Abs(local-authoritative) > syncDelta
}
