package protocol

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/diegok/pongish/internal/game"
)

// SnapshotVersion is bumped whenever game.Snapshot changes shape.
const SnapshotVersion = 1

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Envelope wraps a persisted scene.
type Envelope struct {
	Version   int
	SessionID uuid.UUID
	SavedAt   time.Time
	Scene     game.Snapshot
}

// NewEnvelope stamps snap with the current version and time.
func NewEnvelope(snap game.Snapshot, sessionID uuid.UUID) Envelope {
	return Envelope{
		Version:   SnapshotVersion,
		SessionID: sessionID,
		SavedAt:   time.Now().UTC(),
		Scene:     snap,
	}
}
