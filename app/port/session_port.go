package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"

	"tenant-auth-service/app/domain"
)

// SessionStore persists at most one session record in a single
// overwrite-in-place slot. A new login simply overwrites the slot; no
// ordering guarantees are needed.
type SessionStore interface {
	Save(ctx context.Context, session *domain.PersistedSession) error

	// Load returns the persisted session, or (nil, nil) when the slot is
	// empty. Absence is not an error.
	Load(ctx context.Context) (*domain.PersistedSession, error)

	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}
