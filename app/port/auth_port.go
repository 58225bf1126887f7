package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"github.com/google/uuid"

	"tenant-auth-service/app/domain"
)

// AuthUsecase defines the caller-facing authentication surface.
type AuthUsecase interface {
	// Login flows
	LoginAsAdministrator(ctx context.Context, email, password string) (*domain.Session, error)
	LoginWithCredentials(ctx context.Context, username, password string) (*domain.Session, error)

	// Session bootstrap. RestoreSession returns (nil, nil) when no
	// session can be restored; restore failure is a normal condition
	// requiring a fresh login, never a hard error.
	RestoreSession(ctx context.Context) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentSession() *domain.Session

	// Provisioning. Returns the created identity and the generated
	// plaintext password, which is displayable exactly once.
	ProvisionDelegatedAccount(ctx context.Context, input domain.ProvisionInput) (*domain.Identity, string, error)

	// UpdateManagerStatus flips a delegated account's lifecycle status.
	// The flip takes effect on the account's next login or restore; it
	// does not tear down a session already running elsewhere.
	UpdateManagerStatus(ctx context.Context, id uuid.UUID, status domain.IdentityStatus) error

	// Authorization
	CheckAccess(spec domain.AccessSpec) domain.Decision
}

// UsernameAllocator generates a unique, human-readable handle for a new
// delegated account. The returned handle is a candidate only: the
// allocation loop is not transactional, and creation must fail on a
// duplicate rather than overwrite.
type UsernameAllocator interface {
	Allocate(ctx context.Context, baseName string) (string, error)
}

// SessionSource is the narrow read-only view of the current session,
// used by middleware that only needs to gate access.
type SessionSource interface {
	CurrentSession() *domain.Session
}
