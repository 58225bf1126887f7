package port

//go:generate mockgen -source=credential_port.go -destination=../mocks/mock_credential_port.go

import (
	"context"

	"tenant-auth-service/app/domain"

	"github.com/google/uuid"
)

// CredentialRepository defines data access over the two stored-credential
// collections. No retries happen at this layer; storage failures come
// back wrapped as *domain.StoreError.
type CredentialRepository interface {
	// FindByUsername returns the identity with the given username, or
	// domain.ErrIdentityNotFound.
	FindByUsername(ctx context.Context, col domain.Collection, username string) (*domain.Identity, error)

	// FindByID returns the identity with the given id, or
	// domain.ErrIdentityNotFound.
	FindByID(ctx context.Context, col domain.Collection, id uuid.UUID) (*domain.Identity, error)

	// FindOwnerByEmail resolves an owner record by contact email, used
	// when falling back to identity-provider session liveness on restore.
	FindOwnerByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// ExistsByUsername probes a single collection for a username.
	ExistsByUsername(ctx context.Context, col domain.Collection, username string) (bool, error)

	// Create inserts a new identity. It fails with domain.ErrUsernameTaken
	// if the username was claimed between allocation and create; it never
	// silently overwrites.
	Create(ctx context.Context, col domain.Collection, identity *domain.Identity) error

	// UpdateStatus flips an identity's lifecycle status.
	UpdateStatus(ctx context.Context, col domain.Collection, id uuid.UUID, status domain.IdentityStatus) error
}
