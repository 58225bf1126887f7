package port

//go:generate mockgen -source=provider_port.go -destination=../mocks/mock_provider_port.go

import (
	"context"

	"tenant-auth-service/app/domain"
)

// IdentityProvider is the gateway interface over the external identity
// provider. It is consumed opaquely: sign-in, sign-up, sign-out, session
// liveness, and display-name updates, nothing more.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.ProviderSession, error)
	SignUp(ctx context.Context, email, password, displayName string) (*domain.ProviderSession, error)

	// SignOut tears down the provider session if one exists. It does not
	// fail when there is nothing to tear down.
	SignOut(ctx context.Context) error

	// ActiveSession returns the provider's current live session, or
	// (nil, nil) when none exists.
	ActiveSession(ctx context.Context) (*domain.ProviderSession, error)

	UpdateDisplayName(ctx context.Context, name string) error
}

// KratosClient is the low-level driver interface the provider gateway
// delegates to.
type KratosClient interface {
	SignIn(ctx context.Context, email, password string) (*domain.ProviderSession, error)
	SignUp(ctx context.Context, email, password, displayName string) (*domain.ProviderSession, error)
	SignOut(ctx context.Context, token string) error
	WhoAmI(ctx context.Context, token string) (*domain.ProviderSession, error)
	UpdateDisplayName(ctx context.Context, identityID, name string) error
}
