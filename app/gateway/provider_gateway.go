package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
)

// ProviderGateway implements port.IdentityProvider over the low-level
// Kratos client. It is the anti-corruption layer between the usecases
// and the identity provider, and it holds the one session token the
// service tracks at a time.
type ProviderGateway struct {
	client port.KratosClient
	logger *slog.Logger

	mu    sync.Mutex
	token string
}

// NewProviderGateway creates a new ProviderGateway instance
func NewProviderGateway(client port.KratosClient, logger *slog.Logger) *ProviderGateway {
	return &ProviderGateway{
		client: client,
		logger: logger.With("component", "provider_gateway"),
	}
}

// SignIn authenticates against the provider and retains the session
// token for later liveness checks and sign-out.
func (g *ProviderGateway) SignIn(ctx context.Context, email, password string) (*domain.ProviderSession, error) {
	session, err := g.client.SignIn(ctx, email, password)
	if err != nil {
		g.logger.Warn("provider sign-in failed", "error", err)
		return nil, err
	}

	g.setToken(session.Token)
	g.logger.Info("provider sign-in succeeded", "identity_id", session.IdentityID)
	return session, nil
}

// SignUp registers a new provider identity and retains its session token.
func (g *ProviderGateway) SignUp(ctx context.Context, email, password, displayName string) (*domain.ProviderSession, error) {
	session, err := g.client.SignUp(ctx, email, password, displayName)
	if err != nil {
		g.logger.Error("provider sign-up failed", "error", err)
		return nil, err
	}

	g.setToken(session.Token)
	g.logger.Info("provider sign-up succeeded", "identity_id", session.IdentityID)
	return session, nil
}

// SignOut tears down the retained provider session. With no retained
// token there is nothing to do.
func (g *ProviderGateway) SignOut(ctx context.Context) error {
	token := g.takeToken()
	if token == "" {
		return nil
	}

	if err := g.client.SignOut(ctx, token); err != nil {
		return fmt.Errorf("provider sign-out: %w", err)
	}

	g.logger.Info("provider session torn down")
	return nil
}

// ActiveSession re-validates the retained token against the provider.
// A missing or dead token resolves to (nil, nil); the dead token is
// dropped so it is never probed again.
func (g *ProviderGateway) ActiveSession(ctx context.Context) (*domain.ProviderSession, error) {
	token := g.currentToken()
	if token == "" {
		return nil, nil
	}

	session, err := g.client.WhoAmI(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("provider session check: %w", err)
	}
	if session == nil || !session.IsActive() {
		g.setToken("")
		return nil, nil
	}

	return session, nil
}

// UpdateDisplayName writes the display name on the identity behind the
// retained session.
func (g *ProviderGateway) UpdateDisplayName(ctx context.Context, name string) error {
	session, err := g.ActiveSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNoSession
	}

	if err := g.client.UpdateDisplayName(ctx, session.IdentityID, name); err != nil {
		return fmt.Errorf("provider display name update: %w", err)
	}

	g.logger.Info("provider display name updated", "identity_id", session.IdentityID)
	return nil
}

func (g *ProviderGateway) setToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

func (g *ProviderGateway) currentToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

func (g *ProviderGateway) takeToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	token := g.token
	g.token = ""
	return token
}
