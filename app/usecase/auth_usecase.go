package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
	"tenant-auth-service/app/utils/security"
)

// AuthUseCase implements the authentication, session and provisioning
// business logic. It exclusively owns the in-memory session slot: all
// other components only read the currently resolved session.
type AuthUseCase struct {
	creds       port.CredentialRepository
	sessions    port.SessionStore
	provider    port.IdentityProvider
	allocator   port.UsernameAllocator
	adminDomain string
	bcryptCost  int
	logger      *slog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// AuthUseCaseOptions groups the dependencies for NewAuthUseCase.
type AuthUseCaseOptions struct {
	Credentials port.CredentialRepository
	Sessions    port.SessionStore
	Provider    port.IdentityProvider
	Allocator   port.UsernameAllocator
	AdminDomain string
	BcryptCost  int
}

// NewAuthUseCase creates a new AuthUseCase instance.
func NewAuthUseCase(opts AuthUseCaseOptions, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		creds:       opts.Credentials,
		sessions:    opts.Sessions,
		provider:    opts.Provider,
		allocator:   opts.Allocator,
		adminDomain: strings.ToLower(opts.AdminDomain),
		bcryptCost:  opts.BcryptCost,
		logger:      logger.With("component", "auth_usecase"),
	}
}

// LoginAsAdministrator authenticates against the identity provider. The
// organizational domain check happens before any external call; the
// administrator role is derived from the domain, never stored. The
// resulting session is not persisted to the session store: administrator
// sessions are revalidated through the provider's own mechanism.
func (uc *AuthUseCase) LoginAsAdministrator(ctx context.Context, email, password string) (*domain.Session, error) {
	if !uc.isAdminDomain(email) {
		uc.logger.Warn("administrator login rejected before provider call", "email_domain", emailDomain(email))
		return nil, domain.ErrUnauthorizedDomain
	}

	providerSession, err := uc.provider.SignIn(ctx, email, password)
	if err != nil {
		uc.logger.Error("identity provider sign-in failed", "error", err)
		return nil, uc.normalizeProviderError(err)
	}

	session := uc.adminSessionFrom(providerSession)
	uc.setCurrent(session)

	uc.logger.Info("administrator login completed", "uid", session.UID)
	return session, nil
}

// LoginWithCredentials authenticates a stored-credential account. The
// owners collection is probed first, then managers; the order has no
// behavioral effect because usernames are unique across the union, but
// it stays fixed for determinism.
func (uc *AuthUseCase) LoginWithCredentials(ctx context.Context, username, password string) (*domain.Session, error) {
	identity, err := uc.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.VerifyPassword(identity.PasswordHash, password) {
		uc.logger.Warn("credential login failed", "collection", mustCollection(identity.Role))
		return nil, domain.ErrInvalidCredentials
	}

	if !identity.IsActive() {
		uc.logger.Warn("credential login rejected for inactive account", "uid", identity.ID)
		return nil, domain.ErrAccountInactive
	}

	session, err := domain.NewSessionFromIdentity(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to build session: %w", err)
	}

	persisted, err := domain.NewPersistedSession(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to build persisted session: %w", err)
	}
	if err := uc.sessions.Save(ctx, persisted); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	uc.setCurrent(session)

	uc.logger.Info("credential login completed", "uid", session.UID, "role", session.Role)
	return session, nil
}

// RestoreSession rebuilds the session on startup. A persisted slot wins:
// the underlying identity is re-fetched by id and re-validated, and the
// session is rebuilt from the fresh record. Any failure clears the stale
// slot and resolves to "no session" rather than an error. With no
// persisted slot, provider session liveness is checked as a fallback.
func (uc *AuthUseCase) RestoreSession(ctx context.Context) (*domain.Session, error) {
	persisted, err := uc.sessions.Load(ctx)
	if err != nil {
		uc.logger.Warn("session slot unreadable, requiring fresh login", "error", err)
		uc.clearStale(ctx)
		return nil, nil
	}

	if persisted != nil {
		return uc.restoreFromSlot(ctx, persisted), nil
	}

	return uc.restoreFromProvider(ctx), nil
}

func (uc *AuthUseCase) restoreFromSlot(ctx context.Context, persisted *domain.PersistedSession) *domain.Session {
	col, err := persisted.Role.Collection()
	if err != nil {
		uc.logger.Warn("persisted session carries unusable role, clearing", "role", persisted.Role)
		uc.clearStale(ctx)
		return nil
	}

	id, err := persisted.IdentityID()
	if err != nil {
		uc.logger.Warn("persisted session carries unusable uid, clearing", "uid", persisted.UID)
		uc.clearStale(ctx)
		return nil
	}

	fresh, err := uc.creds.FindByID(ctx, col, id)
	if err != nil {
		uc.logger.Warn("persisted identity could not be re-fetched, clearing", "uid", id, "error", err)
		uc.clearStale(ctx)
		return nil
	}

	if !fresh.IsActive() {
		uc.logger.Info("persisted identity is inactive, clearing", "uid", id)
		uc.clearStale(ctx)
		return nil
	}

	session, err := domain.NewSessionFromIdentity(fresh)
	if err != nil {
		uc.clearStale(ctx)
		return nil
	}

	// Keep the slot aligned with the fresh record so the next restore
	// sees updated profile fields.
	if refreshed, perr := domain.NewPersistedSession(fresh); perr == nil {
		if serr := uc.sessions.Save(ctx, refreshed); serr != nil {
			uc.logger.Warn("failed to refresh session slot", "error", serr)
		}
	}

	uc.setCurrent(session)
	uc.logger.Info("session restored from slot", "uid", session.UID, "role", session.Role)
	return session
}

func (uc *AuthUseCase) restoreFromProvider(ctx context.Context) *domain.Session {
	providerSession, err := uc.provider.ActiveSession(ctx)
	if err != nil {
		uc.logger.Warn("provider session liveness check failed", "error", err)
		return nil
	}
	if providerSession == nil || !providerSession.IsActive() {
		return nil
	}

	if uc.isAdminDomain(providerSession.Email) {
		session := uc.adminSessionFrom(providerSession)
		uc.setCurrent(session)
		uc.logger.Info("administrator session restored from provider", "uid", session.UID)
		return session
	}

	owner, err := uc.creds.FindOwnerByEmail(ctx, providerSession.Email)
	if err != nil || !owner.IsActive() {
		return nil
	}

	session, err := domain.NewSessionFromIdentity(owner)
	if err != nil {
		return nil
	}

	if persisted, perr := domain.NewPersistedSession(owner); perr == nil {
		if serr := uc.sessions.Save(ctx, persisted); serr != nil {
			uc.logger.Warn("failed to persist restored owner session", "error", serr)
		}
	}

	uc.setCurrent(session)
	uc.logger.Info("owner session restored via provider", "uid", session.UID)
	return session
}

// Logout clears the session slot and tears down the provider session if
// one exists. It is idempotent: logging out with no session is a no-op.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	uc.setCurrent(nil)

	if err := uc.sessions.Clear(ctx); err != nil {
		uc.logger.Warn("failed to clear session slot on logout", "error", err)
	}
	if err := uc.provider.SignOut(ctx); err != nil {
		uc.logger.Warn("failed to tear down provider session on logout", "error", err)
	}

	uc.logger.Info("logout completed")
	return nil
}

// CurrentSession returns the currently resolved session, or nil.
func (uc *AuthUseCase) CurrentSession() *domain.Session {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// CheckAccess gates an operation against the current session.
func (uc *AuthUseCase) CheckAccess(spec domain.AccessSpec) domain.Decision {
	return domain.CheckAccess(uc.CurrentSession(), spec)
}

// ProvisionDelegatedAccount allocates a handle, derives the initial
// password, and creates the manager record. The plaintext password is
// returned exactly once; only its hash is stored, so it is not
// recoverable afterward. A duplicate username sneaking in between
// allocation and create fails the create rather than overwriting.
func (uc *AuthUseCase) ProvisionDelegatedAccount(ctx context.Context, input domain.ProvisionInput) (*domain.Identity, string, error) {
	username, err := uc.allocator.Allocate(ctx, input.DisplayName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to allocate username: %w", err)
	}

	password := security.DeriveInitialPassword(username)
	hash, err := security.HashPassword(password, uc.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	identity, err := domain.NewDelegatedManager(
		input.DisplayName,
		username,
		hash,
		input.Email,
		input.OwnerID,
		input.BusinessID,
		input.Permissions,
	)
	if err != nil {
		return nil, "", fmt.Errorf("invalid manager account: %w", err)
	}

	if err := uc.creds.Create(ctx, domain.CollectionManagers, identity); err != nil {
		return nil, "", fmt.Errorf("failed to create manager account: %w", err)
	}

	uc.logger.Info("delegated account provisioned",
		"uid", identity.ID,
		"username", username,
		"owner_id", input.OwnerID)

	return identity, password, nil
}

// UpdateManagerStatus flips a delegated account's lifecycle status. The
// flip is opportunistic: an already-running session for that account is
// invalidated at its next restore, not immediately.
func (uc *AuthUseCase) UpdateManagerStatus(ctx context.Context, id uuid.UUID, status domain.IdentityStatus) error {
	if status != domain.IdentityStatusActive && status != domain.IdentityStatusInactive {
		return fmt.Errorf("unknown status: %q", status)
	}

	if err := uc.creds.UpdateStatus(ctx, domain.CollectionManagers, id, status); err != nil {
		return fmt.Errorf("failed to update manager status: %w", err)
	}

	uc.logger.Info("manager status updated", "uid", id, "status", status)
	return nil
}

// findByUsername probes owners first, then managers.
func (uc *AuthUseCase) findByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	for _, col := range domain.Collections() {
		identity, err := uc.creds.FindByUsername(ctx, col, username)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (uc *AuthUseCase) adminSessionFrom(providerSession *domain.ProviderSession) *domain.Session {
	uid := security.IdentityUUID(providerSession.IdentityID)
	return domain.NewAdministratorSession(uid, providerSession.Email, providerSession.DisplayName)
}

func (uc *AuthUseCase) isAdminDomain(email string) bool {
	return uc.adminDomain != "" && emailDomain(email) == uc.adminDomain
}

func (uc *AuthUseCase) setCurrent(session *domain.Session) {
	uc.mu.Lock()
	uc.current = session
	uc.mu.Unlock()
}

// clearStale empties both the in-memory session and the persisted slot.
func (uc *AuthUseCase) clearStale(ctx context.Context) {
	uc.setCurrent(nil)
	if err := uc.sessions.Clear(ctx); err != nil {
		uc.logger.Warn("failed to clear stale session slot", "error", err)
	}
}

// normalizeProviderError maps provider failures into the domain
// taxonomy; anything unrecognized propagates wrapped.
func (uc *AuthUseCase) normalizeProviderError(err error) error {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return domain.ErrInvalidCredentials
	}
	return fmt.Errorf("identity provider error: %w", err)
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// mustCollection is only used for logging on paths where the role is
// known to be stored.
func mustCollection(role domain.Role) domain.Collection {
	col, err := role.Collection()
	if err != nil {
		return ""
	}
	return col
}
