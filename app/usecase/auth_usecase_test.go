package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"tenant-auth-service/app/domain"
	mock_port "tenant-auth-service/app/mocks"
	"tenant-auth-service/app/utils/security"
)

const testAdminDomain = "corp.example"

type usecaseMocks struct {
	creds     *mock_port.MockCredentialRepository
	sessions  *mock_port.MockSessionStore
	provider  *mock_port.MockIdentityProvider
	allocator *mock_port.MockUsernameAllocator
}

func newTestUseCase(t *testing.T) (*AuthUseCase, usecaseMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mocks := usecaseMocks{
		creds:     mock_port.NewMockCredentialRepository(ctrl),
		sessions:  mock_port.NewMockSessionStore(ctrl),
		provider:  mock_port.NewMockIdentityProvider(ctrl),
		allocator: mock_port.NewMockUsernameAllocator(ctrl),
	}

	uc := NewAuthUseCase(AuthUseCaseOptions{
		Credentials: mocks.creds,
		Sessions:    mocks.sessions,
		Provider:    mocks.provider,
		Allocator:   mocks.allocator,
		AdminDomain: testAdminDomain,
		BcryptCost:  bcrypt.MinCost,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return uc, mocks
}

func hashedOwner(t *testing.T, password string) *domain.Identity {
	t.Helper()
	hash, err := security.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	owner, err := domain.NewTenantOwner("John Doe", "johndoe", hash, "john@example.com")
	require.NoError(t, err)
	return owner
}

func hashedManager(t *testing.T, password string, permissions ...domain.Permission) *domain.Identity {
	t.Helper()
	hash, err := security.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	ownerID := uuid.New()
	manager, err := domain.NewDelegatedManager("Jane Smith", "janesmith", hash, "jane@example.com", ownerID, nil, permissions)
	require.NoError(t, err)
	return manager
}

func activeProviderSession(email, name string) *domain.ProviderSession {
	return &domain.ProviderSession{
		ID:          "sess-1",
		Token:       "token-1",
		IdentityID:  "identity-1",
		Email:       email,
		DisplayName: name,
		Active:      true,
	}
}

func TestLoginAsAdministrator(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects foreign domain before provider call", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		session, err := uc.LoginAsAdministrator(ctx, "alice@other.example", "secret")

		assert.ErrorIs(t, err, domain.ErrUnauthorizedDomain)
		assert.Nil(t, session)
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("domain match is case-insensitive", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		mocks.provider.EXPECT().
			SignIn(gomock.Any(), "Alice@CORP.example", "secret").
			Return(activeProviderSession("Alice@CORP.example", "Alice"), nil)

		session, err := uc.LoginAsAdministrator(ctx, "Alice@CORP.example", "secret")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdministrator, session.Role)
	})

	t.Run("successful login sets current session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		mocks.provider.EXPECT().
			SignIn(gomock.Any(), "alice@corp.example", "secret").
			Return(activeProviderSession("alice@corp.example", "Alice"), nil)

		session, err := uc.LoginAsAdministrator(ctx, "alice@corp.example", "secret")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdministrator, session.Role)
		assert.Equal(t, "Alice", session.DisplayName)
		assert.Same(t, session, uc.CurrentSession())
	})

	t.Run("same identity maps to a stable uid", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		mocks.provider.EXPECT().
			SignIn(gomock.Any(), "alice@corp.example", "secret").
			Return(activeProviderSession("alice@corp.example", "Alice"), nil).
			Times(2)

		first, err := uc.LoginAsAdministrator(ctx, "alice@corp.example", "secret")
		require.NoError(t, err)
		second, err := uc.LoginAsAdministrator(ctx, "alice@corp.example", "secret")
		require.NoError(t, err)

		assert.Equal(t, first.UID, second.UID)
	})

	t.Run("provider rejection maps to invalid credentials", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		mocks.provider.EXPECT().
			SignIn(gomock.Any(), "alice@corp.example", "wrong").
			Return(nil, domain.ErrInvalidCredentials)

		session, err := uc.LoginAsAdministrator(ctx, "alice@corp.example", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, session)
	})

	t.Run("unexpected provider failure propagates wrapped", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		mocks.provider.EXPECT().
			SignIn(gomock.Any(), "alice@corp.example", "secret").
			Return(nil, errors.New("connection refused"))

		_, err := uc.LoginAsAdministrator(ctx, "alice@corp.example", "secret")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLoginWithCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("owner login persists the session slot", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)
		mocks.sessions.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, persisted *domain.PersistedSession) error {
				assert.Equal(t, owner.ID.String(), persisted.UID)
				assert.Equal(t, domain.RoleTenantOwner, persisted.Role)
				return nil
			})

		session, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleTenantOwner, session.Role)
		assert.Equal(t, owner.ID, session.UID)
		assert.Same(t, session, uc.CurrentSession())
	})

	t.Run("manager login probes owners first", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		manager := hashedManager(t, "secret", domain.PermissionViewDashboard)

		gomock.InOrder(
			mocks.creds.EXPECT().
				FindByUsername(gomock.Any(), domain.CollectionOwners, "janesmith").
				Return(nil, domain.ErrIdentityNotFound),
			mocks.creds.EXPECT().
				FindByUsername(gomock.Any(), domain.CollectionManagers, "janesmith").
				Return(manager, nil),
		)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		session, err := uc.LoginWithCredentials(ctx, "janesmith", "secret")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleDelegatedManager, session.Role)
		assert.True(t, session.HasPermission(domain.PermissionViewDashboard))
	})

	t.Run("unknown username in both collections", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "nobody").
			Return(nil, domain.ErrIdentityNotFound)
		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionManagers, "nobody").
			Return(nil, domain.ErrIdentityNotFound)

		_, err := uc.LoginWithCredentials(ctx, "nobody", "secret")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)

		_, err := uc.LoginWithCredentials(ctx, "johndoe", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("inactive account with correct password", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")
		owner.Status = domain.IdentityStatusInactive

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)

		_, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")

		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})

	t.Run("inactive account with wrong password stays indistinguishable", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")
		owner.Status = domain.IdentityStatusInactive

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)

		_, err := uc.LoginWithCredentials(ctx, "johndoe", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("session store failure fails the login", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)
		mocks.sessions.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(domain.NewStoreError("session_save", errors.New("redis down")))

		_, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")

		require.Error(t, err)
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(nil, domain.NewStoreError("find", errors.New("db down")))

		_, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("unreadable slot resolves to no session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.sessions.EXPECT().
			Load(gomock.Any()).
			Return(nil, domain.NewStoreError("session_load", errors.New("corrupt")))
		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("persisted owner is re-fetched and re-validated", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		stale := hashedOwner(t, "secret")
		fresh := *stale
		fresh.DisplayName = "John Q. Doe"

		persisted, err := domain.NewPersistedSession(stale)
		require.NoError(t, err)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(persisted, nil)
		mocks.creds.EXPECT().
			FindByID(gomock.Any(), domain.CollectionOwners, stale.ID).
			Return(&fresh, nil)
		mocks.sessions.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, refreshed *domain.PersistedSession) error {
				assert.Equal(t, "John Q. Doe", refreshed.Data.DisplayName)
				return nil
			})

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "John Q. Doe", session.DisplayName)
		assert.Same(t, session, uc.CurrentSession())
	})

	t.Run("repeated restore resolves the same session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")
		persisted, err := domain.NewPersistedSession(owner)
		require.NoError(t, err)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(persisted, nil).Times(2)
		mocks.creds.EXPECT().
			FindByID(gomock.Any(), domain.CollectionOwners, owner.ID).
			Return(owner, nil).
			Times(2)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		first, err := uc.RestoreSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)
		second, err := uc.RestoreSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, second)

		assert.Equal(t, first.UID, second.UID)
		assert.Equal(t, first.Role, second.Role)
	})

	t.Run("deactivated identity clears the slot", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")
		persisted, err := domain.NewPersistedSession(owner)
		require.NoError(t, err)

		deactivated := *owner
		deactivated.Status = domain.IdentityStatusInactive

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(persisted, nil)
		mocks.creds.EXPECT().
			FindByID(gomock.Any(), domain.CollectionOwners, owner.ID).
			Return(&deactivated, nil)
		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("deleted identity clears the slot", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")
		persisted, err := domain.NewPersistedSession(owner)
		require.NoError(t, err)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(persisted, nil)
		mocks.creds.EXPECT().
			FindByID(gomock.Any(), domain.CollectionOwners, owner.ID).
			Return(nil, domain.ErrIdentityNotFound)
		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("empty slot falls back to an admin provider session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(nil, nil)
		mocks.provider.EXPECT().
			ActiveSession(gomock.Any()).
			Return(activeProviderSession("alice@corp.example", "Alice"), nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, domain.RoleAdministrator, session.Role)
	})

	t.Run("empty slot falls back to an owner provider session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(nil, nil)
		mocks.provider.EXPECT().
			ActiveSession(gomock.Any()).
			Return(activeProviderSession("john@example.com", "John Doe"), nil)
		mocks.creds.EXPECT().
			FindOwnerByEmail(gomock.Any(), "john@example.com").
			Return(owner, nil)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, domain.RoleTenantOwner, session.Role)
		assert.Equal(t, owner.ID, session.UID)
	})

	t.Run("no provider session means no session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(nil, nil)
		mocks.provider.EXPECT().ActiveSession(gomock.Any()).Return(nil, nil)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("provider session for unknown owner email", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.sessions.EXPECT().Load(gomock.Any()).Return(nil, nil)
		mocks.provider.EXPECT().
			ActiveSession(gomock.Any()).
			Return(activeProviderSession("ghost@example.com", "Ghost"), nil)
		mocks.creds.EXPECT().
			FindOwnerByEmail(gomock.Any(), "ghost@example.com").
			Return(nil, domain.ErrIdentityNotFound)

		session, err := uc.RestoreSession(ctx)

		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears slot and provider session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		_, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")
		require.NoError(t, err)

		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(nil)
		mocks.provider.EXPECT().SignOut(gomock.Any()).Return(nil)

		require.NoError(t, uc.Logout(ctx))
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("logging out twice is harmless", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		_, err := uc.LoginWithCredentials(ctx, "johndoe", "secret")
		require.NoError(t, err)

		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(nil).Times(2)
		mocks.provider.EXPECT().SignOut(gomock.Any()).Return(nil).Times(2)

		require.NoError(t, uc.Logout(ctx))
		require.NoError(t, uc.Logout(ctx))
		assert.Nil(t, uc.CurrentSession())
	})

	t.Run("cleanup failures do not fail the logout", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.sessions.EXPECT().Clear(gomock.Any()).Return(errors.New("redis down"))
		mocks.provider.EXPECT().SignOut(gomock.Any()).Return(errors.New("kratos down"))

		require.NoError(t, uc.Logout(ctx))
		assert.Nil(t, uc.CurrentSession())
	})
}

func TestProvisionDelegatedAccount(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	input := domain.ProvisionInput{
		DisplayName: "Jane Smith",
		Email:       "jane@example.com",
		OwnerID:     ownerID,
		Permissions: []domain.Permission{domain.PermissionViewDashboard},
	}

	t.Run("creates a manager with a derived initial password", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.allocator.EXPECT().
			Allocate(gomock.Any(), "Jane Smith").
			Return("janesmith", nil)
		mocks.creds.EXPECT().
			Create(gomock.Any(), domain.CollectionManagers, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Collection, identity *domain.Identity) error {
				assert.Equal(t, "janesmith", identity.Username)
				assert.Equal(t, domain.RoleDelegatedManager, identity.Role)
				require.NotNil(t, identity.OwnerID)
				assert.Equal(t, ownerID, *identity.OwnerID)
				return nil
			})

		identity, password, err := uc.ProvisionDelegatedAccount(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "janesmith123", password)
		assert.True(t, security.VerifyPassword(identity.PasswordHash, password))
		assert.NotEqual(t, password, identity.PasswordHash)
	})

	t.Run("allocation exhaustion propagates", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.allocator.EXPECT().
			Allocate(gomock.Any(), "Jane Smith").
			Return("", domain.ErrAllocationExhausted)

		_, _, err := uc.ProvisionDelegatedAccount(ctx, input)

		assert.ErrorIs(t, err, domain.ErrAllocationExhausted)
	})

	t.Run("duplicate username fails the create", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.allocator.EXPECT().
			Allocate(gomock.Any(), "Jane Smith").
			Return("janesmith", nil)
		mocks.creds.EXPECT().
			Create(gomock.Any(), domain.CollectionManagers, gomock.Any()).
			Return(domain.ErrUsernameTaken)

		_, _, err := uc.ProvisionDelegatedAccount(ctx, input)

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})
}

func TestUpdateManagerStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deactivates a manager", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.creds.EXPECT().
			UpdateStatus(gomock.Any(), domain.CollectionManagers, id, domain.IdentityStatusInactive).
			Return(nil)

		require.NoError(t, uc.UpdateManagerStatus(ctx, id, domain.IdentityStatusInactive))
	})

	t.Run("unknown status is rejected before the store call", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		err := uc.UpdateManagerStatus(ctx, id, domain.IdentityStatus("suspended"))

		assert.Error(t, err)
	})

	t.Run("missing identity propagates", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)

		mocks.creds.EXPECT().
			UpdateStatus(gomock.Any(), domain.CollectionManagers, id, domain.IdentityStatusActive).
			Return(domain.ErrIdentityNotFound)

		err := uc.UpdateManagerStatus(ctx, id, domain.IdentityStatusActive)

		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})
}

func TestCheckAccess(t *testing.T) {
	t.Run("no session denies toward login", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		decision := uc.CheckAccess(domain.AccessSpec{OwnerOnly: true})

		assert.False(t, decision.Allowed)
		assert.Equal(t, domain.RedirectLogin, decision.Redirect)
	})

	t.Run("gates on the current session", func(t *testing.T) {
		uc, mocks := newTestUseCase(t)
		owner := hashedOwner(t, "secret")

		mocks.creds.EXPECT().
			FindByUsername(gomock.Any(), domain.CollectionOwners, "johndoe").
			Return(owner, nil)
		mocks.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		_, err := uc.LoginWithCredentials(context.Background(), "johndoe", "secret")
		require.NoError(t, err)

		assert.True(t, uc.CheckAccess(domain.AccessSpec{OwnerOnly: true}).Allowed)
		denied := uc.CheckAccess(domain.AccessSpec{ManagerOnly: true})
		assert.False(t, denied.Allowed)
		assert.Equal(t, domain.RedirectOwnerHome, denied.Redirect)
	})
}
