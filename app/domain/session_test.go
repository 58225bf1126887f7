package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOwner(t *testing.T) *Identity {
	t.Helper()
	owner, err := NewTenantOwner("John Doe", "johndoe", "$2a$04$hashhashhashhashhashha", "john@example.com")
	require.NoError(t, err)
	return owner
}

func testManager(t *testing.T, permissions ...Permission) *Identity {
	t.Helper()
	ownerID := uuid.New()
	manager, err := NewDelegatedManager("Jane Smith", "janesmith", "$2a$04$hashhashhashhashhashha", "jane@example.com", ownerID, nil, permissions)
	require.NoError(t, err)
	return manager
}

func TestNewSessionFromIdentity(t *testing.T) {
	t.Run("owner snapshot", func(t *testing.T) {
		owner := testOwner(t)

		session, err := NewSessionFromIdentity(owner)

		require.NoError(t, err)
		assert.Equal(t, owner.ID, session.UID)
		assert.Equal(t, RoleTenantOwner, session.Role)
		assert.Equal(t, "John Doe", session.DisplayName)
		assert.Equal(t, "johndoe", session.Username)
		assert.False(t, session.IssuedAt.IsZero())
	})

	t.Run("manager snapshot carries ownership and permissions", func(t *testing.T) {
		manager := testManager(t, PermissionViewDashboard, PermissionViewSales)

		session, err := NewSessionFromIdentity(manager)

		require.NoError(t, err)
		assert.Equal(t, RoleDelegatedManager, session.Role)
		require.NotNil(t, session.OwnerID)
		assert.Equal(t, *manager.OwnerID, *session.OwnerID)
		assert.Equal(t, manager.Permissions, session.Permissions)
	})

	t.Run("nil identity", func(t *testing.T) {
		_, err := NewSessionFromIdentity(nil)
		assert.Error(t, err)
	})

	t.Run("administrator identity is rejected", func(t *testing.T) {
		admin := testOwner(t)
		admin.Role = RoleAdministrator

		_, err := NewSessionFromIdentity(admin)
		assert.Error(t, err)
	})
}

func TestNewAdministratorSession(t *testing.T) {
	uid := uuid.New()

	session := NewAdministratorSession(uid, "alice@corp.example", "Alice")

	assert.Equal(t, uid, session.UID)
	assert.Equal(t, RoleAdministrator, session.Role)
	assert.Equal(t, "alice@corp.example", session.Email)
	assert.Equal(t, "Alice", session.DisplayName)
	assert.Empty(t, session.Permissions)
}

func TestSession_HasPermission(t *testing.T) {
	t.Run("manager with the permission", func(t *testing.T) {
		session, err := NewSessionFromIdentity(testManager(t, PermissionEditInventory))
		require.NoError(t, err)

		assert.True(t, session.HasPermission(PermissionEditInventory))
		assert.False(t, session.HasPermission(PermissionIssueInvoices))
	})

	t.Run("non-manager roles never carry permissions", func(t *testing.T) {
		ownerSession, err := NewSessionFromIdentity(testOwner(t))
		require.NoError(t, err)
		assert.False(t, ownerSession.HasPermission(PermissionViewDashboard))

		adminSession := NewAdministratorSession(uuid.New(), "alice@corp.example", "Alice")
		assert.False(t, adminSession.HasPermission(PermissionViewDashboard))
	})
}

func TestNewPersistedSession(t *testing.T) {
	t.Run("owner envelope", func(t *testing.T) {
		owner := testOwner(t)

		persisted, err := NewPersistedSession(owner)

		require.NoError(t, err)
		assert.Equal(t, owner.ID.String(), persisted.UID)
		assert.Equal(t, RoleTenantOwner, persisted.Role)
		assert.Same(t, owner, persisted.Data)

		id, err := persisted.IdentityID()
		require.NoError(t, err)
		assert.Equal(t, owner.ID, id)
	})

	t.Run("administrator sessions are never persisted", func(t *testing.T) {
		admin := testOwner(t)
		admin.Role = RoleAdministrator

		_, err := NewPersistedSession(admin)
		assert.Error(t, err)
	})

	t.Run("corrupt uid fails to parse", func(t *testing.T) {
		persisted := &PersistedSession{UID: "not-a-uuid", Role: RoleTenantOwner}

		_, err := persisted.IdentityID()
		assert.Error(t, err)
	})
}
