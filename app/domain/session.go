package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the ephemeral projection of exactly one authenticated
// identity. At most one session exists per running process; the
// authentication service owns its creation and destruction.
type Session struct {
	UID         uuid.UUID    `json:"uid"`
	Role        Role         `json:"role"`
	DisplayName string       `json:"display_name"`
	Username    string       `json:"username,omitempty"`
	Email       string       `json:"email,omitempty"`
	OwnerID     *uuid.UUID   `json:"owner_id,omitempty"`
	BusinessID  *uuid.UUID   `json:"business_id,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	IssuedAt    time.Time    `json:"issued_at"`
}

// NewSessionFromIdentity builds a session snapshot from a stored record.
// The snapshot is denormalized at login/restore time; a restore always
// rebuilds it from the fresh record, never merges into a stale one.
func NewSessionFromIdentity(identity *Identity) (*Session, error) {
	if identity == nil {
		return nil, fmt.Errorf("identity is required")
	}
	if !identity.Role.Valid() || identity.Role == RoleAdministrator {
		return nil, fmt.Errorf("identity role %q cannot back a stored session", identity.Role)
	}

	return &Session{
		UID:         identity.ID,
		Role:        identity.Role,
		DisplayName: identity.DisplayName,
		Username:    identity.Username,
		Email:       identity.Email,
		OwnerID:     identity.OwnerID,
		BusinessID:  identity.BusinessID,
		Permissions: identity.Permissions,
		IssuedAt:    time.Now(),
	}, nil
}

// NewAdministratorSession synthesizes a session for an identity-provider
// login. The administrator role is derived, never stored.
func NewAdministratorSession(uid uuid.UUID, email, displayName string) *Session {
	return &Session{
		UID:         uid,
		Role:        RoleAdministrator,
		DisplayName: displayName,
		Email:       email,
		IssuedAt:    time.Now(),
	}
}

// HasPermission reports whether the session's identity carries the
// capability. Only manager sessions carry a permission set.
func (s *Session) HasPermission(p Permission) bool {
	if s.Role != RoleDelegatedManager {
		return false
	}
	for _, held := range s.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// PersistedSession is the single-slot record written to the session
// store: the identity's uid, its resolved role, and the full record as
// it looked at login time. Administrator sessions are never persisted.
type PersistedSession struct {
	UID  string    `json:"uid"`
	Role Role      `json:"role"`
	Data *Identity `json:"data"`
}

// NewPersistedSession builds the storable envelope for an identity.
func NewPersistedSession(identity *Identity) (*PersistedSession, error) {
	if identity == nil {
		return nil, fmt.Errorf("identity is required")
	}
	if identity.Role == RoleAdministrator {
		return nil, fmt.Errorf("administrator sessions are not persisted")
	}
	return &PersistedSession{
		UID:  identity.ID.String(),
		Role: identity.Role,
		Data: identity,
	}, nil
}

// IdentityID parses the persisted uid.
func (p *PersistedSession) IdentityID() (uuid.UUID, error) {
	id, err := uuid.Parse(p.UID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid persisted session uid: %w", err)
	}
	return id, nil
}
