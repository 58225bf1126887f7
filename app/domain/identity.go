package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// IdentityStatus represents the lifecycle status of a stored identity
type IdentityStatus string

const (
	IdentityStatusActive   IdentityStatus = "active"
	IdentityStatusInactive IdentityStatus = "inactive"
)

// Permission is a capability string carried by delegated managers
type Permission string

const (
	PermissionViewDashboard   Permission = "view_dashboard"
	PermissionEditInventory   Permission = "edit_inventory"
	PermissionViewSales       Permission = "view_sales"
	PermissionManageEmployees Permission = "manage_employees"
	PermissionIssueInvoices   Permission = "issue_invoices"
)

// Identity is a stored account in one of the two credential collections.
// Administrators never appear here; their role is derived from the
// identity provider's email domain at login time.
type Identity struct {
	ID           uuid.UUID      `json:"id"`
	DisplayName  string         `json:"display_name"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"`
	Email        string         `json:"email"`
	Role         Role           `json:"role"`
	Status       IdentityStatus `json:"status"`
	OwnerID      *uuid.UUID     `json:"owner_id,omitempty"`
	BusinessID   *uuid.UUID     `json:"business_id,omitempty"`
	Permissions  []Permission   `json:"permissions,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewTenantOwner creates an owner record with validation.
func NewTenantOwner(displayName, username, passwordHash, email string) (*Identity, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", err)
		}
	}

	now := time.Now()
	return &Identity{
		ID:           uuid.New(),
		DisplayName:  displayName,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         RoleTenantOwner,
		Status:       IdentityStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewDelegatedManager creates a manager record bound to one owner and one
// business, with validation.
func NewDelegatedManager(displayName, username, passwordHash, email string, ownerID uuid.UUID, businessID *uuid.UUID, permissions []Permission) (*Identity, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner ID is required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", err)
		}
	}

	now := time.Now()
	return &Identity{
		ID:           uuid.New(),
		DisplayName:  displayName,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         RoleDelegatedManager,
		Status:       IdentityStatusActive,
		OwnerID:      &ownerID,
		BusinessID:   businessID,
		Permissions:  permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsActive returns true if the identity is active
func (i *Identity) IsActive() bool {
	return i.Status == IdentityStatusActive
}

// Deactivate flips the identity to inactive
func (i *Identity) Deactivate() {
	i.Status = IdentityStatusInactive
	i.UpdatedAt = time.Now()
}

// HasPermission reports whether the identity carries the capability.
// Only managers carry a permission set; the check is false for everyone
// else.
func (i *Identity) HasPermission(p Permission) bool {
	if i.Role != RoleDelegatedManager {
		return false
	}
	for _, held := range i.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// ProvisionInput groups the fields needed to provision a delegated
// manager account.
type ProvisionInput struct {
	DisplayName string       `json:"display_name" validate:"required"`
	Email       string       `json:"email,omitempty" validate:"omitempty,email"`
	OwnerID     uuid.UUID    `json:"owner_id" validate:"required"`
	BusinessID  *uuid.UUID   `json:"business_id,omitempty"`
	Permissions []Permission `json:"permissions"`
}
