package domain

import "fmt"

// Role identifies the role class of an authenticated identity.
// The three variants are mutually exclusive: an administrator is never
// stored, an owner owns businesses, a manager is bound to exactly one
// owner and one business.
type Role string

const (
	RoleAdministrator    Role = "admin"
	RoleTenantOwner      Role = "owner"
	RoleDelegatedManager Role = "manager"
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdministrator, RoleTenantOwner, RoleDelegatedManager:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid reports whether the role is one of the three known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleTenantOwner, RoleDelegatedManager:
		return true
	}
	return false
}

// Collection identifies one of the two stored-credential collections.
type Collection string

const (
	CollectionOwners   Collection = "owners"
	CollectionManagers Collection = "managers"
)

// Collections returns both stored-credential collections in lookup order.
// Login resolution probes owners first, then managers; the order is fixed
// so behavior stays deterministic.
func Collections() []Collection {
	return []Collection{CollectionOwners, CollectionManagers}
}

// Collection returns the stored-credential collection backing the role.
// Administrators are derived from the identity provider and have no
// stored record.
func (r Role) Collection() (Collection, error) {
	switch r {
	case RoleTenantOwner:
		return CollectionOwners, nil
	case RoleDelegatedManager:
		return CollectionManagers, nil
	case RoleAdministrator:
		return "", fmt.Errorf("administrators are not stored in a collection")
	default:
		return "", fmt.Errorf("unknown role: %q", r)
	}
}

// RoleFor returns the role implied by a stored-credential collection.
func (c Collection) Role() (Role, error) {
	switch c {
	case CollectionOwners:
		return RoleTenantOwner, nil
	case CollectionManagers:
		return RoleDelegatedManager, nil
	default:
		return "", fmt.Errorf("unknown collection: %q", c)
	}
}
