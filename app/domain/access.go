package domain

// Redirect targets used by access decisions.
const (
	RedirectLogin            = "/login"
	RedirectUnauthorized     = "/unauthorized"
	RedirectAdminDashboard   = "/admin/dashboard"
	RedirectManagerDashboard = "/manager/dashboard"
	RedirectOwnerHome        = "/home"
)

// AccessSpec describes what a route or operation requires: an allow-list
// of roles (or convenience flags), and for managers a set of required
// permissions. An empty spec places no role restriction.
type AccessSpec struct {
	Roles               []Role       `json:"roles,omitempty"`
	AdminOnly           bool         `json:"admin_only,omitempty"`
	OwnerOnly           bool         `json:"owner_only,omitempty"`
	ManagerOnly         bool         `json:"manager_only,omitempty"`
	RequiredPermissions []Permission `json:"required_permissions,omitempty"`
	// Redirect overrides the role-specific default landing page on deny.
	Redirect string `json:"redirect,omitempty"`
}

// restrictsRoles reports whether the spec names any role at all.
func (s AccessSpec) restrictsRoles() bool {
	return len(s.Roles) > 0 || s.AdminOnly || s.OwnerOnly || s.ManagerOnly
}

// allowsRole checks the role against the allow-list and flags.
func (s AccessSpec) allowsRole(role Role) bool {
	if s.AdminOnly && role == RoleAdministrator {
		return true
	}
	if s.OwnerOnly && role == RoleTenantOwner {
		return true
	}
	if s.ManagerOnly && role == RoleDelegatedManager {
		return true
	}
	for _, allowed := range s.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Decision is the outcome of an access check. Lack of access is a normal
// value, never an error.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(target string) Decision {
	return Decision{Allowed: false, Redirect: target}
}

// CheckAccess decides whether the session may perform an operation
// described by the spec. Login-gating is unconditional: no session
// always denies toward the login page. Role-gating applies only when the
// spec restricts roles; permission-gating applies only to managers.
func CheckAccess(session *Session, spec AccessSpec) Decision {
	if session == nil {
		return deny(RedirectLogin)
	}
	if !session.Role.Valid() {
		// Should not occur given the role invariants; treated like a
		// missing session.
		return deny(RedirectLogin)
	}

	if !spec.restrictsRoles() {
		return allow()
	}

	if !spec.allowsRole(session.Role) {
		return deny(denyTarget(session.Role, spec))
	}

	if session.Role == RoleDelegatedManager && len(spec.RequiredPermissions) > 0 {
		for _, required := range spec.RequiredPermissions {
			if !session.HasPermission(required) {
				return deny(denyTarget(session.Role, spec))
			}
		}
	}

	return allow()
}

// denyTarget resolves where a denied session lands: the explicit
// override wins, otherwise the role-specific default.
func denyTarget(role Role, spec AccessSpec) string {
	if spec.Redirect != "" {
		return spec.Redirect
	}
	switch role {
	case RoleAdministrator:
		return RedirectAdminDashboard
	case RoleDelegatedManager:
		return RedirectManagerDashboard
	case RoleTenantOwner:
		return RedirectOwnerHome
	default:
		return RedirectUnauthorized
	}
}
