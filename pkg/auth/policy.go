package auth

import (
	"fmt"

	apperrors "theworks/pkg/errors"
	"theworks/pkg/model"
)

// Policy is the declarative access requirement a route registers with the
// guard. Role checks are exact: no hierarchy between admin, trainer and user
// is assumed. Instance-level ownership is a separate, composable check that
// the owning service performs against storage (see OwnerOrAdmin).
type Policy struct {
	name         string
	requiredRole model.Role
	public       bool
}

// Public admits anyone. The guard still verifies a credential when one is
// presented, so a public handler can tailor its response to the caller's
// role, but a missing or invalid token is not an error.
func Public() Policy {
	return Policy{name: "public", public: true}
}

// Authenticated admits any verified identity.
func Authenticated() Policy {
	return Policy{name: "authenticated"}
}

// RequireRole admits only identities whose role matches exactly.
func RequireRole(role model.Role) Policy {
	return Policy{name: "role:" + string(role), requiredRole: role}
}

// OwnerOrAdmin admits any verified identity at the gate; the service layer
// then resolves ownership of the target instance and conflates "absent" with
// "not yours" so existence of other users' resources never leaks.
func OwnerOrAdmin() Policy {
	return Policy{name: "owner-or-admin"}
}

func (p Policy) Name() string {
	return p.name
}

// AllowsAnonymous reports whether the route tolerates an absent credential.
func (p Policy) AllowsAnonymous() bool {
	return p.public
}

// Authorize returns Forbidden, never Unauthorized: by the time a policy is
// evaluated the credential has already been verified.
func (p Policy) Authorize(identity model.Identity) error {
	if p.requiredRole == "" {
		return nil
	}
	if identity.Role != p.requiredRole {
		return apperrors.Forbidden(fmt.Sprintf("%s role required", p.requiredRole))
	}
	return nil
}
