package domain

// AuthenticationContext is the per-request snapshot of who is calling. It is
// built once by the credential-extraction layer, passed explicitly down the
// call chain, and never mutated. Authorization-sensitive checks re-fetch the
// Person instead of trusting Roles, which may be stale.
type AuthenticationContext struct {
	UserID        PersonID
	Email         string
	Roles         []Role
	Authenticated bool
}

// NewAuthenticationContext builds an authenticated context for a known user.
func NewAuthenticationContext(userID PersonID, email string, roles []Role) AuthenticationContext {
	return AuthenticationContext{
		UserID:        userID,
		Email:         email,
		Roles:         append([]Role(nil), roles...),
		Authenticated: true,
	}
}

// AnonymousContext is the context used when no valid credential is present:
// sentinel user id, no roles, not authenticated. It fails every
// authenticated-only check.
func AnonymousContext() AuthenticationContext {
	return AuthenticationContext{}
}

// CanActAs reports whether the context's user is personID. Self only,
// independent of role; the zero id never matches.
func (c AuthenticationContext) CanActAs(personID PersonID) bool {
	if personID.IsZero() {
		return false
	}
	return personID == c.UserID
}

// HasRole reports whether the context carries role.
func (c AuthenticationContext) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanAccessResource is a convenience check against the static role grants.
// Lead takes priority: a context holding both roles is judged by the lead
// set. Resource-level rules do not exist yet; resourceID is carried for the
// error surface only.
func (c AuthenticationContext) CanAccessResource(resourceID string, op Operation) bool {
	if !c.Authenticated {
		return false
	}
	if c.HasRole(RoleLead) {
		return RoleLead.Permits(op)
	}
	if c.HasRole(RoleMember) {
		return RoleMember.Permits(op)
	}
	return false
}
