package domain

// Snapshot is a point-in-time, read-only view of the client session. The
// role predicates are derived from the cached user on every call and are
// never stored independently, so they cannot drift from User.Role.
type Snapshot struct {
	Loading bool
	User    *User
	Profile *Profile
}

// Authenticated reports whether the client currently considers itself logged
// in. By invariant this is exactly "there is a cached user".
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

func (s Snapshot) IsStudent() bool { return s.User.HasRole(RoleStudent) }

func (s Snapshot) IsMentor() bool { return s.User.HasRole(RoleMentor) }

func (s Snapshot) IsAdmin() bool { return s.User.HasRole(RoleAdmin) }

// Role returns the cached user's role, or the empty string while
// unauthenticated.
func (s Snapshot) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
