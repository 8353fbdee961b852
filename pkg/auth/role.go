package auth

// Role is the closed set of caller roles. Capability checks live here so
// handlers and services never compare raw strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleHost, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanManageListings gates listing management and host-facing queries.
func (r Role) CanManageListings() bool {
	return r == RoleHost || r == RoleAdmin
}
