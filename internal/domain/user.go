package domain

import "time"

// Role classifies what an authenticated user is allowed to do.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAgent      Role = "AGENT"
	RoleClient     Role = "CLIENT"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleAgent, RoleClient:
		return true
	default:
		return false
	}
}

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// AccessLevel is an ordered privilege tier orthogonal to Role.
type AccessLevel string

const (
	AccessLevelStandard AccessLevel = "STANDARD"
	AccessLevelElevated AccessLevel = "ELEVATED"
	AccessLevelAdmin    AccessLevel = "ADMIN"
)

// rank orders access levels; unknown or empty levels rank lowest.
func (l AccessLevel) rank() int {
	switch l {
	case AccessLevelStandard:
		return 1
	case AccessLevelElevated:
		return 2
	case AccessLevelAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether the level meets the required minimum on the
// STANDARD < ELEVATED < ADMIN order.
func (l AccessLevel) AtLeast(min AccessLevel) bool {
	return l.rank() >= min.rank()
}

// User is the resolved identity attached to an authenticated request.
type User struct {
	ID          string
	ExternalID  string
	Email       string
	FirstName   string
	LastName    string
	Role        Role
	Status      UserStatus
	Permissions []string
	AccessLevel AccessLevel
	Profile     map[string]any
	AuthMethod  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission reports whether the user carries the named permission.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
