package domain

// Principal is the opaque stable identifier of a caller. It is only ever
// compared for equality; the empty value means "no identity" (guest).
type Principal string

// Anonymous is the no-identity principal.
const Anonymous Principal = ""

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return p == Anonymous
}

// Role enumerates authorization levels.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ValidRole reports whether r is a member of the role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Account is the identity-provider record backing a principal. The core only
// consumes the Principal; the account adapter owns credentials.
type Account struct {
	Principal    Principal
	Email        string
	Name         string
	PasswordHash string
}
