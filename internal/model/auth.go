package model

// Role identifies what an authenticated caller may do.
type Role string

const (
	RoleUser   Role = "User"
	RoleSeller Role = "Seller"
)

// AuthContext is the identity of the caller, resolved once per request and
// passed explicitly into every service operation.
type AuthContext struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// Authenticated reports whether the context carries a user identity.
func (a AuthContext) Authenticated() bool {
	return a.UserID != ""
}

// IsSeller reports whether the caller acts as a seller.
func (a AuthContext) IsSeller() bool {
	return a.Authenticated() && a.Role == RoleSeller
}

// ParseRole returns the role for name, defaulting to RoleUser.
func ParseRole(name string) Role {
	if Role(name) == RoleSeller {
		return RoleSeller
	}
	return RoleUser
}
