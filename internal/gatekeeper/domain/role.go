package domain

// Role names an access tier a profile can hold. Roles are assigned at
// registration and only ever read afterwards; there is no role-change flow.
type Role string

const (
	RoleBuyer        Role = "buyer"
	RoleAdmin        Role = "admin"
	RoleVerifier     Role = "verifier"
	RoleFieldUser    Role = "field_user"
	RoleProjectOwner Role = "project_owner"
)

// DefaultRole is assumed whenever a profile's role is missing or unknown.
const DefaultRole = RoleBuyer

// knownRoles is the closed set of roles registration accepts.
var knownRoles = map[Role]bool{
	RoleBuyer:        true,
	RoleAdmin:        true,
	RoleVerifier:     true,
	RoleFieldUser:    true,
	RoleProjectOwner: true,
}

// ParseRole maps a raw string to a Role, falling back to DefaultRole for
// anything unrecognised. An unknown role must never block a user out.
func ParseRole(s string) Role {
	r := Role(s)
	if !knownRoles[r] {
		return DefaultRole
	}
	return r
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return knownRoles[r]
}

// RequiresPhone reports whether registration must collect a phone number
// for this role.
func (r Role) RequiresPhone() bool {
	return r == RoleProjectOwner || r == RoleFieldUser
}

// Landing returns the page a freshly authorized user of this role is sent to.
func (r Role) Landing() string {
	switch r {
	case RoleAdmin:
		return "/admin/index.html"
	case RoleVerifier:
		return "/verifier.html"
	case RoleFieldUser:
		return "/field-user.html"
	default:
		return "/buyer.html"
	}
}
