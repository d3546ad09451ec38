package domain

import "time"

// Profile is the account record this service owns. The identity provider
// holds the credentials; the profile holds everything admission and
// authorization decide on.
type Profile struct {
	ID        string // provider user id
	FullName  string
	Username  string
	Email     string
	Phone     string // empty unless the role requires one
	Role      Role
	Approved  bool
	Blocked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Authorized reports whether the profile may hold a live session.
// A blocked profile is always denied, regardless of approval.
func (p *Profile) Authorized() bool {
	return p.Approved && !p.Blocked
}
