package domain

import "time"

// PendingSignup parks registration details when the provider requires email
// confirmation before issuing a session. The profile is created from this
// record the first time the user successfully logs in.
type PendingSignup struct {
	UserID    string // provider user id
	FullName  string
	Username  string
	Email     string
	Phone     string
	Role      Role
	CreatedAt time.Time
}

// ToProfile materialises the profile this signup will become, with the
// approval decision applied at completion time.
func (s *PendingSignup) ToProfile(approved bool, now time.Time) Profile {
	return Profile{
		ID:        s.UserID,
		FullName:  s.FullName,
		Username:  s.Username,
		Email:     s.Email,
		Phone:     s.Phone,
		Role:      s.Role,
		Approved:  approved,
		Blocked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
