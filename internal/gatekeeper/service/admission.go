package service

import (
	"strings"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
)

const minPasswordLength = 8
const minUsernameLength = 3

// disposableDomains is the denylist of throwaway email providers. Matching
// is by suffix so subdomains are caught too.
var disposableDomains = []string{
	"mailinator.com",
	"10minutemail.com",
	"guerrillamail.com",
	"tempmail.com",
	"trashmail.com",
	"tempmail.net",
	"dispostable.com",
	"yopmail.com",
	"maildrop.cc",
}

// bannedUsernameWords are rejected as case-insensitive substrings anywhere
// in a requested username.
var bannedUsernameWords = []string{
	"admin",
	"moderator",
	"root",
	"support",
	"test",
	"null",
	"undefined",
	"fuck",
	"shit",
	"bitch",
}

// Registration is a candidate account before admission.
type Registration struct {
	FirstName string
	LastName  string // optional
	Email     string
	Password  string
	Username  string // optional
	Phone     string // optional unless the role requires it
	Role      string
	Agree     bool
}

// FullName joins the name parts the way the profile stores them.
func (r *Registration) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// normalize trims and lowercases the fields that are compared or stored
// case-insensitively.
func (r *Registration) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

// admit applies the admission rules in their declared order: validation and
// policy checks first failure wins. The uniqueness check (which needs the
// store) runs separately in the registration service, after these pass.
func admit(r *Registration) error {
	// 1. Required fields, including minimum password length.
	if r.FirstName == "" || r.Email == "" || r.Password == "" {
		return ErrMissingField
	}
	if len(r.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	// 2. Terms must be accepted.
	if !r.Agree {
		return ErrTermsNotAccepted
	}

	// 3. Disposable email domains are refused.
	if isDisposableEmail(r.Email) {
		return ErrDisposableEmail
	}

	// 4. Privileged roles are never self-registerable.
	role := domain.Role(r.Role)
	if role == domain.RoleAdmin {
		return ErrReservedRole
	}

	// 5. Username, when given, must be long enough and clean.
	if r.Username != "" && !validUsername(r.Username) {
		return ErrInvalidUsername
	}

	// 6. Some roles are unreachable without a phone number.
	if role.RequiresPhone() && r.Phone == "" {
		return ErrPhoneRequired
	}

	return nil
}

func isDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	emailDomain := strings.ToLower(email[at+1:])

	for _, d := range disposableDomains {
		if emailDomain == d || strings.HasSuffix(emailDomain, "."+d) {
			return true
		}
	}
	return false
}

func validUsername(username string) bool {
	if len(username) < minUsernameLength {
		return false
	}

	lower := strings.ToLower(username)
	for _, word := range bannedUsernameWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
