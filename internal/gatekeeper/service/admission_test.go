package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@real.com",
		Password:  "longpass1",
		Username:  "janedoe",
		Role:      "buyer",
		Agree:     true,
	}
}

func TestAdmitRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registration)
		want   error
	}{
		{"valid buyer passes", func(r *Registration) {}, nil},
		{"missing first name", func(r *Registration) { r.FirstName = "" }, ErrMissingField},
		{"missing email", func(r *Registration) { r.Email = "" }, ErrMissingField},
		{"missing password", func(r *Registration) { r.Password = "" }, ErrMissingField},
		{"short password", func(r *Registration) { r.Password = "short1" }, ErrPasswordTooShort},
		{"terms not accepted", func(r *Registration) { r.Agree = false }, ErrTermsNotAccepted},
		{"disposable email", func(r *Registration) { r.Email = "jane@mailinator.com" }, ErrDisposableEmail},
		{"disposable subdomain", func(r *Registration) { r.Email = "jane@mx.yopmail.com" }, ErrDisposableEmail},
		{"admin self-register", func(r *Registration) { r.Role = "admin" }, ErrReservedRole},
		{"admin self-register mixed case", func(r *Registration) { r.Role = "Admin" }, ErrReservedRole},
		{"admin self-register padded", func(r *Registration) { r.Role = "  ADMIN " }, ErrReservedRole},
		{"short username", func(r *Registration) { r.Username = "ab" }, ErrInvalidUsername},
		{"banned word in username", func(r *Registration) { r.Username = "superADMIN99" }, ErrInvalidUsername},
		{"phone required for project owner", func(r *Registration) { r.Role = "project_owner"; r.Phone = "" }, ErrPhoneRequired},
		{"phone required for field user", func(r *Registration) { r.Role = "field_user"; r.Phone = "" }, ErrPhoneRequired},
		{"field user with phone passes", func(r *Registration) { r.Role = "field_user"; r.Phone = "+15550001" }, nil},
		{"no username is fine", func(r *Registration) { r.Username = "" }, nil},
		{"unknown role needs no phone", func(r *Registration) { r.Role = "mystery" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			r.normalize()

			err := admit(&r)
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

// Validation always outranks policy when an input violates both.
func TestAdmitOrdering(t *testing.T) {
	t.Run("missing field before reserved role", func(t *testing.T) {
		r := validRegistration()
		r.Email = ""
		r.Role = "admin"
		r.normalize()

		require.ErrorIs(t, admit(&r), ErrMissingField)
	})

	t.Run("terms before disposable email", func(t *testing.T) {
		r := validRegistration()
		r.Agree = false
		r.Email = "jane@mailinator.com"
		r.normalize()

		require.ErrorIs(t, admit(&r), ErrTermsNotAccepted)
	})

	t.Run("disposable email before reserved role", func(t *testing.T) {
		r := validRegistration()
		r.Email = "jane@trashmail.com"
		r.Role = "admin"
		r.normalize()

		require.ErrorIs(t, admit(&r), ErrDisposableEmail)
	})
}

func TestFullName(t *testing.T) {
	r := Registration{FirstName: "  Jane ", LastName: " Doe "}
	require.Equal(t, "Jane Doe", r.FullName())

	r = Registration{FirstName: "Jane"}
	require.Equal(t, "Jane", r.FullName())
}
