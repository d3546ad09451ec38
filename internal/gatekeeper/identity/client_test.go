package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity"
)

func TestSignUp(t *testing.T) {
	t.Run("returns session when autoconfirm is on", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/v1/signup", r.URL.Path)
			require.Equal(t, "anon-key", r.Header.Get("apikey"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "alice@example.com", body["email"])

			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok",
				"expires_in":   3600,
				"user":         map[string]any{"id": "user-1", "email": "alice@example.com"},
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL+"/auth/v1", "anon-key", "service-key")

		res, err := c.SignUp(t.Context(), identity.SignUpParams{
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.Equal(t, "user-1", res.UserID)
		require.False(t, res.RequiresConfirmation)
	})

	t.Run("flags pending confirmation when no session is issued", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"id":    "user-2",
				"email": "bob@example.com",
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		res, err := c.SignUp(t.Context(), identity.SignUpParams{
			Email:    "bob@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.Equal(t, "user-2", res.UserID)
		require.True(t, res.RequiresConfirmation)
	})

	t.Run("maps duplicate email to ErrUserExists", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error_code": "user_already_exists",
				"msg":        "User already registered",
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		_, err := c.SignUp(t.Context(), identity.SignUpParams{
			Email:    "dup@example.com",
			Password: "password123",
		})
		require.ErrorIs(t, err, identity.ErrUserExists)
	})
}

func TestSignInWithPassword(t *testing.T) {
	t.Run("returns normalised session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/token", r.URL.Path)
			require.Equal(t, "password", r.URL.Query().Get("grant_type"))

			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "session-token",
				"token_type":   "bearer",
				"expires_in":   3600,
				"user":         map[string]any{"id": "user-1", "email": "alice@example.com"},
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		sess, err := c.SignInWithPassword(t.Context(), "alice@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, "user-1", sess.UserID)
		require.Equal(t, "alice@example.com", sess.Email)
		require.Equal(t, "session-token", sess.AccessToken)
		require.False(t, sess.ExpiresAt.IsZero())
	})

	t.Run("maps bad credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error":             "invalid_grant",
				"error_description": "Invalid login credentials",
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		_, err := c.SignInWithPassword(t.Context(), "alice@example.com", "wrong")
		require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("maps unconfirmed email", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error_code": "email_not_confirmed",
				"msg":        "Email not confirmed",
			})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		_, err := c.SignInWithPassword(t.Context(), "bob@example.com", "password123")
		require.ErrorIs(t, err, identity.ErrEmailNotConfirmed)
	})

	t.Run("maps server errors to ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		_, err := c.SignInWithPassword(t.Context(), "alice@example.com", "password123")
		require.ErrorIs(t, err, identity.ErrUnavailable)
	})
}

func TestAdminUsers(t *testing.T) {
	t.Run("create sends service key and email_confirm", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/users", r.URL.Path)
			require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, true, body["email_confirm"])

			json.NewEncoder(w).Encode(map[string]any{"id": "admin-made-1"})
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		id, err := c.CreateUser(t.Context(), identity.AdminCreateParams{
			Email:    "carol@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.Equal(t, "admin-made-1", id)
	})

	t.Run("delete hits the user resource", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := identity.NewClient(srv.URL, "anon-key", "service-key")

		require.NoError(t, c.DeleteUser(t.Context(), "user-9"))
		require.Equal(t, "/admin/users/user-9", gotPath)
	})
}

func TestSignOutToleratesDeadSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"msg": "session not found"})
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	require.NoError(t, c.SignOut(t.Context(), "stale-token"))
}
