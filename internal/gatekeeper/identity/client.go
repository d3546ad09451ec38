package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

// Client is an HTTP client for a GoTrue-compatible identity provider.
// It implements both Provider and AdminProvider; the service key is only
// attached to admin endpoints.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpc      *http.Client
}

// NewClient builds a provider client. baseURL points at the provider's auth
// root, e.g. "http://localhost:9999/auth/v1".
func NewClient(baseURL, anonKey, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// gotrueError is the provider's error envelope. Older and newer versions
// disagree on field names, so all of them are tried.
type gotrueError struct {
	Code             string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.ErrorField} {
		if s != "" {
			return s
		}
	}
	return ""
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        gotrueUser `json:"user"`

	// Signup responses without a session are the bare user object.
	ID string `json:"id"`
}

// SignUp registers a self-service identity. When the provider is configured
// to require email confirmation it returns the user without a session; that
// surfaces here as RequiresConfirmation.
func (c *Client) SignUp(ctx context.Context, p SignUpParams) (SignUpResult, error) {
	body := map[string]any{
		"email":    p.Email,
		"password": p.Password,
	}
	if len(p.Metadata) > 0 {
		body["data"] = p.Metadata
	}

	var resp gotrueSession
	if err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, body, &resp); err != nil {
		return SignUpResult{}, err
	}

	userID := resp.User.ID
	if userID == "" {
		userID = resp.ID
	}
	if userID == "" {
		return SignUpResult{}, fmt.Errorf("%w: signup response missing user id", ErrUnavailable)
	}

	return SignUpResult{
		UserID:               userID,
		RequiresConfirmation: resp.AccessToken == "",
	}, nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (domain.Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var resp gotrueSession
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey, body, &resp); err != nil {
		return domain.Session{}, err
	}

	if resp.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("%w: token response missing access token", ErrUnavailable)
	}

	return domain.Session{
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// SignOut revokes the session behind the access token. Revoking an already
// dead session is not an error.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
	if err != nil && !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrInvalidCredentials) {
		return err
	}
	return nil
}

// CreateUser provisions a pre-confirmed identity through the admin API.
func (c *Client) CreateUser(ctx context.Context, p AdminCreateParams) (string, error) {
	body := map[string]any{
		"email":         p.Email,
		"password":      p.Password,
		"email_confirm": true,
	}
	if len(p.Metadata) > 0 {
		body["user_metadata"] = p.Metadata
	}

	var resp gotrueUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, body, &resp); err != nil {
		return "", err
	}

	if resp.ID == "" {
		return "", fmt.Errorf("%w: admin create response missing user id", ErrUnavailable)
	}

	return resp.ID, nil
}

// DeleteUser removes an identity through the admin API.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+userID, c.serviceKey, nil, nil)
}

// do runs one provider request and decodes the response into out (if non-nil).
// Non-2xx responses are normalised into the package's sentinel errors.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	log := slogx.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Warn("identity provider unreachable", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var gerr gotrueError
	_ = json.Unmarshal(raw, &gerr)

	return c.mapError(resp.StatusCode, &gerr)
}

// mapError turns a provider error response into a sentinel error. Message
// matching is unfortunate but the provider does not return stable codes on
// every version.
func (c *Client) mapError(status int, gerr *gotrueError) error {
	msg := gerr.text()
	lower := strings.ToLower(msg)

	switch {
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, msg)

	case gerr.Code == "email_not_confirmed" || strings.Contains(lower, "not confirmed"):
		return ErrEmailNotConfirmed

	case gerr.Code == "user_already_exists" || gerr.Code == "email_exists" ||
		strings.Contains(lower, "already registered") || strings.Contains(lower, "already been registered"):
		return ErrUserExists

	case gerr.Code == "weak_password" || strings.Contains(lower, "password"):
		if status == http.StatusUnprocessableEntity || strings.Contains(lower, "at least") {
			return ErrWeakPassword
		}
		return ErrInvalidCredentials

	case status == http.StatusNotFound || strings.Contains(lower, "not found"):
		return ErrUserNotFound

	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrInvalidCredentials

	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, msg)
	}
}
