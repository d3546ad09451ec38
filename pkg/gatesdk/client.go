package gatesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the gatekeeper service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new gatekeeper client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register submits a candidate account for admission.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and authorizes a session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session behind the token.
func (c *SDKClient) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", token, nil, nil)
}

// Session describes the session behind the token, re-checking authorization.
func (c *SDKClient) Session(ctx context.Context, token string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/session", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks the public health endpoint.
func (c *SDKClient) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListPending lists profiles awaiting approval. Requires an admin session.
func (c *SDKClient) AdminListPending(ctx context.Context, token string) (*PendingProfilesResponse, error) {
	var out PendingProfilesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/pending", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminApprove lets a pending profile's user log in.
func (c *SDKClient) AdminApprove(ctx context.Context, token, profileID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/profiles/"+profileID+"/approve", token, nil, nil)
}

// AdminRevoke returns a profile to the pending state.
func (c *SDKClient) AdminRevoke(ctx context.Context, token, profileID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/profiles/"+profileID+"/revoke", token, nil, nil)
}

// AdminBlock denies a profile's user all access.
func (c *SDKClient) AdminBlock(ctx context.Context, token, profileID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/profiles/"+profileID+"/block", token, nil, nil)
}

// AdminUnblock lifts a block.
func (c *SDKClient) AdminUnblock(ctx context.Context, token, profileID string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/profiles/"+profileID+"/unblock", token, nil, nil)
}
