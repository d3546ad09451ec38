// Package identitytest is an in-memory, GoTrue-compatible identity provider.
// It backs unit tests and the embedded provider mode, where the service runs
// self-contained without an external auth deployment. Behaviour follows the
// real provider closely enough that the identity.Client cannot tell the
// difference: same endpoints, same envelopes, same error codes.
package identitytest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vasudha-ag/gatekeeper/pkg/idx"
	"github.com/vasudha-ag/gatekeeper/pkg/jwtx"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = time.Hour

// Options configures the fake provider.
type Options struct {
	// JWTSecret signs session tokens. Must match the verifier's secret.
	JWTSecret []byte

	// Issuer stamped into session tokens.
	Issuer string

	// AnonKey and ServiceKey are the API keys the provider expects. The
	// service key gates the admin endpoints.
	AnonKey    string
	ServiceKey string

	// RequireConfirmation withholds sessions from self-service signups
	// until ConfirmEmail is called.
	RequireConfirmation bool
}

type account struct {
	id           string
	email        string
	passwordHash []byte
	confirmed    bool
	metadata     map[string]any
}

// Provider is the fake. Safe for concurrent use.
type Provider struct {
	opts   Options
	signer *jwtx.HS256Signer

	mu       sync.Mutex
	accounts map[string]*account // keyed by lowercase email
	sessions map[string]string   // access token -> user id
}

// New creates an empty fake provider.
func New(opts Options) *Provider {
	return &Provider{
		opts:     opts,
		signer:   jwtx.NewHS256Signer(opts.JWTSecret, opts.Issuer, []string{"authenticated"}),
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
	}
}

// Handler returns the provider's HTTP surface, mountable under any prefix.
func (p *Provider) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", p.handleSignup)
	mux.HandleFunc("POST /token", p.handleToken)
	mux.HandleFunc("POST /logout", p.handleLogout)
	mux.HandleFunc("POST /admin/users", p.handleAdminCreate)
	mux.HandleFunc("DELETE /admin/users/{id}", p.handleAdminDelete)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"name": "identitytest"})
	})
	return mux
}

// ConfirmEmail marks an account as confirmed, standing in for the user
// clicking the confirmation link.
func (p *Provider) ConfirmEmail(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	acct, ok := p.accounts[strings.ToLower(email)]
	if !ok {
		return false
	}
	acct.confirmed = true
	return true
}

// ActiveSessions reports how many sessions are currently alive. Lets tests
// assert that fail-closed paths really did sign the user out.
func (p *Provider) ActiveSessions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// UserID looks up the provider id for an email, empty if unknown.
func (p *Provider) UserID(email string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if acct, ok := p.accounts[strings.ToLower(email)]; ok {
		return acct.id
	}
	return ""
}

func (p *Provider) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Data     map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	if len(req.Password) < 6 {
		writeError(w, http.StatusUnprocessableEntity, "weak_password", "Password should be at least 6 characters")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "validation_failed", "Unable to validate email address")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unexpected_failure", "hashing failed")
		return
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, "user_already_exists", "User already registered")
		return
	}

	acct := &account{
		id:           idx.New().String(),
		email:        email,
		passwordHash: hash,
		confirmed:    !p.opts.RequireConfirmation,
		metadata:     req.Data,
	}
	p.accounts[email] = acct
	p.mu.Unlock()

	if !acct.confirmed {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                   acct.id,
			"email":                acct.email,
			"confirmation_sent_at": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	p.writeSession(w, acct)
}

func (p *Provider) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grant_type") != "password" {
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", "unsupported grant type")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	p.mu.Lock()
	acct, ok := p.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	p.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, "invalid_grant", "Invalid login credentials")
		return
	}

	if !acct.confirmed {
		writeError(w, http.StatusBadRequest, "email_not_confirmed", "Email not confirmed")
		return
	}

	p.writeSession(w, acct)
}

func (p *Provider) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))

	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (p *Provider) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if !p.isServiceRequest(r) {
		writeError(w, http.StatusUnauthorized, "no_authorization", "service key required")
		return
	}

	var req struct {
		Email        string         `json:"email"`
		Password     string         `json:"password"`
		EmailConfirm bool           `json:"email_confirm"`
		Metadata     map[string]any `json:"user_metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unexpected_failure", "hashing failed")
		return
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, "email_exists", "A user with this email address has already been registered")
		return
	}

	acct := &account{
		id:           idx.New().String(),
		email:        email,
		passwordHash: hash,
		confirmed:    req.EmailConfirm,
		metadata:     req.Metadata,
	}
	p.accounts[email] = acct
	p.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"id": acct.id, "email": acct.email})
}

func (p *Provider) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if !p.isServiceRequest(r) {
		writeError(w, http.StatusUnauthorized, "no_authorization", "service key required")
		return
	}

	id := r.PathValue("id")

	p.mu.Lock()
	defer p.mu.Unlock()

	for email, acct := range p.accounts {
		if acct.id == id {
			delete(p.accounts, email)
			writeJSON(w, http.StatusOK, map[string]any{"id": id})
			return
		}
	}

	writeError(w, http.StatusNotFound, "user_not_found", "User not found")
}

func (p *Provider) isServiceRequest(r *http.Request) bool {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
	return p.opts.ServiceKey != "" && token == p.opts.ServiceKey
}

func (p *Provider) writeSession(w http.ResponseWriter, acct *account) {
	sessionID := idx.New().String()

	token, err := p.signer.Sign(acct.id, acct.email, sessionID, sessionTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unexpected_failure", "token signing failed")
		return
	}

	p.mu.Lock()
	p.sessions[token] = acct.id
	p.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(sessionTTL.Seconds()),
		"user":         map[string]any{"id": acct.id, "email": acct.email},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"error_code": code, "msg": msg})
}
