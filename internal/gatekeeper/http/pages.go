package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
	"github.com/vasudha-ag/gatekeeper/pkg/jwtx"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

// LoginPage is where unauthenticated or de-authorized page requests land.
const LoginPage = "/login.html"

// pageRule declares who may load a page. Pages without a rule are public.
type pageRule struct {
	// role is the required role; empty means any authorized user.
	role domain.Role
}

// pageRules maps page paths to their access rules. Paths ending in "/" match
// by prefix, everything else exactly. This replaces a per-page declaration
// with one authoritative server-side table.
var pageRules = map[string]pageRule{
	"/admin/":          {role: domain.RoleAdmin},
	"/verifier.html":   {role: domain.RoleVerifier},
	"/field-user.html": {role: domain.RoleFieldUser},
	"/buyer.html":      {},
}

// PageGuard re-validates the session on every protected page load, before
// the file server gets to answer. Public pages and assets pass straight
// through.
type PageGuard struct {
	Guard    *service.GuardService
	Verifier jwtx.Verifier
}

// Middleware wraps a page handler (normally the static file server).
func (g *PageGuard) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rule, protected := matchPageRule(r.URL.Path)
			if !protected {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := slogx.FromContext(ctx)

			// 1. No session at all: straight to the login page.
			token := httpx.SessionToken(r, SessionCookie)
			if token == "" {
				redirectToLogin(w, r)
				return
			}

			// 2. The token must verify and still be in its validity window.
			claims, err := g.Verifier.Verify(token)
			if err == nil {
				err = claims.ValidateExpiry()
			}
			if err != nil {
				clearSessionCookie(w)
				redirectToLogin(w, r)
				return
			}

			// 3. Standing and role check against the profile store.
			profile, err := g.Guard.Check(ctx, claims.Subject, token, rule.role)
			if err != nil {
				// A role mismatch keeps the session; everything else
				// already terminated it, so drop the cookie too.
				if errors.Is(err, service.ErrRoleMismatch) {
					log.Info("page access denied",
						"path", r.URL.Path,
						"user_id", claims.Subject,
					)
					http.Redirect(w, r, LoginPage+"?denied=1", http.StatusSeeOther)
					return
				}

				clearSessionCookie(w)
				redirectToLogin(w, r)
				return
			}

			// 4. Expose the authorized identity to the page, taking the
			// place of a client-side profile fetch.
			w.Header().Set("X-Profile-Role", string(profile.Role))
			w.Header().Set("X-Profile-Name", profile.FullName)
			next.ServeHTTP(w, r)
		})
	}
}

// matchPageRule finds the rule for a path. Prefix rules (keys ending in "/")
// cover whole sections like /admin/.
func matchPageRule(path string) (pageRule, bool) {
	if rule, ok := pageRules[path]; ok {
		return rule, true
	}
	for prefix, rule := range pageRules {
		if strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix) {
			return rule, true
		}
	}
	return pageRule{}, false
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPage, http.StatusSeeOther)
}
