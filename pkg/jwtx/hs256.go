package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates tokens signed with a shared HMAC-SHA256 secret.
// The identity provider and this service hold the same secret, so tokens
// can be checked locally without a round trip to the provider.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewHS256Verifier creates a verifier for the given shared secret.
func NewHS256Verifier(secret []byte, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{secret: secret, opts: opts}
}

// Verify parses and validates the token, returning its claims.
// Signature, algorithm, issuer, audience and time bounds are all checked.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if !parsed.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}

	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func (v *HS256Verifier) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrAlgMismatch
	}
	return v.secret, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}

// HS256Signer mints session tokens with the shared secret. Production
// tokens come from the identity provider; this signer exists for the
// embedded provider and tests, which must produce tokens the verifier
// above accepts.
type HS256Signer struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewHS256Signer creates a signer that stamps the given issuer and audience.
func NewHS256Signer(secret []byte, issuer string, audience []string) *HS256Signer {
	return &HS256Signer{secret: secret, issuer: issuer, audience: audience}
}

// Sign mints a session token for the subject with the given lifetime.
func (s *HS256Signer) Sign(subject, email, sessionID string, ttl time.Duration) (string, error) {
	return s.SignAt(subject, email, sessionID, ttl, time.Now().UTC())
}

// SignAt is Sign with an explicit clock, for deterministic tests.
func (s *HS256Signer) SignAt(subject, email, sessionID string, ttl time.Duration, now time.Time) (string, error) {
	claims := NewSessionClaims(subject, email, sessionID, ttl, s.issuer, s.audience, now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}
