// internal/token/token.go
//
// Signed session tokens for the evaluator.
// Responsibilities:
//   - Minting HS256 JWTs that carry a UUID session id ("sid") and an expiry.
//   - Verifying tokens presented by clients and recovering the session id.
//
// The token is what clients see as session_id; the store is keyed by the sid
// inside it, so a forged or expired token never reaches a stored round.

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalid is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalid = errors.New("invalid session token")

const issuer = "lingo"

// Issuer signs and verifies session tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. ttl <= 0 means tokens never expire.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// claims is the JWT payload.
type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// New mints a token for a fresh session id.
func (i *Issuer) New() (tok, sid string, err error) {
	sid = uuid.NewString()
	tok, err = i.Sign(sid)
	return tok, sid, err
}

// Sign mints a token for an existing session id, refreshing its expiry.
func (i *Issuer) Sign(sid string) (string, error) {
	now := i.now()
	c := claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return ss, nil
}

// Parse verifies tok and returns its session id.
func (i *Issuer) Parse(tok string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tok, &c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := uuid.Parse(c.SID); err != nil {
		return "", fmt.Errorf("%w: bad sid", ErrInvalid)
	}
	return c.SID, nil
}
