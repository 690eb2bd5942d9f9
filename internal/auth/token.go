package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cineia/cinex/internal/shared"
)

// Claims holds the fields encoded in the credential payload.
//
// The payload is decoded without verifying the signature; the API server is
// the only party that validates tokens cryptographically. See DESIGN.md.
type Claims struct {
	Email  string `json:"email"`
	UserID int64  `json:"user_id"`
	Exp    int64  `json:"exp"`
}

// Identity is the display-ready projection of a valid credential.
//
// Recomputed from the credential on every load; never independently mutated.
type Identity struct {
	Username string
	Email    string
	UserID   int64
	Token    string
}

// Decode parses the payload segment of a compact JWT credential.
//
// Returns [shared.ErrMalformedToken] when the token does not have three
// segments or the payload is not valid base64url-encoded JSON.
func Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", shared.ErrMalformedToken, len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedToken, err)
	}

	return &claims, nil
}

// Expired reports whether the claims' expiry timestamp has passed.
//
// The exp claim is in seconds; comparison happens in milliseconds to match
// the wall-clock semantics of the issuing API.
func (c *Claims) Expired(now time.Time) bool {
	return c.Exp*1000 < now.UnixMilli()
}

// DeriveIdentity builds an Identity from decoded claims and the raw token.
//
// Returns nil when the email claim is absent, which marks a corrupt or
// foreign token. The username is the email local-part before the first "@".
func DeriveIdentity(c *Claims, token string) *Identity {
	if c == nil || c.Email == "" {
		return nil
	}

	username := c.Email
	if at := strings.Index(c.Email, "@"); at >= 0 {
		username = c.Email[:at]
	}

	return &Identity{
		Username: username,
		Email:    c.Email,
		UserID:   c.UserID,
		Token:    token,
	}
}
