// Package wstoken issues and validates the opaque token a client must
// present when opening the notification socket. The token is reversible
// base64 of "identity:role:issuedAt" with a freshness window — it is NOT
// signed or encrypted, so anyone who knows the format can forge one for an
// arbitrary identity. This matches the deployed wire contract; it limits
// replay of old tokens, nothing more.
package wstoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"HotelCS/entity"
)

// ErrInvalidToken covers every decode failure; callers get no detail about
// which part of the token was wrong.
var ErrInvalidToken = errors.New("invalid connection token")

// ErrExpiredToken marks a token older than the validity window.
var ErrExpiredToken = errors.New("expired connection token")

// Claims are the three fields a valid token decodes into.
type Claims struct {
	Identity string
	Role     entity.Role
	IssuedAt time.Time
}

// Issue encodes identity, role and issue time into a connection token.
func Issue(identity string, role entity.Role, now time.Time) string {
	raw := fmt.Sprintf("%s:%s:%d", identity, role, now.Unix())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Validate decodes a token and rejects it when it does not split into
// exactly identity, role and issue time, or when it was issued more than
// window ago. Tokens are only checked at connection establishment, never
// re-validated mid-session.
func Validate(token string, window time.Duration, now time.Time) (Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	role, err := entity.ParseRole(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	issuedUnix, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	issuedAt := time.Unix(issuedUnix, 0)

	if parts[0] == "" {
		return Claims{}, ErrInvalidToken
	}
	if now.Sub(issuedAt) > window {
		return Claims{}, ErrExpiredToken
	}

	return Claims{
		Identity: parts[0],
		Role:     role,
		IssuedAt: issuedAt,
	}, nil
}
