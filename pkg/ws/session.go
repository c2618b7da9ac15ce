package ws

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the fixed expiry window for issued bearer tokens.
const DefaultTokenTTL = 30 * 24 * time.Hour

var errAuthFailed = errors.New("failed to auth client")

// Session is one authenticated, connected client. Unauthenticated
// connections are never stored; a session exists from AUTH_SUCCESS until
// its token expires or its transport closes, whichever a broadcast pass
// notices first.
type Session struct {
	ID        string
	UserID    uint
	Token     string
	ExpiresAt time.Time

	conn ClientConn
}

func newSession(userID uint, token string, expiresAt time.Time, conn ClientConn) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		conn:      conn,
	}
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type tokenClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token carrying the principal and an expiry.
func IssueToken(secret []byte, userID uint, ttl time.Duration, now time.Time) (string, error) {
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies signature and expiry and extracts the principal. A
// bad signature, an expired token, and a missing principal are all the
// same "invalid" outcome.
func ParseToken(secret []byte, token string) (uint, bool) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}
