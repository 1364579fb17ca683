// Package auth mints and verifies the signed session tokens handed out as
// cookies on successful login.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CATSSNAKE/axolotl/internal/model"
)

// CookieName is the name of the session cookie set on login.
const CookieName = "axolotl_session"

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed HS256 token identifying user, valid for the
// configured session TTL.
func (s *Sessions) Issue(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: string(user.ID),
		Email:  user.Email,
	})
	return token.SignedString(s.secret)
}

// Verify parses a token previously returned by Issue and returns its claims.
// Expired, malformed or foreign tokens yield model.ErrorInvalidToken.
func (s *Sessions) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, model.ErrorInvalidToken
	}
	if !token.Valid {
		return nil, model.ErrorInvalidToken
	}
	return claims, nil
}
