// Package auth issues and verifies the anonymous session tokens that tie a
// browser to its persisted quiz state. There are no accounts: a token's
// subject is an opaque session id minted at first contact.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service struct{ hmac []byte }

func NewService(secret string) *Service { return &Service{hmac: []byte(secret)} }

type claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for the given session id. The TTL is generous on
// purpose: session state lives in the store, losing the token only means a
// fresh session.
func (s *Service) Issue(sessionID string) (string, error) {
	now := time.Now()
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    "quizforge",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * 24 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.hmac)
}

// Parse verifies a token and returns its session id.
func (s *Service) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", errors.New("invalid token")
	}
	return c.Subject, nil
}

type ctxKey struct{}

// SessionID extracts the verified session id placed by Middleware.
func SessionID(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(ctxKey{}).(string)
	return sid, ok
}

// Middleware requires a Bearer session token and puts its session id on the
// request context.
func Middleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			sid, err := s.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sid)))
		})
	}
}

// AdminOnly gates a route behind HTTP basic auth checked against a bcrypt
// hash.
func AdminOnly(user, passHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || u != user ||
				bcrypt.CompareHashAndPassword([]byte(passHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="quizforge"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
