package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidToken = errors.New("session: invalid token")

// signer issues and verifies the opaque tokens handed to clients.
// A token carries only the session id.
type signer struct {
	secret []byte
}

func (s signer) issue(id string, at time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       id,
		IssuedAt: jwt.NewNumericDate(at),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parse returns the session id of a well-formed token signed with the secret.
func (s signer) parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", errInvalidToken
	}
	return claims.ID, nil
}

// newID returns a random session id.
func newID() string {
	return uuid.NewString()
}

// RandomSecret generates a 32-byte signing secret.
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("session: failed to generate secret: %w", err)
	}
	return b, nil
}
