package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrSignatureInvalid covers bad signatures and malformed payloads.
	ErrSignatureInvalid = errors.New("token: signature invalid")
	// ErrExpired means the embedded expiry has passed.
	ErrExpired = errors.New("token: expired")
)

// Service signs and verifies identity tokens. It is pure computation:
// no registry or I/O access, so signature and expiry logic can be
// tested in isolation.
type Service struct {
	secret []byte
	method jwt.SigningMethod
}

// New builds a token service from the configured secret and algorithm
// identifier. The algorithm is fixed at deployment and must be one of
// the HMAC family; anything else is a configuration error surfaced at
// process start.
func New(secret, algorithm string) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: signing secret is empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: algorithm %q is not an HMAC method", algorithm)
	}

	return &Service{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue signs a token carrying the subject and an absolute expiry of
// now+ttl. The jti claim makes concurrent logins for the same subject
// produce distinct tokens.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded
// subject and expiry time.
func (s *Service) Verify(tokenString string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, ErrExpired
		}
		return "", time.Time{}, ErrSignatureInvalid
	}

	if claims.Subject == "" {
		return "", time.Time{}, ErrSignatureInvalid
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}
