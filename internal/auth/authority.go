package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/logger"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/session"
)

// CredentialVerifier checks a username/password pair against the
// credential store.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// TokenService signs and verifies identity tokens. Implementations
// are pure computations and never block on I/O.
type TokenService interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (subject string, expiresAt time.Time, err error)
}

const defaultCallTimeout = 5 * time.Second

// Authority orchestrates credential verification, token issuance and
// the session registry. It is stateless itself; all shared state
// lives behind the injected dependencies, and no lock is held across
// a request.
type Authority struct {
	credentials CredentialVerifier
	tokens      TokenService
	sessions    session.Store
	ttl         time.Duration
	callTimeout time.Duration
}

func NewAuthority(
	credentials CredentialVerifier,
	tokens TokenService,
	sessions session.Store,
	ttl time.Duration,
) *Authority {
	return &Authority{
		credentials: credentials,
		tokens:      tokens,
		sessions:    sessions,
		ttl:         ttl,
		callTimeout: defaultCallTimeout,
	}
}

// Login verifies credentials, issues a signed token and records it in
// the registry. The registry entry's TTL equals the token's embedded
// expiry horizon. If the registry write fails the token is discarded:
// a token not recorded in the registry could never be revoked, so it
// must never be handed out.
func (a *Authority) Login(ctx context.Context, username, password string) (string, Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	identity, err := a.credentials.Authenticate(callCtx, username, password)
	cancel()
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", Identity{}, ErrInvalidCredentials
		}
		logger.Error("credential store unreachable", map[string]any{
			"error": err.Error(),
		})
		return "", Identity{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}

	tok, err := a.tokens.Issue(strconv.FormatInt(identity.ID, 10), a.ttl)
	if err != nil {
		return "", Identity{}, fmt.Errorf("issue token: %w", err)
	}

	entry := session.Entry{
		UserID:    identity.ID,
		Username:  identity.Username,
		ExpiresAt: time.Now().Add(a.ttl),
	}

	callCtx, cancel = context.WithTimeout(ctx, a.callTimeout)
	err = a.sessions.Put(callCtx, tok, entry, a.ttl)
	cancel()
	if err != nil {
		logger.Error("session registry unreachable", map[string]any{
			"error": err.Error(),
		})
		return "", Identity{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}

	return tok, identity, nil
}

// Authorize resolves a token to its owning identity. A token is
// authorized only when its signature is valid, its embedded expiry
// has not passed, and a registry entry for that exact token exists.
// Registry absence, signature failure and expiry are all reported
// uniformly as ErrUnauthorized.
func (a *Authority) Authorize(ctx context.Context, tok string) (Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	entry, err := a.sessions.Get(callCtx, tok)
	cancel()
	if err != nil {
		logger.Error("session registry unreachable", map[string]any{
			"error": err.Error(),
		})
		return Identity{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	if entry == nil {
		// Never issued, logged out, or evicted by the registry TTL.
		return Identity{}, ErrUnauthorized
	}

	// The verifier is authoritative even while a registry entry still
	// exists: registry TTL drift must not extend a token's life.
	subject, _, err := a.tokens.Verify(tok)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	// Cross-check the signed subject against the registry entry to
	// guard against registry corruption.
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID != entry.UserID {
		return Identity{}, ErrUnauthorized
	}

	return Identity{ID: entry.UserID, Username: entry.Username}, nil
}

// Logout removes the token's registry entry unconditionally, without
// inspecting signature or expiry. The signed token stays
// cryptographically valid until its embedded expiry but can no longer
// authorize. Reports ErrNotFound if no entry existed.
func (a *Authority) Logout(ctx context.Context, tok string) error {
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	existed, err := a.sessions.Delete(callCtx, tok)
	cancel()
	if err != nil {
		logger.Error("session registry unreachable", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}
