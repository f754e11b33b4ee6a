package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/db"
)

var ErrAlreadyRegistered = errors.New("username already exists")

// Service is the credential store: it owns user rows and password
// hashes and answers the single question the authority asks of it.
type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Register creates a user with a hashed password. The username must
// be unused.
func (s *Service) Register(
	ctx context.Context,
	username string,
	password string,
) (auth.Identity, error) {

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1
		)
	`, username).Scan(&exists)

	if err != nil {
		return auth.Identity{}, fmt.Errorf("credentials: lookup user: %w", err)
	}
	if exists {
		return auth.Identity{}, ErrAlreadyRegistered
	}

	hash, version, err := HashPassword(password)
	if err != nil {
		return auth.Identity{}, err
	}

	var userID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, hash_version)
		VALUES ($1, $2, $3)
		RETURNING id
	`, username, hash, version).Scan(&userID)

	if err != nil {
		return auth.Identity{}, fmt.Errorf("credentials: insert user: %w", err)
	}

	return auth.Identity{ID: userID, Username: username}, nil
}

// Authenticate verifies a username/password pair. Unknown usernames
// and wrong passwords are reported with the same error; store
// failures are wrapped so the caller can tell them apart from a bad
// password.
func (s *Service) Authenticate(
	ctx context.Context,
	username string,
	password string,
) (auth.Identity, error) {

	var (
		userID       int64
		passwordHash string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&userID, &passwordHash)

	if err == sql.ErrNoRows {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("credentials: query user: %w", err)
	}

	if err := VerifyPassword(passwordHash, password); err != nil {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}

	return auth.Identity{ID: userID, Username: username}, nil
}
