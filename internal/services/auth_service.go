package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
)

// authService checks logins against a single configured credential pair.
type authService struct {
	username     string
	passwordHash []byte
}

// NewAuthService creates a new AuthServicer. When passwordHash is empty the
// plaintext password is hashed once here.
func NewAuthService(username, password, passwordHash string) (AuthServicer, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, fmt.Errorf("no password configured for %q", username)
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}

	return &authService{username: username, passwordHash: hash}, nil
}

// Authenticate returns ErrInvalidCredentials unless both values match.
func (s *authService) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		logger.Get().Warnw("failed login attempt", "username", username)
		return apperrors.ErrInvalidCredentials
	}
	return nil
}
