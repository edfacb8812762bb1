package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the only role the admin gate issues.
const AdminRole = "admin"

// AdminAuthService checks the single configured admin credential.
type AdminAuthService struct {
	username     string
	passwordHash []byte
}

// NewAdminAuthService hashes password once so the plain text is not kept.
func NewAdminAuthService(username, password string) (*AdminAuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminAuthService{username: username, passwordHash: hash}, nil
}

// Login authenticates the admin. Both a wrong username and a wrong password
// return ErrInvalidCredentials.
func (s *AdminAuthService) Login(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// always run bcrypt so timing does not reveal the username
	pwErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || pwErr != nil {
		slog.Warn("Admin login rejected", "username", username)
		return ErrInvalidCredentials
	}
	slog.Info("Admin logged in", "username", username)
	return nil
}
