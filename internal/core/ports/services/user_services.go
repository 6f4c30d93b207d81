package services

import (
	"context"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// UserSvcFacade manages users and credential verification.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, name string, email string, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies email/password and returns the user, or
	// ErrForbidden on bad credentials.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)
}

// TokenSvcFacade issues signed API tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateToken(userID string) (string, error)
}
