package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/repository"
)

type authService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newAuthService(users repository.UserRepository, log zerolog.Logger) AuthService {
	return &authService{
		users: users,
		log:   log.With().Str("service", "auth").Logger(),
	}
}

// Authenticate looks up the account by email and verifies the password
// against the stored bcrypt hash. Unknown email, wrong password, and a
// deactivated account all resolve to (nil, nil).
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, nil
	}

	return user, nil
}
