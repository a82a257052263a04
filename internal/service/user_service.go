package service

import (
	"context"
	"strings"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
)

// UserService manages accounts. Plaintext passwords never reach the repository.
type UserService struct {
	*Resource[domain.User, domain.UserPatch]
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(repo repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		Resource:   NewResource[domain.User, domain.UserPatch]("user", repo, (*domain.User).Validate),
		users:      repo,
		bcryptCost: bcryptCost,
	}
}

// Create hashes user.Password before validation and storage.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Password != "" {
		if err := domain.ValidatePassword(user.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(user.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.Password = ""
	}
	return s.Resource.Create(ctx, user)
}

// Update hashes a new password when one is supplied.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		if err := domain.ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &email
	}
	return s.Resource.Update(ctx, id, patch)
}

// Admins returns the users holding the admin role.
func (s *UserService) Admins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRoleName(ctx, domain.RoleAdmin)
}
