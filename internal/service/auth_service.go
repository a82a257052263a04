package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Profile is the signed-in user together with the name of their role.
type Profile struct {
	User *domain.User `json:"user"`
	Role string       `json:"role"`
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	RoleRepo repository.RoleRepository
	Tokens   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	}
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		tokenMgr:   tokens,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates an account holding the default "user" role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	role, err := s.defaultRole(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash, RoleID: &role.ID}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	// A concurrent registration of the same email trips the unique index.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("user", "", err)
	}
	return &Profile{User: user, Role: role.Name}, nil
}

// Login verifies credentials and issues a token carrying {sub, email, role}.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	roleName, err := s.roleName(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Email, roleName)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user, Role: roleName}, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*Profile, error) {
	if !validID(userID) {
		return nil, apperrors.NewUnauthorized("user not found")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, err
	}
	roleName, err := s.roleName(ctx, user)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Role: roleName}, nil
}

func (s *AuthService) roleName(ctx context.Context, user *domain.User) (string, error) {
	if user.RoleID == nil {
		return "", nil
	}
	role, err := s.roles.GetByID(ctx, *user.RoleID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return role.Name, nil
}

func (s *AuthService) defaultRole(ctx context.Context) (*domain.Role, error) {
	role, err := s.roles.GetByName(ctx, domain.RoleUser)
	if err == nil {
		return role, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}
	role = &domain.Role{Name: domain.RoleUser}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
