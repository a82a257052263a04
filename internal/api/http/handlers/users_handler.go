package handlers

import (
	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// UsersHandler serves account management for administrators.
type UsersHandler = ResourceHandler[domain.User, domain.UserPatch, dto.CreateUserRequest, dto.UpdateUserRequest]

// NewUsersHandler constructs handler.
func NewUsersHandler(users ResourceService[domain.User, domain.UserPatch]) *UsersHandler {
	return NewResourceHandler[domain.User, domain.UserPatch, dto.CreateUserRequest, dto.UpdateUserRequest](users)
}
