package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// ResourceService is the CRUD contract every entity service satisfies.
type ResourceService[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// CreateRequest decodes into a new entity.
type CreateRequest[T any] interface {
	Validate() (*T, error)
}

// PatchRequest decodes into a partial update.
type PatchRequest[P any] interface {
	Patch() (P, error)
}

// ResourceHandler serves list/get/create/update/delete for one entity. C and U are the
// request payload types for create and update.
type ResourceHandler[T any, P any, C CreateRequest[T], U PatchRequest[P]] struct {
	service ResourceService[T, P]
}

// NewResourceHandler constructs the handler.
func NewResourceHandler[T any, P any, C CreateRequest[T], U PatchRequest[P]](svc ResourceService[T, P]) *ResourceHandler[T, P, C, U] {
	return &ResourceHandler[T, P, C, U]{service: svc}
}

// List GET /<resource>.
func (h *ResourceHandler[T, P, C, U]) List(c *fiber.Ctx) error {
	items, err := h.service.List(requestContext(c))
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

// Get GET /<resource>/:id.
func (h *ResourceHandler[T, P, C, U]) Get(c *fiber.Ctx) error {
	item, err := h.service.GetByID(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Create POST /<resource>.
func (h *ResourceHandler[T, P, C, U]) Create(c *fiber.Ctx) error {
	var req C
	if err := parseBody(c, &req); err != nil {
		return err
	}
	entity, err := req.Validate()
	if err != nil {
		return err
	}
	created, err := h.service.Create(requestContext(c), entity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update PATCH /<resource>/:id.
func (h *ResourceHandler[T, P, C, U]) Update(c *fiber.Ctx) error {
	var req U
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.Patch()
	if err != nil {
		return err
	}
	updated, err := h.service.Update(requestContext(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// Delete DELETE /<resource>/:id. Responds with the deleted record.
func (h *ResourceHandler[T, P, C, U]) Delete(c *fiber.Ctx) error {
	deleted, err := h.service.Delete(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(deleted)
}

// requestContext carries the request deadline and the caller's id into services.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if principal, ok := auth.PrincipalFromContext(c); ok {
		ctx = service.WithActor(ctx, principal.UserID)
	}
	return ctx
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	}
	return nil
}
