package service

import (
	"context"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

type actorKey struct{}

// WithActor records the acting user id on ctx. Services stamp it on the events they write.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user id, or the system actor when none was set.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id
	}
	return domain.SystemActor
}
