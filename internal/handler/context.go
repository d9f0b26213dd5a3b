package handlers

import (
	"context"

	"portfolioCMS/internal/service"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "requestID"
)

func WithActor(ctx context.Context, actor service.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the authenticated caller, or the zero Actor for anonymous requests.
func ActorFrom(ctx context.Context) service.Actor {
	actor, _ := ctx.Value(actorKey).(service.Actor)
	return actor
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
