// Package actorctx carries the authenticated caller on a context.Context so
// code below the HTTP layer can see who is acting.
package actorctx

import "context"

type Actor struct {
	UserID   string
	Email    string
	Rol      string
	Username string
}

type actorKey struct{}

func With(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func From(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && a.UserID != ""
}
