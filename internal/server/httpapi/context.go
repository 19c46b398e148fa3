package httpapi

import (
	"context"

	"github.com/dmitrijs2005/dwitter/internal/server/models"
)

type principalKey struct{}
type tokenKey struct{}

// WithPrincipal stores the authenticated principal and the token it was
// resolved from in ctx.
func WithPrincipal(ctx context.Context, p models.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, principalKey{}, p)
	return context.WithValue(ctx, tokenKey{}, token)
}

// PrincipalFromContext returns the principal attached by the auth middleware.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}

// TokenFromContext returns the raw bearer token of the current request.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok
}

type shutdownKey struct{}

func withShutdown(ctx context.Context, ch <-chan struct{}) context.Context {
	return context.WithValue(ctx, shutdownKey{}, ch)
}

// shutdownSignal is closed when the server starts shutting down. It is nil,
// and so never ready, outside an HTTPServer.
func shutdownSignal(ctx context.Context) <-chan struct{} {
	ch, _ := ctx.Value(shutdownKey{}).(<-chan struct{})
	return ch
}
