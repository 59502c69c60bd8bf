package session

import (
	"context"

	"github.com/hegerb/rohlik-admin/internal/domain"
)

type contextKey int

const (
	tokenKey contextKey = iota
	userKey
)

// WithToken attaches the bearer token to the request context so the shop
// client can pick it up without the handlers passing it explicitly.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// WithUser attaches the profile verified by the route guard.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}
