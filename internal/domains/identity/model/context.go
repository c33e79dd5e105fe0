package model

import (
	"context"
	"kampus/shared/constant"
)

// WithIdentity attaches an already resolved identity to ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if !identity.Authenticated {
		return ctx
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, identity.UserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, identity.Role)
}

func FromContext(ctx context.Context) (Identity, bool) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		return Identity{}, false
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(Role)

	return Identity{UserID: userID, Role: role, Authenticated: true}, true
}
