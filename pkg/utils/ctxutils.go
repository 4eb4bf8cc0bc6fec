package utils

import (
	"context"

	"academy-manager/pkg/contextkeys"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"
)

func WithPrincipal(ctx context.Context, principal types.Principal) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, principal.ID)
	return context.WithValue(ctx, contextkeys.PrincipalKey, principal)
}

func GetPrincipalFromCtx(ctx context.Context) (types.Principal, error) {
	principal, ok := ctx.Value(contextkeys.PrincipalKey).(types.Principal)
	if !ok || principal.ID == 0 {
		return types.Principal{}, apperrors.ErrUnauthorized
	}
	return principal, nil
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserNotFound
	}
	return userID, nil
}
