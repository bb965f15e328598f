// Package utils provides small helpers shared by the sync client and the
// document server: context keys, bearer tokens, id generation, JSON
// responses and the resty-based HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated user id (the token subject).
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext retrieves the user identifier stored by WithUserID.
// ok is false when the value is missing, empty or of another type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}
