package context

import (
	"context"
)

// UserContext contains authenticated user information.
// Roles mirror the original front office: Owner, Branch Manager, Sales Associate, Inventory Staff.
type UserContext struct {
	UserID   string
	BranchID string
	Name     string
	Role     string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetBranchID returns the branch the user operates in, or empty string.
func GetBranchID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.BranchID
	}
	return ""
}

// HasRole checks if the user has a specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
