package auth

import "context"

// Caller is the authenticated identity every service call acts on behalf of.
type Caller struct {
	UserID     string
	EmployeeID string
	IsAdmin    bool
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored by the auth middleware.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// CallerFromClaims builds a Caller from access-token claims.
func CallerFromClaims(claims map[string]any) (Caller, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Caller{}, ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Caller{}, ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return Caller{}, ErrNoEmployeeProfile
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return Caller{UserID: userID, EmployeeID: employeeID, IsAdmin: isAdmin}, nil
}
