package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT).
// Tokens carry the user's id and role; use cases stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
