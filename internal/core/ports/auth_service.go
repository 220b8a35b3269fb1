package ports

import "context"

// AuthService handles registration and authentication. Both entry points
// return a freshly minted token for the resulting identity.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// TokenService issues and validates signed tokens carrying an identity.
type TokenService interface {
	// Generate mints a token with subject=identity plus any extra claims.
	Generate(identity string, extra map[string]any) (string, error)
	// ExtractIdentity verifies the token and returns its subject. Returns
	// domain.ErrTokenExpired for expired tokens and domain.ErrTokenInvalid
	// for anything else that fails to parse or verify.
	ExtractIdentity(token string) (string, error)
	// IsValid reports whether the token verifies, is unexpired, and carries
	// the expected identity as its subject.
	IsValid(token, expectedIdentity string) bool
}
