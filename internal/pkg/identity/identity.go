package identity

import "context"

// Identity is the caller attached to a request after the bearer token has
// been verified with the identity provider.
type Identity struct {
	ID    string
	Email string
}

// Verifier exchanges a bearer token for a caller identity. The identity
// provider itself (token issuance, sign-in) is an external collaborator;
// this is the only surface the portal needs from it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
