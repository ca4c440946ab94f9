// Package auth turns a bearer credential into a verified caller identity.
// The Verifier interface keeps the identity provider pluggable; the
// default implementation checks HS256 JWTs.
package auth

import "context"

// Identity is the verified caller of a request.
type Identity struct {
	Email   string
	Subject string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
