// Package identity is the boundary to the external identity provider.
//
// The platform never issues or stores credentials itself: bearer tokens
// are verified against the provider's signing keys, and accounts are
// provisioned through its admin API during registration approval. A
// self-contained dev provider backed by the app database stands in when
// no external provider is configured.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when a credential is absent, malformed,
// expired, or rejected by the provider.
var ErrUnauthenticated = errors.New("identity: credential rejected")

// ErrRejected is returned when the provider refuses to create an
// account (weak password, email already registered, etc.).
var ErrRejected = errors.New("identity: account rejected by provider")

// Verifier validates a bearer credential and resolves the provider
// subject id. Implementations are pure verification calls; they never
// mutate state.
type Verifier interface {
	VerifyCredential(ctx context.Context, token string) (subjectID string, err error)
}

// Provisioner creates provider accounts during registration approval.
type Provisioner interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (subjectID string, err error)
}

// Provider is the full identity provider surface the app consumes.
type Provider interface {
	Verifier
	Provisioner
}
