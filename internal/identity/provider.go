// Package identity defines the external identity-provider collaborator.
// The actual OAuth mechanics live outside this system; a Provider is a
// black box that either yields a complete identity or fails.
package identity

import (
	"context"
	"errors"

	"github.com/meowcraft/launcher/internal/model"
)

// Errors
var (
	ErrLoginCancelled      = errors.New("login cancelled by user")
	ErrProviderUnavailable = errors.New("no identity provider is configured")
)

// Identity is the result of a completed provider login. All three
// fields are trusted verbatim; no local validation or derivation.
type Identity struct {
	ID          model.IdentityID
	DisplayName string
	AccessToken string
}

// Provider runs an external authentication flow
type Provider interface {
	Login(ctx context.Context) (Identity, error)
}

// Unavailable returns a Provider that always fails with
// ErrProviderUnavailable. Used when no federated login is wired in.
func Unavailable() Provider {
	return unavailableProvider{}
}

type unavailableProvider struct{}

func (unavailableProvider) Login(ctx context.Context) (Identity, error) {
	return Identity{}, ErrProviderUnavailable
}
