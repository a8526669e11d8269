// Package sso implements third-party sign-in. Providers return identity
// facts only; user creation, session handling and redirects happen in the
// HTTP layer.
package sso

import (
	"context"
	"fmt"
)

// Identity is the normalized result of a provider token exchange.
type Identity struct {
	Provider   string // provider identifier (google, github, twitter, meta)
	ProviderID string // stable user id at the provider
	Email      string // may be empty when the provider withholds it
	Name       string
	AvatarURL  string
}

// Provider is the contract every external auth provider implements.
type Provider interface {
	// Name returns the provider identifier used in routes and storage.
	Name() string

	// AuthCodeURL returns the provider authorization URL for the given
	// anti-forgery state. Providers that require PKCE derive the challenge
	// from the state, which the caller persists for the callback.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for provider credentials and
	// returns a normalized identity. verifier is the state value the caller
	// stored at redirect time; providers without PKCE ignore it. Callers
	// bound the call with a context deadline; implementations must honour it
	// on every outbound request.
	Exchange(ctx context.Context, code, verifier string) (*Identity, error)
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers. Nil entries are skipped so
// callers can pass constructors that returned nothing for unconfigured
// providers.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider)
	for _, p := range list {
		if p != nil {
			m[p.Name()] = p
		}
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or an error when not configured.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown sso provider: %s", name)
	}
	return p, nil
}
