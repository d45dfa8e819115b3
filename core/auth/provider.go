package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type ProviderConfig struct {
	Name        string
	Client      string
	Secret      string
	URL         string
	RedirectURL string
}

// Provider bundles the oauth2 flow configuration and the id-token
// verifier discovered from the provider's oidc metadata.
type Provider struct {
	Name     string
	OAuth    *oauth2.Config
	Verifier *oidc.IDTokenVerifier
}

// MakeProviders runs oidc discovery for each configured provider.
// Discovery is a network call, hence the context.
func MakeProviders(ctx context.Context, cfgs []ProviderConfig) (map[string]Provider, error) {
	provs := make(map[string]Provider, len(cfgs))

	for _, cfg := range cfgs {
		p, err := oidc.NewProvider(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("discovering provider %q at %q: %w", cfg.Name, cfg.URL, err)
		}

		provs[cfg.Name] = Provider{
			Name: cfg.Name,
			OAuth: &oauth2.Config{
				ClientID:     cfg.Client,
				ClientSecret: cfg.Secret,
				RedirectURL:  cfg.RedirectURL,
				Endpoint:     p.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
			Verifier: p.Verifier(&oidc.Config{ClientID: cfg.Client}),
		}
	}

	return provs, nil
}
