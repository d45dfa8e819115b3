// Package auth implements credential verification and the request guard
// shared by both gateways. Two cookie-borne schemes coexist: the signed
// session token issued by our own login handlers and the id token issued
// by an oauth provider. The guard treats either as proof of identity.
package auth

import (
	"errors"
	"net/http"

	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/irsalhamdi/restaurant-orders/core/user"
	"github.com/jmoiron/sqlx"
)

// IDTokenCookie stores the provider-issued id token after an oauth login.
const IDTokenCookie = "id_token"

var errNoCredentials = errors.New("no credentials presented")

// Verifier checks one credential scheme against a request, returning the
// identity it proves. Verification failure is a normal outcome.
type Verifier interface {
	Verify(r *http.Request) (claims.Claims, error)
}

// CookieVerifier validates our own signed session cookie.
type CookieVerifier struct {
	Cookie string
	Codec  *session.Codec
}

func (v CookieVerifier) Verify(r *http.Request) (claims.Claims, error) {
	ck, err := r.Cookie(v.Cookie)
	if err != nil || ck.Value == "" {
		return claims.Claims{}, errNoCredentials
	}
	return v.Codec.Verify(ck.Value)
}

// ProviderVerifier validates a provider-issued id token cookie against
// the configured oauth providers. The verified email is resolved to the
// local account the oauth callback created, so downstream code always
// sees our own user id and role.
type ProviderVerifier struct {
	DB        *sqlx.DB
	Providers map[string]Provider
}

func (v ProviderVerifier) Verify(r *http.Request) (claims.Claims, error) {
	ck, err := r.Cookie(IDTokenCookie)
	if err != nil || ck.Value == "" {
		return claims.Claims{}, errNoCredentials
	}

	for _, p := range v.Providers {
		tok, err := p.Verifier.Verify(r.Context(), ck.Value)
		if err != nil {
			continue
		}

		var profile struct {
			Email string `json:"email"`
		}
		if err := tok.Claims(&profile); err != nil {
			continue
		}

		u, err := user.FetchByEmail(r.Context(), v.DB, profile.Email)
		if err != nil {
			return claims.Claims{}, errors.New("no local account for verified id token")
		}

		return claims.Claims{
			UserID: u.ID,
			Email:  u.Email,
			Role:   u.Role,
		}, nil
	}

	return claims.Claims{}, errors.New("id token did not verify against any provider")
}
