package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/sirupsen/logrus"
)

// GuardConfig configures the per-request access gate.
type GuardConfig struct {
	Log logrus.FieldLogger

	// Verifiers are tried in order; the first success authenticates
	// the request.
	Verifiers []Verifier

	// PublicPaths are path prefixes that pass without any check.
	PublicPaths []string

	// LoginPath receives redirected browser requests, with the original
	// path in the "from" parameter.
	LoginPath string

	// SessionCookie is cleared alongside the id token cookie whenever a
	// request carries credentials that no longer verify.
	SessionCookie string
}

// Guard classifies each request as public or protected and, for protected
// paths, requires one credential scheme to verify. It proves identity
// only; role checks remain with the endpoints behind it.
func Guard(cfg GuardConfig) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if public(cfg.PublicPaths, r.URL.Path) {
				return handler(ctx, w, r)
			}

			for _, v := range cfg.Verifiers {
				clm, err := v.Verify(r)
				if err == nil {
					return handler(claims.Set(ctx, clm), w, r)
				}
				if cfg.Log != nil && !errors.Is(err, errNoCredentials) {
					cfg.Log.WithFields(logrus.Fields{
						"path":   r.URL.Path,
						"reason": err,
					}).Info("credential rejected")
				}
			}

			// Stale or invalid credentials are actively removed so the
			// client does not keep presenting them.
			session.ClearCookie(w, cfg.SessionCookie)
			session.ClearCookie(w, IDTokenCookie)

			if web.WantsHTML(r) {
				web.Redirect(w, r, cfg.LoginPath, r.URL.Path)
				return nil
			}

			return weberr.NotAuthorized(errors.New("request to protected path without valid credentials"))
		}
		return h
	}
	return m
}

func public(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// Authenticate requires that the guard attached claims to the request.
func Authenticate() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin requires an authenticated identity carrying the ADMIN role. A
// valid identity with the wrong role is a 403, not a 401.
func Admin() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}
			if !claims.IsAdmin(ctx) {
				return weberr.Forbidden(errors.New("user role does not permit this operation"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
