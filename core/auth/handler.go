package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/irsalhamdi/restaurant-orders/core/user"
	"github.com/irsalhamdi/restaurant-orders/random"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const stateCookie = "oauth_state"

const uniqueViolation = "23505"

type success struct {
	Success bool `json:"success"`
}

// HandleSignup registers a new customer account and logs it in right
// away by issuing a session cookie.
func HandleSignup(db *sqlx.DB, codec *session.Codec, cookieName string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in user.UserSignup
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		u := user.User{
			ID:           validate.GenerateID(),
			Email:        in.Email,
			Name:         in.Name,
			PasswordHash: string(hash),
			Role:         claims.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, u); err != nil {
			var pqerr *pq.Error
			if errors.As(err, &pqerr) && pqerr.Code == uniqueViolation {
				msg := "email is already registered"
				return weberr.NewError(err, msg, http.StatusBadRequest)
			}
			return err
		}

		token, err := codec.Issue(u.ID, u.Email, u.Role)
		if err != nil {
			return fmt.Errorf("issuing session for user[%s]: %w", u.ID, err)
		}
		session.WriteCookie(w, cookieName, token, codec.TTL())

		return web.Respond(ctx, w, u, http.StatusCreated)
	}
}

// HandleLogin checks credentials and issues the session cookie. When
// requiredRole is non-empty a valid identity with a different role is
// rejected with a 403: the admin gateway proves permission here, not
// just identity.
func HandleLogin(db *sqlx.DB, codec *session.Codec, cookieName string, requiredRole string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in user.UserLogin
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		u, err := user.FetchByEmail(ctx, db, in.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Same answer as a wrong password: account existence
				// stays hidden.
				return weberr.NotAuthorized(errors.New("unknown email"))
			}
			return fmt.Errorf("fetching user by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("wrong password"))
		}

		if requiredRole != "" && u.Role != requiredRole {
			return weberr.Forbidden(fmt.Errorf("role %q is not allowed on this gateway", u.Role))
		}

		token, err := codec.Issue(u.ID, u.Email, u.Role)
		if err != nil {
			return fmt.Errorf("issuing session for user[%s]: %w", u.ID, err)
		}
		session.WriteCookie(w, cookieName, token, codec.TTL())

		return web.Respond(ctx, w, success{true}, http.StatusOK)
	}
}

// HandleLogout clears the auth cookies. The session token itself cannot
// be revoked and stays valid until its TTL elapses.
func HandleLogout(cookieName string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		session.ClearCookie(w, cookieName)
		session.ClearCookie(w, IDTokenCookie)

		if web.WantsHTML(r) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return nil
		}
		return web.Respond(ctx, w, success{true}, http.StatusOK)
	}
}

// HandleOauthLogin starts the provider flow, pinning an anti-forgery
// state value in a short-lived cookie.
func HandleOauthLogin(providers map[string]Provider) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")
		p, ok := providers[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", name))
		}

		state, err := random.StringSecure(32)
		if err != nil {
			return fmt.Errorf("generating oauth state: %w", err)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, p.OAuth.AuthCodeURL(state), http.StatusFound)
		return nil
	}
}

// HandleOauthCallback completes the provider flow: it validates state,
// exchanges the code, verifies the returned id token and stores it in
// its own cookie as the second credential scheme the guard accepts. The
// user row is created on first login.
func HandleOauthCallback(db *sqlx.DB, providers map[string]Provider, redirectURL string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")
		p, ok := providers[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", name))
		}

		st, err := r.Cookie(stateCookie)
		if err != nil || st.Value == "" || st.Value != r.URL.Query().Get("state") {
			return weberr.BadRequest(errors.New("oauth state mismatch"))
		}
		session.ClearCookie(w, stateCookie)

		tok, err := p.OAuth.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("exchanging oauth code: %w", err))
		}

		rawIDToken, ok := tok.Extra("id_token").(string)
		if !ok {
			return weberr.BadRequest(errors.New("oauth token without id_token"))
		}

		idToken, err := p.Verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("verifying id token: %w", err))
		}

		var profile struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&profile); err != nil {
			return fmt.Errorf("decoding id token claims: %w", err)
		}

		if _, err := user.FetchByEmail(ctx, db, profile.Email); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("fetching user by email: %w", err)
			}

			now := time.Now().UTC()
			u := user.User{
				ID:        validate.GenerateID(),
				Email:     profile.Email,
				Name:      profile.Name,
				Role:      claims.RoleUser,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := user.Create(ctx, db, u); err != nil {
				return fmt.Errorf("creating user from oauth profile: %w", err)
			}
		}

		ttl := time.Until(idToken.Expiry)
		if ttl <= 0 {
			return weberr.BadRequest(errors.New("id token already expired"))
		}
		session.WriteCookie(w, IDTokenCookie, rawIDToken, ttl)

		http.Redirect(w, r, redirectURL, http.StatusFound)
		return nil
	}
}
