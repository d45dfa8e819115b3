package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/restaurant-orders/api/middleware"
	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/auth"
	"github.com/irsalhamdi/restaurant-orders/core/cart"
	"github.com/irsalhamdi/restaurant-orders/core/category"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/core/item"
	"github.com/irsalhamdi/restaurant-orders/core/like"
	"github.com/irsalhamdi/restaurant-orders/core/order"
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/irsalhamdi/restaurant-orders/core/user"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// AdminConfig wires the admin gateway mux.
type AdminConfig struct {
	CorsOrigin    string
	Log           logrus.FieldLogger
	DB            *sqlx.DB
	SessionCodec  *session.Codec
	SessionCookie string
	LoginPath     string
	PublicPaths   []string
	LoginLimiter  *rate.Limiter
}

// CustomerConfig wires the customer gateway mux.
type CustomerConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	SessionCodec     *session.Codec
	SessionCookie    string
	LoginPath        string
	PublicPaths      []string
	LoginLimiter     *rate.Limiter
	Providers        map[string]auth.Provider
	Processors       map[string]order.Processor
	LoginRedirectURL string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

// AdminMux builds the admin gateway. Every route outside the public
// prefixes passes the guard, and the mutating ones additionally require
// the ADMIN role.
func AdminMux(cfg AdminConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	guard := auth.Guard(auth.GuardConfig{
		Log: cfg.Log,
		Verifiers: []auth.Verifier{
			auth.CookieVerifier{Cookie: cfg.SessionCookie, Codec: cfg.SessionCodec},
		},
		PublicPaths:   cfg.PublicPaths,
		LoginPath:     cfg.LoginPath,
		SessionCookie: cfg.SessionCookie,
	})

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())
	a.cors(cfg.CorsOrigin)
	a.mw = append(a.mw, guard)

	limited := middleware.RateLimit(cfg.LoginLimiter)
	admin := auth.Admin()

	a.Handle(http.MethodPost, "/auth", auth.HandleLogin(cfg.DB, cfg.SessionCodec, cfg.SessionCookie, claims.RoleAdmin), limited)
	a.Handle(http.MethodGet, "/logout", auth.HandleLogout(cfg.SessionCookie))
	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB), admin)
	a.Handle(http.MethodPost, "/categories/create", category.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/categories/{id}", category.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/items", item.HandleList(cfg.DB), admin)
	a.Handle(http.MethodGet, "/search", item.HandleSearch(cfg.DB), admin)
	a.Handle(http.MethodPost, "/items/create", item.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPost, "/items/{id}/edit", item.HandleEdit(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/items/{id}", item.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/orders", order.HandleListAll(cfg.DB), admin)

	return a.Router
}

// CustomerMux builds the customer gateway: public browsing and cart,
// guarded likes, orders and checkout, both credential schemes.
func CustomerMux(cfg CustomerConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	guard := auth.Guard(auth.GuardConfig{
		Log: cfg.Log,
		Verifiers: []auth.Verifier{
			auth.CookieVerifier{Cookie: cfg.SessionCookie, Codec: cfg.SessionCodec},
			auth.ProviderVerifier{DB: cfg.DB, Providers: cfg.Providers},
		},
		PublicPaths:   cfg.PublicPaths,
		LoginPath:     cfg.LoginPath,
		SessionCookie: cfg.SessionCookie,
	})

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())
	a.cors(cfg.CorsOrigin)
	a.mw = append(a.mw, guard)

	limited := middleware.RateLimit(cfg.LoginLimiter)
	authen := auth.Authenticate()

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.SessionCodec, cfg.SessionCookie), limited)
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.SessionCodec, cfg.SessionCookie, ""), limited)
	a.Handle(http.MethodGet, "/auth/logout", auth.HandleLogout(cfg.SessionCookie))
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Providers, cfg.LoginRedirectURL))
	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/items/{id}", item.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/search", item.HandleSearch(cfg.DB))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.Log))
	a.Handle(http.MethodPost, "/cart", cart.HandleAdd(cfg.DB, cfg.Log))
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleRemoveItem(cfg.Log))

	a.Handle(http.MethodPost, "/likes/{id}", like.HandleToggle(cfg.DB), authen)
	a.Handle(http.MethodGet, "/likes", like.HandleList(cfg.DB), authen)

	a.Handle(http.MethodPost, "/payment", order.HandleCheckout(cfg.DB, cfg.Processors, cfg.Log), authen)
	a.Handle(http.MethodGet, "/orders", order.HandleListOwn(cfg.DB), authen)

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)

	return a.Router
}

func (a *api) cors(origin string) {
	if origin == "" {
		return
	}

	a.mw = append(a.mw, middleware.Cors(origin))

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	a.Handle(http.MethodOptions, "/{path:.*}", h)
}

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := database.StatusCheck(ctx, db); err != nil {
			return weberr.NewError(err, "database unavailable", http.StatusServiceUnavailable)
		}
		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
