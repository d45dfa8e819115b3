package config

import "time"

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:restaurant"`
	DisableTLS bool   `conf:"default:true"`
}

// Auth configures the signed-cookie session scheme. Tokens are
// self-contained: once issued they stay valid until TTL elapses.
type Auth struct {
	Secret        string        `conf:"required,mask"`
	SessionTTL    time.Duration `conf:"default:10m"`
	SessionCookie string
	LoginPath     string `conf:"default:/login"`

	// PublicPaths is the prefix list the guard lets through unchecked.
	// Each gateway fills in its own default when the list is empty.
	PublicPaths []string
}

type Cors struct {
	Origin string
}

type Stripe struct {
	APISecret  string `conf:"mask"`
	SuccessURL string `conf:"default:http://localhost:3000/success"`
	CancelURL  string `conf:"default:http://localhost:3000/canceled"`
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}

type OauthProvider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string
	RedirectURL string
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string        `conf:"default:http://localhost:3000"`
	Google           OauthProvider
}

type RateLimit struct {
	Burst       int           `conf:"default:5"`
	ExpiryMins  int           `conf:"default:10"`
	MinInterval time.Duration `conf:"default:1s"`
}

// Admin is the configuration of the admin gateway.
type Admin struct {
	Web   Web
	DB    DB
	Auth  Auth
	Cors  Cors
	Limit RateLimit
}

// Customer is the configuration of the customer gateway. It carries the
// payment and oauth sections the admin gateway has no use for.
type Customer struct {
	Web    Web
	DB     DB
	Auth   Auth
	Cors   Cors
	Limit  RateLimit
	Stripe Stripe
	Paypal Paypal
	Oauth  Oauth
}
