package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/restaurant-orders/api"
	"github.com/irsalhamdi/restaurant-orders/config"
	"github.com/irsalhamdi/restaurant-orders/core/auth"
	"github.com/irsalhamdi/restaurant-orders/core/order"
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/rate"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting customer gateway")
	defer logger.Info("shutdown complete")

	const prefix = "CUSTOMER"
	var cfg config.Customer
	if help, err := conf.Parse(prefix, &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Auth.SessionCookie == "" {
		cfg.Auth.SessionCookie = "customer_session"
	}
	if len(cfg.Auth.PublicPaths) == 0 {
		cfg.Auth.PublicPaths = []string{
			"/auth", "/login", "/signup", "/health",
			"/categories", "/items", "/search", "/cart",
		}
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	codec := session.NewCodec(cfg.Auth.Secret, cfg.Auth.SessionTTL)

	limiter := rate.NewLimiter(cfg.Limit.Burst, cfg.Limit.ExpiryMins, rate.Every(cfg.Limit.MinInterval))

	procs := make(map[string]order.Processor)

	if cfg.Stripe.APISecret != "" {
		strp := &stripecl.API{}
		strp.Init(cfg.Stripe.APISecret, nil)
		procs["card"] = order.StripeProcessor{API: strp}
	}

	if cfg.Paypal.ClientID != "" {
		pp, err := paypal.NewClient(cfg.Paypal.ClientID, cfg.Paypal.Secret, cfg.Paypal.URL)
		if err != nil {
			return fmt.Errorf("failed to build the paypal client: %w", err)
		}
		if _, err = pp.GetAccessToken(context.TODO()); err != nil {
			return fmt.Errorf("failed to get the first paypal access token: %w", err)
		}
		procs["paypal"] = order.PaypalProcessor{Client: pp}
	}

	provs := map[string]auth.Provider{}
	if google := cfg.Oauth.Google; google.Client != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Oauth.DiscoveryTimeout)
		defer cancel()

		provs, err = auth.MakeProviders(ctx, []auth.ProviderConfig{
			{Name: "google", Client: google.Client, Secret: google.Secret, URL: google.URL, RedirectURL: google.RedirectURL},
		})
		if err != nil {
			return fmt.Errorf("failed to discover oauth providers: %w", err)
		}
	}

	mux := api.CustomerMux(api.CustomerConfig{
		CorsOrigin:       cfg.Cors.Origin,
		Log:              logger,
		DB:               db,
		SessionCodec:     codec,
		SessionCookie:    cfg.Auth.SessionCookie,
		LoginPath:        cfg.Auth.LoginPath,
		PublicPaths:      cfg.Auth.PublicPaths,
		LoginLimiter:     limiter,
		Providers:        provs,
		Processors:       procs,
		LoginRedirectURL: cfg.Oauth.LoginRedirectURL,
	})

	server := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("customer gateway listening at %s", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
