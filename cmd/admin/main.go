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
	"github.com/irsalhamdi/restaurant-orders/core/session"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/rate"
	"github.com/sirupsen/logrus"
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
	logger.Infof("starting admin gateway")
	defer logger.Info("shutdown complete")

	const prefix = "ADMIN"
	var cfg config.Admin
	if help, err := conf.Parse(prefix, &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Auth.SessionCookie == "" {
		cfg.Auth.SessionCookie = "admin_session"
	}
	if len(cfg.Auth.PublicPaths) == 0 {
		cfg.Auth.PublicPaths = []string{"/auth", "/logout", "/health", "/login"}
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

	mux := api.AdminMux(api.AdminConfig{
		CorsOrigin:    cfg.Cors.Origin,
		Log:           logger,
		DB:            db,
		SessionCodec:  codec,
		SessionCookie: cfg.Auth.SessionCookie,
		LoginPath:     cfg.Auth.LoginPath,
		PublicPaths:   cfg.Auth.PublicPaths,
		LoginLimiter:  limiter,
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
		logger.Infof("admin gateway listening at %s", server.Addr)
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
