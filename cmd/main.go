package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"books_api/internal/config"
	"books_api/internal/handlers"
	"books_api/internal/logger"
	"books_api/internal/repository"
	"books_api/internal/repository/db"
	"books_api/internal/server"
	"books_api/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "books_api",
		Short:        "Book catalog HTTP API with bearer-token login",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yml)")
	bindFlags(v, cmd.Flags())

	cmd.AddCommand(newHashPasswordCmd())
	return cmd
}

// bindFlags registers flags that override config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String("port", "", "HTTP port (overrides port)")
	flags.Bool("reset-db", false, "wipe stored data on startup (overrides db.reset_on_start)")

	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("db.reset_on_start", flags.Lookup("reset-db"))
}

// serve wires dependencies and runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config) error {
	// init logger
	log := logger.GetWithFormat(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB
	if cfg.DB.ResetOnStart {
		log.Warnw("db_reset_on_start", "driver", cfg.DB.Driver, "dsn", cfg.DB.DSN)
	}
	conn, err := db.InitDB(db.Options{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.DSN,
		ResetOnStart: cfg.DB.ResetOnStart,
	})
	if err != nil {
		log.Errorw("db_init_failed", "driver", cfg.DB.Driver, "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("db_close_failed", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	creds, err := credentialStore(ctx, cfg.Auth, repos, log)
	if err != nil {
		return err
	}
	tokens, err := service.NewJWTTokens(service.TokenConfig{
		Secret:    cfg.Auth.Secret,
		Algorithm: cfg.Auth.Algorithm,
		TTL:       cfg.Auth.TokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("token config: %w", err)
	}
	services := service.NewService(repos, creds, tokens, log)

	seeded, err := service.SeedBooks(ctx, repos.Books, service.SampleBooks)
	if err != nil {
		log.Errorw("seed_books_failed", "err", err)
		return err
	}
	if seeded {
		log.Infow("seeded_sample_books", "count", len(service.SampleBooks))
	}

	// start HTTP server
	apiHandler := handlers.NewHandler(services, log)
	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	return waitForShutdown(ctx, errCh, srv, log)
}

// credentialStore builds the configured credential table holding the admin account.
func credentialStore(ctx context.Context, auth config.Auth, repos *repository.Repository, log *logger.Logger) (repository.Credentials, error) {
	admin, err := service.AdminAccount(auth.Admin.Username, auth.Admin.FullName, auth.Admin.Email,
		auth.Admin.Password, auth.Admin.PasswordHash)
	if err != nil {
		return nil, err
	}

	switch auth.Store {
	case config.StoreDB:
		created, err := service.EnsureUser(ctx, repos.Users, admin)
		if err != nil {
			log.Errorw("admin_provision_failed", "username", admin.Username, "err", err)
			return nil, err
		}
		if created {
			log.Infow("admin_provisioned", "username", admin.Username)
		}
		return repos.Users, nil
	default:
		return repository.NewStaticCredentials(admin), nil
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_server_starting", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// waitForShutdown blocks until ctx is cancelled or the server fails, then
// stops the server allowing in-flight requests to complete.
func waitForShutdown(ctx context.Context, errCh <-chan error, srv *server.Server, log *logger.Logger) error {
	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("http_server_failed", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
