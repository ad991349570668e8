package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guest_list_services/src/config"
	"guest_list_services/src/handlers"
	"guest_list_services/src/inits"
	"guest_list_services/src/search"
	"guest_list_services/src/store"

	"github.com/spf13/cobra"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the guest API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			services, cleanup, err := buildServices(ctx, cfg)
			defer cleanup()
			if err != nil {
				return WrapExitError(ExitCommandError, "start guest API", err)
			}
			verbosef(cmd, opts, "Postgres=%t redis=%t opensearch=%t export bucket=%q",
				cfg.UsesPostgres(), services.Redis != nil, services.Index != nil, cfg.ExportBucket)

			server := &http.Server{
				Addr:              addr,
				Handler:           handlers.NewRouter(services),
				ReadHeaderTimeout: 10 * time.Second,
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Server is starting on %v...\n", addr)
			return runServer(ctx, server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $GUESTLIST_ADDR or :4000)")

	return cmd
}

// buildServices connects the configured backends. cleanup is always safe to call.
func buildServices(ctx context.Context, cfg config.Config) (handlers.Services, func(), error) {
	var services handlers.Services
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.UsesPostgres() {
		connPool, err := inits.CreatePostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return services, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		guests := store.NewPostgres(connPool)
		closers = append(closers, func() { guests.Close() })

		if err := guests.EnsureSchema(ctx); err != nil {
			return services, cleanup, err
		}
		services.Guests = guests
		log.Printf("Storing guests in postgres")
	} else {
		guests, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return services, cleanup, err
		}
		closers = append(closers, func() { guests.Close() })
		services.Guests = guests
		log.Printf("Storing guests in sqlite at %s", cfg.SQLitePath)
	}

	if cfg.RedisAddr != "" {
		rdb, err := inits.CreateRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return services, cleanup, err
		}
		closers = append(closers, func() { rdb.Close() })
		services.Redis = rdb
		log.Printf("Publishing guest events to redis at %s", cfg.RedisAddr)
	}

	if cfg.OpenSearchURL != "" {
		client, err := inits.CreateOpenSearchClient(cfg.OpenSearchURL)
		if err != nil {
			return services, cleanup, err
		}
		index := search.NewIndex(client)
		if err := inits.InitOpenSearch(ctx, services.Guests, index); err != nil {
			return services, cleanup, err
		}
		services.Index = index
		services.Searcher = index
	}

	if cfg.ExportBucket != "" {
		gcpStorage, err := inits.CreateStorageClient(ctx)
		if err != nil {
			return services, cleanup, err
		}
		closers = append(closers, func() { gcpStorage.Close() })
		services.Exporter = handlers.NewBucketWriter(gcpStorage, cfg.ExportBucket)
		log.Printf("Exporting guest lists to bucket %s", cfg.ExportBucket)
	}

	return services, cleanup, nil
}

// runServer serves until ctx ends, then shuts down gracefully.
func runServer(ctx context.Context, server *http.Server) error {
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return WrapExitError(ExitFailure, "error starting the server", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("Shutting down %s", server.Addr)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "shutdown", err)
	}
	return nil
}
