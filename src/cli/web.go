package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guest_list_services/src/app"
	"guest_list_services/src/web"

	"github.com/spf13/cobra"
)

func NewWebCommand(opts *RootOptions) *cobra.Command {
	var addr string
	var persistRemove bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Run the guest list web UI against the guest API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.WebAddr
			}
			if cmd.Flags().Changed("persist-remove") {
				cfg.PersistRemove = persistRemove
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			guestApp := app.New(newAPIClient(cmd, opts, cfg), app.Options{PersistRemove: cfg.PersistRemove})
			defer guestApp.Close()

			page, err := web.NewServer(guestApp)
			if err != nil {
				return WrapExitError(ExitCommandError, "load page template", err)
			}
			verbosef(cmd, opts, "Loading guests, persist remove=%t", cfg.PersistRemove)
			page.Start(ctx)

			server := &http.Server{
				Addr:              addr,
				Handler:           page.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Guest list UI is starting on %v...\n", addr)
			return runServer(ctx, server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $GUESTLIST_WEB_ADDR or :3000)")
	cmd.Flags().BoolVar(&persistRemove, "persist-remove", false, "delete guests on the server when removed (default $GUESTLIST_PERSIST_REMOVE)")

	return cmd
}
