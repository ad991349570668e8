package cli

import (
	"fmt"
	"net/http"

	"guest_list_services/src/client"
	"guest_list_services/src/config"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL  string
	Verbose bool
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "guestlist",
		Short:         "Guest list manager",
		Long:          "Run the guest API and web UI, or manage guests from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", "", "guest API base URL (default $GUESTLIST_API_URL or http://localhost:4000)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWebCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies the global flags on top.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	return cfg, nil
}

func newAPIClient(cmd *cobra.Command, opts *RootOptions, cfg config.Config) *client.Client {
	verbosef(cmd, opts, "Using guest API at %s (timeout %s)", cfg.APIURL, cfg.HTTPTimeout)
	return client.New(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout})
}

func verbosef(cmd *cobra.Command, opts *RootOptions, format string, args ...interface{}) {
	if !opts.Verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
