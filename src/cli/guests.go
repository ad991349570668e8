package cli

import (
	"encoding/json"
	"fmt"

	m "guest_list_services/src/models"

	"github.com/spf13/cobra"
)

func NewListCommand(opts *RootOptions) *cobra.Command {
	var format string
	var onlyAttending, onlyNotAttending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the guest list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats))
			}
			if onlyAttending && onlyNotAttending {
				return NewExitError(ExitCommandError, "--attending and --not-attending are mutually exclusive")
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			guests, err := newAPIClient(cmd, opts, cfg).ListGuests(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "list guests", err)
			}

			verbosef(cmd, opts, "Fetched %d guests", len(guests))

			attending, notAttending := m.PartitionByAttendance(guests)
			switch {
			case onlyAttending:
				guests = attending
			case onlyNotAttending:
				guests = notAttending
			}

			return WriteGuests(cmd.OutOrStdout(), format, guests)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json|yaml)")
	cmd.Flags().BoolVar(&onlyAttending, "attending", false, "only attending guests")
	cmd.Flags().BoolVar(&onlyNotAttending, "not-attending", false, "only guests not attending")

	return cmd
}

func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add FIRST_NAME LAST_NAME",
		Short: "Add a guest (not attending)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			created, err := newAPIClient(cmd, opts, cfg).CreateGuest(cmd.Context(), m.NewGuest(args[0], args[1]))
			if err != nil {
				return WrapExitError(ExitFailure, "add guest", err)
			}

			verbosef(cmd, opts, "Created guest %s", created.ID)
			writeGuestLine(cmd.OutOrStdout(), "Added", created)
			return nil
		},
	}
}

func NewToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a guest's attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			api := newAPIClient(cmd, opts, cfg)

			guest, err := api.GetGuest(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "toggle attending", err)
			}
			verbosef(cmd, opts, "Fetched guest %s, attending=%t", guest.ID, guest.Attending)
			guest.Attending = !guest.Attending

			updated, err := api.UpdateGuest(cmd.Context(), guest)
			if err != nil {
				return WrapExitError(ExitFailure, "toggle attending", err)
			}

			writeGuestLine(cmd.OutOrStdout(), "Updated", updated)
			return nil
		},
	}
}

func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a guest on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			if err := newAPIClient(cmd, opts, cfg).DeleteGuest(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "remove guest", err)
			}

			verbosef(cmd, opts, "Deleted guest %s", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search LOOKUP",
		Short: "Find guests by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			results, err := newAPIClient(cmd, opts, cfg).SearchGuests(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "search guests", err)
			}

			verbosef(cmd, opts, "Found %d matches for %q", len(results), args[0])

			guests := make([]m.Guest, 0, len(results))
			for _, result := range results {
				guests = append(guests, m.Guest{
					ID:        result.ID,
					FirstName: result.FirstName,
					LastName:  result.LastName,
					Attending: result.Attending,
				})
			}
			return WriteGuests(cmd.OutOrStdout(), "text", guests)
		},
	}
}

func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Snapshot the guest list to the configured storage bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			receipt, err := newAPIClient(cmd, opts, cfg).ExportGuests(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "export guests", err)
			}

			verbosef(cmd, opts, "Wrote %d guests to gs://%s/%s", receipt.GuestCount, receipt.Bucket, receipt.Object)

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "\t")
			return encoder.Encode(receipt)
		},
	}
}
