package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	m "guest_list_services/src/models"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the API refused or could not be reached
	ExitCommandError = 2 // bad flags or configuration
)

type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, ExitFailure if it carries none.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

var ValidFormats = []string{"text", "json", "yaml"}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteGuests prints guests in the requested format.
func WriteGuests(w io.Writer, format string, guests []m.Guest) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "\t")
		return encoder.Encode(guests)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(guests)
	case "text":
		return writeGuestText(w, guests)
	}
	return fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
}

func writeGuestText(w io.Writer, guests []m.Guest) error {
	attending, notAttending := m.PartitionByAttendance(guests)

	for _, guest := range guests {
		mark := " "
		if guest.Attending {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s (%s)\n", mark, guest.FullName(), guest.ID); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d guests: %d attending, %d not attending\n", len(guests), len(attending), len(notAttending))
	return err
}

func writeGuestLine(w io.Writer, verb string, guest m.Guest) {
	state := "not attending"
	if guest.Attending {
		state = "attending"
	}
	fmt.Fprintf(w, "%s %s (%s), %s\n", verb, guest.FullName(), guest.ID, state)
}
