package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Guest struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Attending bool   `json:"attending" yaml:"attending"`
}

// NewGuest builds an unsaved guest from raw form input. New guests never start as attending.
func NewGuest(firstName string, lastName string) Guest {
	return Guest{
		FirstName: CleanName(firstName),
		LastName:  CleanName(lastName),
		Attending: false,
	}
}

// CleanName trims surrounding whitespace and normalizes to NFC.
func CleanName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func (guest Guest) FullName() string {
	return guest.FirstName + " " + guest.LastName
}

// PartitionByAttendance splits guests into attending and not attending, keeping their order.
func PartitionByAttendance(guests []Guest) (attending []Guest, notAttending []Guest) {
	attending = make([]Guest, 0, len(guests))
	notAttending = make([]Guest, 0, len(guests))

	for _, guest := range guests {
		if guest.Attending {
			attending = append(attending, guest)
		} else {
			notAttending = append(notAttending, guest)
		}
	}

	return attending, notAttending
}
