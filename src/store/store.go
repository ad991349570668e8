package store

import (
	"context"
	"errors"

	m "guest_list_services/src/models"
)

var ErrNotFound = errors.New("guest not found")

// GuestStore is the system of record for guests. Lists are ordered by creation.
type GuestStore interface {
	ListGuests(ctx context.Context) ([]m.Guest, error)
	GetGuest(ctx context.Context, id string) (m.Guest, error)
	CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error)
	UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error)
	DeleteGuest(ctx context.Context, id string) error
	Close() error
}
