package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"guest_list_services/src/client"
	m "guest_list_services/src/models"
)

// fakeAPI is an in-memory GuestAPI with switchable failures and an optional
// gate that holds ListGuests until released.
type fakeAPI struct {
	mu        sync.Mutex
	guests    []m.Guest
	nextID    int
	createErr error
	updateErr error
	listErr   error
	updates   []m.Guest
	deletes   []string
	listCalls int
	listGate  chan struct{}
}

func (api *fakeAPI) seed(guests ...m.Guest) {
	api.mu.Lock()
	defer api.mu.Unlock()

	for _, guest := range guests {
		api.nextID++
		guest.ID = fmt.Sprintf("g-%d", api.nextID)
		api.guests = append(api.guests, guest)
	}
}

func (api *fakeAPI) ListGuests(ctx context.Context) ([]m.Guest, error) {
	api.mu.Lock()
	api.listCalls++
	gate := api.listGate
	api.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &client.Error{Op: "list guests", Kind: client.KindCanceled, Err: ctx.Err()}
		}
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	if api.listErr != nil {
		return nil, api.listErr
	}
	return append([]m.Guest(nil), api.guests...), nil
}

func (api *fakeAPI) CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	if api.createErr != nil {
		return m.Guest{}, api.createErr
	}
	api.nextID++
	guest.ID = fmt.Sprintf("g-%d", api.nextID)
	api.guests = append(api.guests, guest)
	return guest, nil
}

func (api *fakeAPI) UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.updates = append(api.updates, guest)
	if api.updateErr != nil {
		return m.Guest{}, api.updateErr
	}
	for i := range api.guests {
		if api.guests[i].ID == guest.ID {
			api.guests[i] = guest
			return guest, nil
		}
	}
	return m.Guest{}, &client.Error{Op: "update guest", Kind: client.KindStatus, StatusCode: 404}
}

func (api *fakeAPI) DeleteGuest(ctx context.Context, id string) error {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.deletes = append(api.deletes, id)
	for i := range api.guests {
		if api.guests[i].ID == id {
			api.guests = append(api.guests[:i], api.guests[i+1:]...)
			return nil
		}
	}
	return &client.Error{Op: "delete guest", Kind: client.KindStatus, StatusCode: 404}
}

var errOffline = errors.New("connection refused")
