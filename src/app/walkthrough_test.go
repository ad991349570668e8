package app

import (
	"context"
	"net/http/httptest"
	"testing"

	"guest_list_services/src/client"
	"guest_list_services/src/handlers"
	"guest_list_services/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Guest.FullName())
	}
	return out
}

func TestGuestListWalkthroughAgainstAPI(t *testing.T) {
	guests, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer guests.Close()

	server := httptest.NewServer(handlers.NewRouter(handlers.Services{Guests: guests}))
	defer server.Close()

	ctx := context.Background()
	api := client.New(server.URL, server.Client())

	page := New(api, Options{})
	defer page.Close()
	require.True(t, page.Start(ctx).OK())
	assert.False(t, page.Loading())

	page.SetFirstName("Ada")
	page.SetLastName("Lovelace")
	result, submitted := page.HandleLastNameKey(ctx, "Enter")
	require.True(t, submitted)
	require.True(t, result.OK(), result.Error())

	entries := page.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Ada Lovelace"}, names(entries))
	assert.Len(t, page.NotAttending(), 1)
	assert.Empty(t, page.Attending())

	id := entries[0].Key
	require.True(t, page.ToggleAttending(ctx, id).OK())
	assert.Len(t, page.Attending(), 1)
	assert.Empty(t, page.NotAttending())

	// A fresh page sees what was persisted
	reloaded := New(api, Options{})
	defer reloaded.Close()
	require.True(t, reloaded.Start(ctx).OK())
	require.Len(t, reloaded.Guests(), 1)
	assert.True(t, reloaded.Guests()[0].Attending)

	require.True(t, reloaded.RemoveGuest(ctx, id).OK())
	assert.Empty(t, reloaded.Guests())

	// Removal was never sent, so a reload brings the guest back
	require.True(t, reloaded.LoadGuestList(ctx).OK())
	require.Len(t, reloaded.Guests(), 1)
	assert.Equal(t, "Ada Lovelace", reloaded.Guests()[0].FullName())
	assert.True(t, reloaded.Guests()[0].Attending)
}

func TestPersistedRemoveAgainstAPI(t *testing.T) {
	guests, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer guests.Close()

	server := httptest.NewServer(handlers.NewRouter(handlers.Services{Guests: guests}))
	defer server.Close()

	ctx := context.Background()
	page := New(client.New(server.URL, server.Client()), Options{PersistRemove: true})
	defer page.Close()
	require.True(t, page.Start(ctx).OK())

	page.SetFirstName("Grace")
	page.SetLastName("Hopper")
	require.True(t, page.AddGuest(ctx).OK())

	id := page.Entries()[0].Key
	require.True(t, page.RemoveGuest(ctx, id).OK())
	require.True(t, page.LoadGuestList(ctx).OK())
	assert.Empty(t, page.Guests())
}
