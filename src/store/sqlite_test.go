package store

import (
	"context"
	"testing"

	m "guest_list_services/src/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteCreateAssignsID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateGuest(ctx, m.NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ada", created.FirstName)
	assert.False(t, created.Attending)

	fetched, err := s.GetGuest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestSQLiteListKeepsCreationOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.ListGuests(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names := []string{"Ada", "Grace", "Alan"}
	for _, name := range names {
		_, err := s.CreateGuest(ctx, m.NewGuest(name, "Test"))
		require.NoError(t, err)
	}

	guests, err := s.ListGuests(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 3)
	for i, name := range names {
		assert.Equal(t, name, guests[i].FirstName)
	}
}

func TestSQLiteAllowsDuplicateNames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.CreateGuest(ctx, m.NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)
	second, err := s.CreateGuest(ctx, m.NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSQLiteUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateGuest(ctx, m.NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)

	created.Attending = true
	updated, err := s.UpdateGuest(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.Attending)

	fetched, err := s.GetGuest(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Attending)
}

func TestSQLiteNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	missing := uuid.NewString()

	_, err := s.GetGuest(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateGuest(ctx, m.Guest{ID: missing, FirstName: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteGuest(ctx, missing), ErrNotFound)
}

func TestSQLiteDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateGuest(ctx, m.NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteGuest(ctx, created.ID))

	guests, err := s.ListGuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, guests)
}
