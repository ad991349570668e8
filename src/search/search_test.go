package search

import (
	"context"
	"strings"
	"testing"

	m "guest_list_services/src/models"
	"guest_list_services/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreScanMatchesPrefixes(t *testing.T) {
	guests, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer guests.Close()

	ctx := context.Background()
	for _, guest := range []m.Guest{
		m.NewGuest("Ada", "Lovelace"),
		m.NewGuest("Grace", "Hopper"),
		m.NewGuest("Alan", "Turing"),
	} {
		_, err := guests.CreateGuest(ctx, guest)
		require.NoError(t, err)
	}

	scan := StoreScan{Guests: guests}

	results, err := scan.SearchGuests(ctx, "  LOVE ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada Lovelace", results[0].Lookup)
	assert.Equal(t, "guest", results[0].ResultType)

	results, err = scan.SearchGuests(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = scan.SearchGuests(ctx, "ada hop")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = scan.SearchGuests(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchRankStaysWithinOne(t *testing.T) {
	assert.Equal(t, float32(0.5), matchRank("ada lovelace", []string{"a", "a", "a"}))
	assert.Equal(t, float32(1), matchRank("ada lovelace", []string{"ada", "love"}))
	assert.Equal(t, float32(1), matchRank("ada lovelace", []string{"a", "ad", "l"}))
	assert.Equal(t, float32(0), matchRank("ada lovelace", []string{"ada", "hop"}))
	assert.Equal(t, float32(0), matchRank("ada lovelace", nil))
}

func TestDecodeSearchResponse(t *testing.T) {
	body := `{"hits":{"hits":[
		{"_id":"g-1","_score":1.5,"_source":{"lookup":"Ada Lovelace","first_name":"Ada","last_name":"Lovelace","attending":true}}
	]}}`

	results, err := decodeSearchResponse(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "g-1", results[0].ID)
	assert.Equal(t, float32(1.5), results[0].Rank)
	assert.True(t, results[0].Attending)
	assert.Equal(t, "guest", results[0].ResultType)
}

func TestDecodeSearchResponseRejectsGarbage(t *testing.T) {
	_, err := decodeSearchResponse(strings.NewReader("not json"))
	assert.Error(t, err)
}
