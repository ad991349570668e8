package inits

import (
	"context"
	"fmt"
	"log"

	"guest_list_services/src/search"
	"guest_list_services/src/store"

	"github.com/opensearch-project/opensearch-go"
)

func CreateOpenSearchClient(url string) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("create opensearch client: %w", err)
	}
	return client, nil
}

// InitOpenSearch creates the guests index and backfills it from the store.
func InitOpenSearch(ctx context.Context, guests store.GuestStore, index *search.Index) error {
	if err := index.EnsureIndex(ctx); err != nil {
		return err
	}

	guestList, err := guests.ListGuests(ctx)
	if err != nil {
		return fmt.Errorf("load guests for search index: %w", err)
	}

	for _, guest := range guestList {
		if err := index.PutGuest(ctx, guest); err != nil {
			return err
		}
	}

	log.Printf("Indexed %d guests into %s", len(guestList), search.GuestIndex)
	return nil
}
