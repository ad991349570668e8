package search

import (
	"context"
	"strings"

	m "guest_list_services/src/models"
	"guest_list_services/src/store"
)

// StoreScan answers lookups by filtering the full guest list. Used when no
// OpenSearch cluster is configured.
type StoreScan struct {
	Guests store.GuestStore
}

func (scan StoreScan) SearchGuests(ctx context.Context, lookup string) ([]m.Search, error) {
	guests, err := scan.Guests.ListGuests(ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(m.CleanName(lookup)))
	results := make([]m.Search, 0)
	for _, guest := range guests {
		rank := matchRank(strings.ToLower(guest.FullName()), terms)
		if rank == 0 {
			continue
		}

		result := m.SearchFromGuest(guest)
		result.Rank = rank
		results = append(results, result)
	}
	return results, nil
}

// matchRank is the share of name's words matched by distinct terms, or 0 if
// any term misses. It never exceeds 1.
func matchRank(name string, terms []string) float32 {
	if len(terms) == 0 {
		return 0
	}

	distinct := make(map[string]struct{}, len(terms))
	words := strings.Fields(name)
	for _, term := range terms {
		found := false
		for _, word := range words {
			if strings.HasPrefix(word, term) {
				found = true
				break
			}
		}
		if !found {
			return 0
		}
		distinct[term] = struct{}{}
	}
	return float32(len(distinct)) / float32(max(len(distinct), len(words)))
}
