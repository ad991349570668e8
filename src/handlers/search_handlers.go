package handlers

import (
	"context"
	"log"
	"net/http"

	m "guest_list_services/src/models"
)

type GuestSearcher interface {
	SearchGuests(ctx context.Context, lookup string) ([]m.Search, error)
}

func SearchEndpointHandler(searcher GuestSearcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			searchVal := r.URL.Query().Get("lookup")
			GuestTextSearch(r.Context(), w, searcher, searchVal)
		default:
			WriteErrorToWriter(w, http.StatusMethodNotAllowed, "Error: Method not allowed")
		}
	})
}

func GuestTextSearch(ctx context.Context, w http.ResponseWriter, searcher GuestSearcher, searchVal string) {
	results := []m.Search{}

	if m.CleanName(searchVal) != "" {
		found, err := searcher.SearchGuests(ctx, searchVal)
		if err != nil {
			WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Failed to perform search")
			log.Printf("Failed to perform search: %v", err)
			return
		}
		results = append(results, found...)
	}

	WriteJSONToWriter(w, http.StatusOK, results)
}
