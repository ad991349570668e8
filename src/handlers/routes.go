package handlers

import (
	"net/http"

	"guest_list_services/src/search"
	"guest_list_services/src/store"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Services are the backends the guest API routes talk to. Only Guests is required.
type Services struct {
	Guests   store.GuestStore
	Redis    *redis.Client
	Index    GuestIndexer
	Searcher GuestSearcher
	Exporter ObjectWriter
}

func NewRouter(services Services) *mux.Router {
	searcher := services.Searcher
	if searcher == nil {
		searcher = search.StoreScan{Guests: services.Guests}
	}

	guestHandler := GuestEndpointHandler(services.Guests, services.Redis, services.Index)

	router := mux.NewRouter()
	router.HandleFunc("/", GETHandlerRoot).Methods(http.MethodGet)
	router.Handle("/ws", WebSocketEndpointHandler(services.Redis))
	router.Handle("/guests/search", SearchEndpointHandler(searcher))
	router.Handle("/guests/export", ExportEndpointHandler(services.Guests, services.Exporter))
	router.Handle("/guests", guestHandler)
	router.Handle("/guests/{id}", guestHandler)

	return router
}
