package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	m "guest_list_services/src/models"
	"guest_list_services/src/store"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// GuestIndexer mirrors guest writes into a search index.
type GuestIndexer interface {
	PutGuest(ctx context.Context, guest m.Guest) error
	DeleteGuest(ctx context.Context, id string) error
}

func GuestEndpointHandler(guests store.GuestStore, rdb *redis.Client, index GuestIndexer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		guestID, hasID := mux.Vars(r)["id"]

		switch {
		case !hasID && r.Method == http.MethodGet:
			GETGuests(ctx, w, guests)
		case !hasID && r.Method == http.MethodPost:
			POSTNewGuest(ctx, w, r, guests, rdb, index)
		case hasID && r.Method == http.MethodGet:
			GETGuestByID(ctx, w, guests, guestID)
		case hasID && r.Method == http.MethodPut:
			PUTUpdateGuest(ctx, w, r, guests, rdb, index, guestID)
		case hasID && r.Method == http.MethodDelete:
			DELETEGuest(ctx, w, guests, rdb, index, guestID)
		default:
			WriteErrorToWriter(w, http.StatusMethodNotAllowed, "Error: Method not allowed")
		}
	})
}

func GETGuests(ctx context.Context, w http.ResponseWriter, guests store.GuestStore) {
	guestList, err := guests.ListGuests(ctx)
	if err != nil {
		WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Unable to load guests")
		log.Printf("Unable to load guests: %v", err)
		return
	}
	if guestList == nil {
		guestList = []m.Guest{}
	}

	WriteJSONToWriter(w, http.StatusOK, guestList)
}

func GETGuestByID(ctx context.Context, w http.ResponseWriter, guests store.GuestStore, guestID string) {
	if _, err := uuid.Parse(guestID); err != nil {
		WriteErrorToWriter(w, http.StatusBadRequest, "Error: Provide a valid UUID to return a guest")
		return
	}

	guest, err := guests.GetGuest(ctx, guestID)
	if err != nil {
		writeStoreError(w, err, "Unable to load guest")
		return
	}

	WriteJSONToWriter(w, http.StatusOK, guest)
}

func POSTNewGuest(ctx context.Context, w http.ResponseWriter, r *http.Request, guests store.GuestStore, rdb *redis.Client, index GuestIndexer) {
	requested, ok := readGuestBody(w, r)
	if !ok {
		return
	}

	guest := m.NewGuest(requested.FirstName, requested.LastName)
	guest.Attending = requested.Attending

	created, err := guests.CreateGuest(ctx, guest)
	if err != nil {
		WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Unable to create guest")
		log.Printf("Unable to create guest: %v", err)
		return
	}

	afterWrite(ctx, rdb, index, m.OperationInsert, created)
	WriteJSONToWriter(w, http.StatusCreated, created)
}

func PUTUpdateGuest(ctx context.Context, w http.ResponseWriter, r *http.Request, guests store.GuestStore, rdb *redis.Client, index GuestIndexer, guestID string) {
	if _, err := uuid.Parse(guestID); err != nil {
		WriteErrorToWriter(w, http.StatusBadRequest, "Error: Provide a valid UUID to update a guest")
		return
	}

	requested, ok := readGuestBody(w, r)
	if !ok {
		return
	}

	// The path decides which record changes, whatever id the body carries
	guest := m.NewGuest(requested.FirstName, requested.LastName)
	guest.ID = guestID
	guest.Attending = requested.Attending

	updated, err := guests.UpdateGuest(ctx, guest)
	if err != nil {
		writeStoreError(w, err, "Unable to update guest")
		return
	}

	afterWrite(ctx, rdb, index, m.OperationUpdate, updated)
	WriteJSONToWriter(w, http.StatusOK, updated)
}

func DELETEGuest(ctx context.Context, w http.ResponseWriter, guests store.GuestStore, rdb *redis.Client, index GuestIndexer, guestID string) {
	if _, err := uuid.Parse(guestID); err != nil {
		WriteErrorToWriter(w, http.StatusBadRequest, "Error: Provide a valid UUID to remove a guest")
		return
	}

	err := guests.DeleteGuest(ctx, guestID)
	if err != nil {
		writeStoreError(w, err, "Unable to remove guest")
		return
	}

	afterWrite(ctx, rdb, index, m.OperationDelete, m.Guest{ID: guestID})
	w.WriteHeader(http.StatusNoContent)
}

func readGuestBody(w http.ResponseWriter, r *http.Request) (m.Guest, bool) {
	var guest m.Guest

	bytes, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		WriteErrorToWriter(w, http.StatusBadRequest, "Error: Could not read the request body")
		log.Printf("Failed Reading Body: %v", err)
		return guest, false
	}

	err = json.Unmarshal(bytes, &guest)
	if err != nil {
		WriteErrorToWriter(w, http.StatusBadRequest, "Error: Invalid request body - could not be mapped to object")
		log.Printf("Failed Unmarshaling: %v", err)
		return guest, false
	}

	return guest, true
}

func writeStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		WriteErrorToWriter(w, http.StatusNotFound, "Error: Guest does not exist")
		return
	}

	WriteErrorToWriter(w, http.StatusInternalServerError, "Error: "+message)
	log.Printf("%s: %v", message, err)
}

// afterWrite fans a committed change out to subscribers and the search index.
// Failures here are logged; the write itself already succeeded.
func afterWrite(ctx context.Context, rdb *redis.Client, index GuestIndexer, operation string, guest m.Guest) {
	err := PublishGuestEvent(ctx, rdb, m.NewGuestEvent(operation, guest))
	if err != nil {
		log.Printf("Failed publishing %s for guest %s: %v", operation, guest.ID, err)
	}

	if index == nil {
		return
	}

	if operation == m.OperationDelete {
		err = index.DeleteGuest(ctx, guest.ID)
	} else {
		err = index.PutGuest(ctx, guest)
	}
	if err != nil {
		log.Printf("Failed indexing %s for guest %s: %v", operation, guest.ID, err)
	}
}

func PublishGuestEvent(ctx context.Context, rdb *redis.Client, event m.GuestEvent) error {
	if rdb == nil {
		return nil
	}

	jsonPayload, err := json.MarshalIndent(event, "", "\t")
	if err != nil {
		return err
	}

	return rdb.Publish(ctx, m.GuestChannel, jsonPayload).Err()
}
