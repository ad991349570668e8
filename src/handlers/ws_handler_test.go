package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	m "guest_list_services/src/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func dialGuestEvents(t *testing.T, mr *miniredis.Miniredis, router http.Handler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The handler subscribes after the upgrade; wait for it before publishing.
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(m.GuestChannel)[m.GuestChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}

func readGuestEvent(t *testing.T, conn *websocket.Conn) m.GuestEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event m.GuestEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestGuestWritesReachWebSocket(t *testing.T) {
	mr, rdb := newTestRedis(t)
	router, _ := newTestRouter(t, Services{Redis: rdb})
	conn := dialGuestEvents(t, mr, router)

	// Neither of these is a guest event, so neither is forwarded.
	mr.Publish(m.GuestChannel, "not json")
	mr.Publish(m.GuestChannel, `{"operation":"INSERT","type":"album","guest_id":"a-1"}`)

	rec := doRequest(t, router, http.MethodPost, "/guests", `{"firstName":"Ada","lastName":"Lovelace"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeGuest(t, rec)

	rec = doRequest(t, router, http.MethodPut, "/guests/"+created.ID, `{"firstName":"Ada","lastName":"Lovelace","attending":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/guests/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	inserted := readGuestEvent(t, conn)
	assert.Equal(t, m.OperationInsert, inserted.Operation)
	assert.Equal(t, "guest", inserted.Type)
	assert.Equal(t, created.ID, inserted.GuestID)
	require.NotNil(t, inserted.Payload)
	assert.Equal(t, "Ada", inserted.Payload.(map[string]interface{})["firstName"])

	updated := readGuestEvent(t, conn)
	assert.Equal(t, m.OperationUpdate, updated.Operation)
	assert.Equal(t, created.ID, updated.GuestID)
	require.NotNil(t, updated.Payload)
	assert.Equal(t, true, updated.Payload.(map[string]interface{})["attending"])

	deleted := readGuestEvent(t, conn)
	assert.Equal(t, m.OperationDelete, deleted.Operation)
	assert.Equal(t, created.ID, deleted.GuestID)
	assert.Nil(t, deleted.Payload)
}

func TestFailedWritesPublishNothing(t *testing.T) {
	mr, rdb := newTestRedis(t)
	router, _ := newTestRouter(t, Services{Redis: rdb})
	conn := dialGuestEvents(t, mr, router)

	missing := "/guests/00000000-0000-0000-0000-000000000000"
	rec := doRequest(t, router, http.MethodDelete, missing, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/guests", `{"firstName":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/guests", `{"firstName":"Grace","lastName":"Hopper"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeGuest(t, rec)

	event := readGuestEvent(t, conn)
	assert.Equal(t, m.OperationInsert, event.Operation)
	assert.Equal(t, created.ID, event.GuestID)
}

func TestPublishGuestEventWithRedis(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	pubSub := rdb.Subscribe(ctx, m.GuestChannel)
	defer pubSub.Close()
	_, err := pubSub.Receive(ctx)
	require.NoError(t, err)

	err = PublishGuestEvent(ctx, rdb, m.NewGuestEvent(m.OperationDelete, m.Guest{ID: "g-1"}))
	require.NoError(t, err)

	message, err := pubSub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.GuestChannel, message.Channel)

	var event m.GuestEvent
	require.NoError(t, json.Unmarshal([]byte(message.Payload), &event))
	assert.Equal(t, "g-1", event.GuestID)
	assert.Nil(t, event.Payload)
}
