package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	m "guest_list_services/src/models"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1048,
	WriteBufferSize: 1048,
}

type ConnectionState struct {
	Conn *websocket.Conn
	quit chan struct{}
	once sync.Once
}

func WebSocketEndpointHandler(rdb *redis.Client) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rdb == nil {
			WriteErrorToWriter(w, http.StatusServiceUnavailable, "Error: Change events are not configured")
			return
		}
		WebSocket(w, r, rdb, m.GuestChannel)
	})
}

func WebSocket(w http.ResponseWriter, r *http.Request, rdb *redis.Client, channel string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}

	connectionState := &ConnectionState{Conn: conn, quit: make(chan struct{})}

	go connectionState.CheckConnectionStatus()
	connectionState.ListenAndWrite(r.Context(), rdb, channel)
}

func (connectionState *ConnectionState) Close() {
	connectionState.once.Do(func() {
		close(connectionState.quit)
	})
}

// ListenAndWrite relays every event on channel to the socket until the client goes away.
func (connectionState *ConnectionState) ListenAndWrite(ctx context.Context, rdb *redis.Client, channel string) {
	pubSub := rdb.Subscribe(ctx, channel)
	eventChannel := pubSub.Channel(redis.WithChannelSize(250))

	defer func() {
		if err := pubSub.Close(); err != nil {
			log.Printf("Error closing redis channel: %v with error: %v", channel, err)
		}
		if err := connectionState.Conn.Close(); err != nil {
			log.Printf("Error closing websocket: %v", err)
		}
	}()

	for {
		select {
		case message, ok := <-eventChannel:
			if !ok {
				return
			}
			err := sendWebSocketEvent(connectionState.Conn, message.Payload)
			if err != nil {
				log.Printf("ListenAndWriteError: %v", err)
				return
			}
		case <-connectionState.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (connectionState *ConnectionState) CheckConnectionStatus() {
	defer connectionState.Close()

	for {
		_, _, err := connectionState.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("error: %v", err)
			}
			return
		}
	}
}

// sendWebSocketEvent forwards a published event, dropping payloads that are not guest events.
func sendWebSocketEvent(conn *websocket.Conn, payload string) error {
	var event m.GuestEvent
	err := json.Unmarshal([]byte(payload), &event)
	if err != nil || event.Type != "guest" {
		log.Printf("Skipping malformed guest event: %v", err)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, []byte(payload))
}
