package models

import "time"

const GuestChannel = "guests"

const (
	OperationInsert = "INSERT"
	OperationUpdate = "UPDATE"
	OperationDelete = "DELETE"
)

type GuestEvent struct {
	Operation string      `json:"operation"`
	Type      string      `json:"type"`
	GuestID   string      `json:"guest_id"`
	Payload   interface{} `json:"payload"`
	SentAt    time.Time   `json:"sent_at"`
}

func NewGuestEvent(operation string, guest Guest) GuestEvent {
	event := GuestEvent{
		Operation: operation,
		Type:      "guest",
		GuestID:   guest.ID,
		SentAt:    time.Now().UTC(),
	}

	// Deletes only carry the id
	if operation != OperationDelete {
		event.Payload = guest
	}

	return event
}
