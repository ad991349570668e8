package models

import "time"

type ExportReceipt struct {
	Bucket     string    `json:"bucket"`
	Object     string    `json:"object"`
	GuestCount int       `json:"guest_count"`
	ExportedAt time.Time `json:"exported_at"`
}
