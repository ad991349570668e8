package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	m "guest_list_services/src/models"
	"guest_list_services/src/store"

	"cloud.google.com/go/storage"
)

// ObjectWriter stores a named blob, e.g. a Cloud Storage bucket.
type ObjectWriter interface {
	BucketName() string
	WriteObject(ctx context.Context, name string, contentType string, data []byte) error
}

type BucketWriter struct {
	Bucket *storage.BucketHandle
	Name   string
}

func NewBucketWriter(gcpStorage *storage.Client, bucket string) *BucketWriter {
	return &BucketWriter{Bucket: gcpStorage.Bucket(bucket), Name: bucket}
}

func (bucket *BucketWriter) BucketName() string {
	return bucket.Name
}

func (bucket *BucketWriter) WriteObject(ctx context.Context, name string, contentType string, data []byte) error {
	writer := bucket.Bucket.Object(name).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func ExportEndpointHandler(guests store.GuestStore, exporter ObjectWriter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			POSTGuestExport(r.Context(), w, guests, exporter, time.Now().UTC())
		default:
			WriteErrorToWriter(w, http.StatusMethodNotAllowed, "Error: Method not allowed")
		}
	})
}

func ExportObjectName(now time.Time) string {
	return fmt.Sprintf("guests-%s.json", now.UTC().Format("20060102T150405Z"))
}

func POSTGuestExport(ctx context.Context, w http.ResponseWriter, guests store.GuestStore, exporter ObjectWriter, now time.Time) {
	if exporter == nil {
		WriteErrorToWriter(w, http.StatusServiceUnavailable, "Error: Export bucket is not configured")
		return
	}

	guestList, err := guests.ListGuests(ctx)
	if err != nil {
		WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Unable to load guests")
		log.Printf("Unable to load guests for export: %v", err)
		return
	}
	if guestList == nil {
		guestList = []m.Guest{}
	}

	data, err := json.MarshalIndent(guestList, "", "\t")
	if err != nil {
		WriteErrorToWriter(w, http.StatusInternalServerError, "Error: Unable to encode guests")
		log.Printf("Unable to encode guests for export: %v", err)
		return
	}

	receipt := m.ExportReceipt{
		Bucket:     exporter.BucketName(),
		Object:     ExportObjectName(now),
		GuestCount: len(guestList),
		ExportedAt: now,
	}

	err = exporter.WriteObject(ctx, receipt.Object, "application/json", data)
	if err != nil {
		WriteErrorToWriter(w, http.StatusBadGateway, "Error: Unable to write export")
		log.Printf("Unable to write export %s: %v", receipt.Object, err)
		return
	}

	WriteJSONToWriter(w, http.StatusCreated, receipt)
}
