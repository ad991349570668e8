package inits

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// CreateStorageClient uses application default credentials.
func CreateStorageClient(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}
