package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	m "guest_list_services/src/models"

	"github.com/opensearch-project/opensearch-go"
	"github.com/opensearch-project/opensearch-go/opensearchapi"
)

const GuestIndex = "guests"

const indexSettings = `{"settings": {"index": {"number_of_shards": 1, "number_of_replicas": 1}}}`

// Index keeps guest documents in OpenSearch for name lookups.
type Index struct {
	client *opensearch.Client
	name   string
}

func NewIndex(client *opensearch.Client) *Index {
	return &Index{client: client, name: GuestIndex}
}

// EnsureIndex creates the guests index when it does not exist yet.
func (index *Index) EnsureIndex(ctx context.Context) error {
	exists, err := opensearchapi.IndicesExistsRequest{Index: []string{index.name}}.Do(ctx, index.client)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index.name, err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := opensearchapi.IndicesCreateRequest{
		Index: index.name,
		Body:  strings.NewReader(indexSettings),
	}.Do(ctx, index.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index.name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index.name, res.String())
	}
	return nil
}

func (index *Index) PutGuest(ctx context.Context, guest m.Guest) error {
	data, err := json.Marshal(m.SearchFromGuest(guest))
	if err != nil {
		return err
	}

	res, err := opensearchapi.IndexRequest{
		Index:      index.name,
		DocumentID: guest.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}.Do(ctx, index.client)
	if err != nil {
		return fmt.Errorf("index guest %s: %w", guest.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index guest %s: %s", guest.ID, res.String())
	}
	return nil
}

func (index *Index) DeleteGuest(ctx context.Context, id string) error {
	res, err := opensearchapi.DeleteRequest{
		Index:      index.name,
		DocumentID: id,
		Refresh:    "true",
	}.Do(ctx, index.client)
	if err != nil {
		return fmt.Errorf("unindex guest %s: %w", id, err)
	}
	defer res.Body.Close()

	// Already gone is fine
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("unindex guest %s: %s", id, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Score  float32  `json:"_score"`
			Source m.Search `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (index *Index) SearchGuests(ctx context.Context, lookup string) ([]m.Search, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  lookup,
				"type":   "bool_prefix",
				"fields": []string{"lookup", "first_name", "last_name"},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := opensearchapi.SearchRequest{
		Index: []string{index.name},
		Body:  bytes.NewReader(body),
	}.Do(ctx, index.client)
	if err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search guests: %s", res.String())
	}

	return decodeSearchResponse(res.Body)
}

func decodeSearchResponse(body io.Reader) ([]m.Search, error) {
	var response searchResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]m.Search, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		result := hit.Source
		result.ID = hit.ID
		result.Rank = hit.Score
		result.ResultType = "guest"
		results = append(results, result)
	}
	return results, nil
}
