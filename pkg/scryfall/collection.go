package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CollectionBatchSize is the upstream's identifier limit per collection
// call.
const CollectionBatchSize = 75

// Identifier addresses a single card for a point lookup. Exactly one of the
// addressing forms should be set: ID, Name, or Set+CollectorNumber.
type Identifier struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

// CollectionResult is the merged outcome of the batched lookups.
type CollectionResult struct {
	Cards    []Card
	NotFound []Identifier
}

type collectionRequest struct {
	Identifiers []Identifier `json:"identifiers"`
}

type collectionResponse struct {
	Data     []Card       `json:"data"`
	NotFound []Identifier `json:"not_found"`
}

// Collection resolves cards by identifier, batching requests at the
// upstream's limit and merging the results. Each batch paces itself
// through the shared dispatch gate.
func (c *Client) Collection(ctx context.Context, ids []Identifier) (*CollectionResult, error) {
	result := &CollectionResult{}
	endpoint := "/cards/collection"

	for start := 0; start < len(ids); start += CollectionBatchSize {
		end := start + CollectionBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		payload, err := json.Marshal(collectionRequest{Identifiers: ids[start:end]})
		if err != nil {
			return nil, fmt.Errorf("marshal collection request: %w", err)
		}

		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.do(ctx, http.MethodPost, c.baseURL+endpoint, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, newUpstreamError(resp, endpoint)
		}

		var batch collectionResponse
		err = json.NewDecoder(resp.Body).Decode(&batch)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode collection response: %w", err)
		}

		result.Cards = append(result.Cards, batch.Data...)
		result.NotFound = append(result.NotFound, batch.NotFound...)
	}

	c.logger.Debug().
		Int("requested", len(ids)).
		Int("found", len(result.Cards)).
		Int("not_found", len(result.NotFound)).
		Msg("Collection lookup complete")

	return result, nil
}
