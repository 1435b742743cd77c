package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mtgbrew/cardsearch/pkg/pagecache"
)

// Card is one upstream result record.
type Card struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	TypeLine        string            `json:"type_line,omitempty"`
	OracleText      string            `json:"oracle_text,omitempty"`
	Set             string            `json:"set"`
	SetName         string            `json:"set_name,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	Rarity          string            `json:"rarity,omitempty"`
	Prices          Prices            `json:"prices"`
	ImageURIs       map[string]string `json:"image_uris,omitempty"`
}

// Prices carries the upstream's market price strings.
type Prices struct {
	USD     string `json:"usd,omitempty"`
	USDFoil string `json:"usd_foil,omitempty"`
	EUR     string `json:"eur,omitempty"`
}

// listResponse is the upstream's search page envelope.
type listResponse struct {
	Data       []Card `json:"data"`
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
}

// SearchPage fetches one page of search results.
//
// A 404 from the upstream means "nothing matches" and surfaces as an empty
// page with a nil error; every other non-2xx status is an *UpstreamError.
//
// SearchPage does not pace itself: search fetches are serialized by the
// pagination cache's gate before they reach this method.
func (c *Client) SearchPage(ctx context.Context, query, order string, page int) (pagecache.Page[Card], error) {
	params := url.Values{}
	params.Set("q", query)
	if order != "" {
		params.Set("order", order)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	endpoint := "/cards/search"
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), endpoint, nil)
	if err != nil {
		return pagecache.Page[Card]{}, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		c.logger.Debug().
			Str("query", query).
			Int("page", page).
			Msg("Upstream reports no matches")
		return pagecache.Page[Card]{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return pagecache.Page[Card]{}, newUpstreamError(resp, endpoint)
	}
	defer resp.Body.Close()

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return pagecache.Page[Card]{}, fmt.Errorf("decode search page: %w", err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Int("items", len(list.Data)).
		Int("total", list.TotalCards).
		Bool("has_more", list.HasMore).
		Msg("Fetched search page")

	return pagecache.Page[Card]{
		Items:      list.Data,
		TotalCount: list.TotalCards,
		HasMore:    list.HasMore,
	}, nil
}

// FetchPage implements pagecache.Fetcher[Card].
func (c *Client) FetchPage(ctx context.Context, query, order string, page int) (pagecache.Page[Card], error) {
	return c.SearchPage(ctx, query, order, page)
}
