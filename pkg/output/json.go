package output

import (
	"encoding/json"
	"fmt"

	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

// JSONFormatter renders results as JSON for scripting.
type JSONFormatter struct {
	// Indent enables pretty-printed output.
	Indent bool
}

// WindowPayload is the JSON shape of one result window.
type WindowPayload struct {
	Items      []scryfall.Card `json:"items"`
	TotalCount int             `json:"total_count"`
	HasMore    bool            `json:"has_more"`
	Offset     int             `json:"offset"`
}

// FormatWindow renders one result window as JSON.
func (f JSONFormatter) FormatWindow(res pagecache.Result[scryfall.Card], offset int) (string, error) {
	payload := WindowPayload{
		Items:      res.Items,
		TotalCount: res.TotalCount,
		HasMore:    res.HasMore,
		Offset:     offset,
	}
	if payload.Items == nil {
		payload.Items = []scryfall.Card{}
	}
	return f.marshal(payload)
}

// FormatCards renders a plain card list as JSON.
func (f JSONFormatter) FormatCards(cards []scryfall.Card) (string, error) {
	if cards == nil {
		cards = []scryfall.Card{}
	}
	return f.marshal(cards)
}

func (f JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}
	return string(data), nil
}
