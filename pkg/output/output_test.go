package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

func sampleWindow() pagecache.Result[scryfall.Card] {
	return pagecache.Result[scryfall.Card]{
		Items: []scryfall.Card{
			{
				Name:     "Lightning Bolt",
				ManaCost: "{R}",
				TypeLine: "Instant",
				Set:      "lea",
				Rarity:   "common",
				Prices:   scryfall.Prices{USD: "1.50"},
			},
			{
				Name:     "Goblin Guide",
				ManaCost: "{R}",
				TypeLine: "Creature - Goblin Scout",
				Set:      "zen",
				Rarity:   "rare",
			},
		},
		TotalCount: 42,
		HasMore:    true,
	}
}

func TestTableFormatter_FormatWindow(t *testing.T) {
	rendered := TableFormatter{}.FormatWindow(sampleWindow(), 20)

	for _, want := range []string{
		"Lightning Bolt",
		"Goblin Guide",
		"LEA",
		"$1.50",
		"showing 21-22 of 42",
		"more available",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table output missing %q:\n%s", want, rendered)
		}
	}
}

func TestTableFormatter_EmptyWindow(t *testing.T) {
	rendered := TableFormatter{}.FormatWindow(pagecache.Result[scryfall.Card]{}, 0)
	if !strings.Contains(rendered, "no matches") {
		t.Errorf("empty table output missing summary:\n%s", rendered)
	}

	beyond := pagecache.Result[scryfall.Card]{TotalCount: 3}
	rendered = TableFormatter{}.FormatWindow(beyond, 10)
	if !strings.Contains(rendered, "window beyond 3 results") {
		t.Errorf("out-of-range table output missing summary:\n%s", rendered)
	}
}

func TestJSONFormatter_FormatWindow(t *testing.T) {
	out, err := JSONFormatter{}.FormatWindow(sampleWindow(), 20)
	if err != nil {
		t.Fatalf("FormatWindow() error = %v", err)
	}

	var payload WindowPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(payload.Items) != 2 || payload.TotalCount != 42 || !payload.HasMore || payload.Offset != 20 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestJSONFormatter_EmptyItemsIsArray(t *testing.T) {
	out, err := JSONFormatter{}.FormatWindow(pagecache.Result[scryfall.Card]{}, 0)
	if err != nil {
		t.Fatalf("FormatWindow() error = %v", err)
	}
	if !strings.Contains(out, `"items":[]`) {
		t.Errorf("empty window must encode items as [], got %s", out)
	}
}
