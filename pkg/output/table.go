// Package output renders card search results for terminals and scripts.
package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatWindow renders one result window. offset is the window's starting
// position in the full result set; it feeds the row numbers and the footer.
func (TableFormatter) FormatWindow(res pagecache.Result[scryfall.Card], offset int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Name", "Cost", "Type", "Set", "Rarity", "USD"})

	for i, card := range res.Items {
		t.AppendRow(table.Row{
			offset + i + 1,
			card.Name,
			card.ManaCost,
			card.TypeLine,
			strings.ToUpper(card.Set),
			card.Rarity,
			priceLabel(card),
		})
	}

	summary := "no matches"
	if len(res.Items) > 0 {
		summary = fmt.Sprintf("showing %d-%d of %d", offset+1, offset+len(res.Items), res.TotalCount)
		if res.HasMore {
			summary += ", more available"
		}
	} else if res.TotalCount > 0 {
		summary = fmt.Sprintf("window beyond %d results", res.TotalCount)
	}
	t.AppendFooter(table.Row{"", summary, "", "", "", "", ""})

	return t.Render()
}

// FormatCards renders a plain card list, for point lookups.
func (TableFormatter) FormatCards(cards []scryfall.Card) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Cost", "Type", "Set", "Rarity", "USD"})

	for _, card := range cards {
		t.AppendRow(table.Row{
			card.Name,
			card.ManaCost,
			card.TypeLine,
			strings.ToUpper(card.Set),
			card.Rarity,
			priceLabel(card),
		})
	}

	return t.Render()
}

func priceLabel(card scryfall.Card) string {
	if card.Prices.USD == "" {
		return "-"
	}
	return "$" + card.Prices.USD
}
