package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgbrew/cardsearch/pkg/deckvault"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

var deckGameFormat string

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Deck service operations",
}

var deckPushCmd = &cobra.Command{
	Use:   "push <name> <listfile>",
	Short: "Resolve a decklist and save it to the deck service",
	Long: `Read a decklist file (one "<count> <card name>" line per card,
count optional), resolve every name through the upstream collection
endpoint, and store the deck under the configured deck service account.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if app.cfg.Deckvault.BaseURL == "" {
			return fmt.Errorf("deckvault.base_url is not configured")
		}

		lines, err := readDecklist(args[1])
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("decklist %s is empty", args[1])
		}

		ids := make([]scryfall.Identifier, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, scryfall.Identifier{Name: line.name})
		}
		resolved, err := app.client.Collection(cmd.Context(), ids)
		if err != nil {
			return err
		}
		if len(resolved.NotFound) > 0 {
			names := make([]string, 0, len(resolved.NotFound))
			for _, id := range resolved.NotFound {
				names = append(names, id.Name)
			}
			return fmt.Errorf("unresolved cards: %s", strings.Join(names, ", "))
		}

		byName := make(map[string]scryfall.Card, len(resolved.Cards))
		for _, card := range resolved.Cards {
			byName[strings.ToLower(card.Name)] = card
		}

		deck := deckvault.Deck{Name: args[0], Format: deckGameFormat}
		for _, line := range lines {
			card, ok := byName[strings.ToLower(line.name)]
			if !ok {
				return fmt.Errorf("upstream resolved %q under a different name", line.name)
			}
			deck.Entries = append(deck.Entries, deckvault.DeckEntry{
				CardID:   card.ID,
				Name:     card.Name,
				Quantity: line.quantity,
			})
		}

		dv, err := deckvault.New(deckvault.Config{BaseURL: app.cfg.Deckvault.BaseURL}, app.logger)
		if err != nil {
			return err
		}
		session, err := dv.Login(cmd.Context(), app.cfg.Deckvault.Username, app.cfg.Deckvault.Password)
		if err != nil {
			return err
		}
		id, err := dv.SaveDeck(cmd.Context(), session, deck)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved deck %q (%d lines) as %s\n", deck.Name, len(deck.Entries), id)
		return nil
	},
}

type decklistLine struct {
	quantity int
	name     string
}

// parseDecklistLine parses one "<count> <card name>" line; a missing count
// means one copy. Blank lines and lines starting with # are skipped by the
// caller.
func parseDecklistLine(line string) (decklistLine, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return decklistLine{}, fmt.Errorf("empty line")
	}

	if qty, err := strconv.Atoi(strings.TrimSuffix(fields[0], "x")); err == nil {
		if qty <= 0 {
			return decklistLine{}, fmt.Errorf("invalid count in %q", line)
		}
		if len(fields) < 2 {
			return decklistLine{}, fmt.Errorf("count without card name in %q", line)
		}
		return decklistLine{quantity: qty, name: strings.Join(fields[1:], " ")}, nil
	}

	return decklistLine{quantity: 1, name: strings.Join(fields, " ")}, nil
}

func readDecklist(path string) ([]decklistLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open decklist: %w", err)
	}
	defer f.Close()

	var lines []decklistLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		line, err := parseDecklistLine(text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read decklist: %w", err)
	}
	return lines, nil
}

func init() {
	deckPushCmd.Flags().StringVar(&deckGameFormat, "game-format", "", "deck format label (e.g. modern)")
	deckCmd.AddCommand(deckPushCmd)
	rootCmd.AddCommand(deckCmd)
}
