package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtgbrew/cardsearch/pkg/output"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

var (
	lookupByID   bool
	lookupFormat string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name|id>...",
	Short: "Resolve cards by exact name or ID",
	Long: `Resolve cards through the upstream's batched collection endpoint.
Arguments are exact card names by default; pass --by-id to look up by
upstream card ID instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		ids := make([]scryfall.Identifier, 0, len(args))
		for _, arg := range args {
			if lookupByID {
				ids = append(ids, scryfall.Identifier{ID: arg})
			} else {
				ids = append(ids, scryfall.Identifier{Name: arg})
			}
		}

		result, err := app.client.Collection(cmd.Context(), ids)
		if err != nil {
			return err
		}

		for _, missing := range result.NotFound {
			app.logger.Warn().
				Str("name", missing.Name).
				Str("id", missing.ID).
				Msg("Card not found")
		}

		switch lookupFormat {
		case "table":
			fmt.Fprintln(cmd.OutOrStdout(), output.TableFormatter{}.FormatCards(result.Cards))
		case "json":
			out, err := output.JSONFormatter{Indent: true}.FormatCards(result.Cards)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			return fmt.Errorf("unknown format %q (want table or json)", lookupFormat)
		}

		if len(result.NotFound) > 0 {
			return fmt.Errorf("%d of %d cards not found", len(result.NotFound), len(ids))
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupByID, "by-id", false, "treat arguments as upstream card IDs")
	lookupCmd.Flags().StringVar(&lookupFormat, "format", "table", "output format (table|json)")
	rootCmd.AddCommand(lookupCmd)
}
