package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtgbrew/cardsearch/pkg/output"
)

var (
	searchOrder  string
	searchOffset int
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fetch one window of search results",
	Example: `  cardsearch search "t:goblin cmc<3" --order cmc --limit 10
  cardsearch search "lightning" --offset 40 --limit 20 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if searchOffset < 0 || searchLimit < 0 {
			return fmt.Errorf("offset and limit must be non-negative")
		}
		if searchLimit > app.cfg.MaxLimit {
			return fmt.Errorf("limit %d exceeds the maximum of %d", searchLimit, app.cfg.MaxLimit)
		}

		res, err := app.cache.Window(cmd.Context(), args[0], searchOrder, searchOffset, searchLimit)
		if err != nil {
			return err
		}

		switch searchFormat {
		case "table":
			fmt.Fprintln(cmd.OutOrStdout(), output.TableFormatter{}.FormatWindow(res, searchOffset))
		case "json":
			out, err := output.JSONFormatter{Indent: true}.FormatWindow(res, searchOffset)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			return fmt.Errorf("unknown format %q (want table or json)", searchFormat)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchOrder, "order", "name", "upstream sort order")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "window start position")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "window size")
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format (table|json)")
	rootCmd.AddCommand(searchCmd)
}
