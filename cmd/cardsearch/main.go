// Command cardsearch is the command surface over the pagination cache:
// windowed card search, batched point lookups, deck pushes, and an HTTP
// serve mode.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mtgbrew/cardsearch/internal/config"
	"github.com/mtgbrew/cardsearch/pkg/logging"
	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/ratelimit"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

var (
	cfgFile    string
	verbose    bool
	prettyLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "cardsearch",
	Short: "Windowed search over a fixed-page card API",
	Long: `cardsearch accelerates a fixed-page, forward-only card search API:
it serializes upstream calls under the API's minimum request interval,
buffers fetched pages per (query, order), and answers arbitrary
offset/limit windows from the buffer without re-fetching known data.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "human-readable log output")
}

// app bundles the components wired behind every subcommand: one pacer, one
// upstream client and one pagination cache per process.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	pacer  *ratelimit.Pacer
	client *scryfall.Client
	cache  *pagecache.Cache[scryfall.Card]
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := logging.LogLevel(cfg.Log.Level)
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.Setup(logging.Config{
		Level:  level,
		Pretty: cfg.Log.Pretty || prettyLogs,
		Output: os.Stderr,
	})

	pacer := ratelimit.NewPacer(cfg.MinInterval, logging.NewLogger("pacer"))

	client, err := scryfall.New(scryfall.Config{
		BaseURL:   cfg.Search.BaseURL,
		UserAgent: cfg.UserAgent,
		Pacer:     pacer,
	}, logger)
	if err != nil {
		return nil, err
	}

	cache := pagecache.New[scryfall.Card](client, pacer, logging.NewLogger("pagecache"),
		pagecache.WithTTL(cfg.TTL),
		pagecache.WithPageSize(cfg.PageSize),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		pacer:  pacer,
		client: client,
		cache:  cache,
	}, nil
}
