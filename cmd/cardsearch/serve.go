package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtgbrew/cardsearch/pkg/metrics"
	"github.com/mtgbrew/cardsearch/pkg/output"
	"github.com/mtgbrew/cardsearch/pkg/pagecache"
	"github.com/mtgbrew/cardsearch/pkg/scryfall"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the window API over HTTP",
	Long: `Expose the pagination cache as a small HTTP API:

  GET /search?q=<query>&order=<order>&offset=<n>&limit=<n>
  GET /healthz
  GET /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")
		})
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/search", searchHandler(app.cache, app.cfg.MaxLimit))

		server := &http.Server{
			Addr:              app.cfg.Serve.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		app.logger.Info().
			Str("addr", app.cfg.Serve.Addr).
			Dur("min_interval", app.cfg.MinInterval).
			Dur("ttl", app.cfg.TTL).
			Msg("Serving window API")

		return server.ListenAndServe()
	},
}

// searchHandler answers one window request per call. It is the HTTP
// counterpart of the search subcommand.
func searchHandler(cache *pagecache.Cache[scryfall.Card], maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "missing q parameter", http.StatusBadRequest)
			return
		}
		order := r.URL.Query().Get("order")

		offset, err := intParam(r, "offset", 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit, err := intParam(r, "limit", 20)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if offset < 0 || limit < 0 {
			http.Error(w, "offset and limit must be non-negative", http.StatusBadRequest)
			return
		}
		if limit > maxLimit {
			http.Error(w, fmt.Sprintf("limit exceeds maximum of %d", maxLimit), http.StatusBadRequest)
			return
		}

		res, err := cache.Window(r.Context(), query, order, offset, limit)
		if err != nil {
			var ue *scryfall.UpstreamError
			if errors.As(err, &ue) {
				http.Error(w, ue.Error(), http.StatusBadGateway)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		payload := output.WindowPayload{
			Items:      res.Items,
			TotalCount: res.TotalCount,
			HasMore:    res.HasMore,
			Offset:     offset,
		}
		if payload.Items == nil {
			payload.Items = []scryfall.Card{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// Too late for an error status; the write already started.
			return
		}
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
