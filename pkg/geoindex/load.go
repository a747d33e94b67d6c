package geoindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// catalogueURL is the ourairports-json catalogue this index is built from.
const catalogueURL = "https://raw.githubusercontent.com/viert/ourairports-json/main/output/airport_list.json"

// Load fetches and parses the airport catalogue, then builds an Index.
func Load(ctx context.Context) (*Index, error) {
	airports, err := fetchCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	idx := Build(airports)
	slog.Info("geodata indexed", "airports", idx.Len(), "elapsed", time.Since(t0))
	return idx, nil
}

func fetchCatalogue(ctx context.Context) ([]Airport, error) {
	slog.Info("loading geodata", "url", catalogueURL)
	t0 := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogueURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geoindex: building request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoindex: fetching catalogue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoindex: catalogue fetch returned %s", resp.Status)
	}

	var airports []Airport
	if err := json.NewDecoder(resp.Body).Decode(&airports); err != nil {
		return nil, fmt.Errorf("geoindex: decoding catalogue: %w", err)
	}
	slog.Info("geodata loaded", "airports", len(airports), "elapsed", time.Since(t0))
	return airports, nil
}
