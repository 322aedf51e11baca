package solar

import (
	"context"
	"fmt"
	"log"

	"github.com/lox/solarscout/internal/models"
)

// PSM3SourceLabel names the fixed dataset used by the non-catalog strategies.
const PSM3SourceLabel = "NREL NSRDB PSM3"

// LatestAnnual walks the fixed candidate years in order and returns the first
// year that fetches successfully. A retryable upstream failure (rate limit,
// server error) moves on to the next candidate; any other fetch failure is
// terminal. Once a fetch succeeds the candidate chain ends: a payload that
// then fails to parse is a terminal error, not a trigger for more fallback.
func (a *Assessor) LatestAnnual(ctx context.Context, lat, lng float64) (*Assessment, error) {
	var lastErr error
	for _, year := range a.years {
		raw, err := a.fetcher.FetchSeries(ctx, a.fetcher.SeriesURL(year, lat, lng))
		if err != nil {
			if retryable(err) {
				log.Printf("solar: year %d unavailable, trying next candidate: %v", year, err)
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("fetch year %d: %w", year, err)
		}

		sum, err := parseSeries(raw, year)
		if err != nil {
			return nil, fmt.Errorf("parse year %d: %w", year, err)
		}

		return &Assessment{
			Location: models.Location{Latitude: lat, Longitude: lng},
			Summary:  sum,
			Source:   PSM3SourceLabel,
		}, nil
	}
	return nil, fmt.Errorf("all candidate years unavailable: %w", lastErr)
}
