package solar

import (
	"context"
	"fmt"

	"github.com/lox/solarscout/internal/models"
	"github.com/lox/solarscout/internal/nsrdb"
)

// BestAvailableYear queries the catalog for the location, picks the dataset
// offering the strictly largest numeric year (first-seen dataset wins ties,
// marker-only datasets never win), and fetches exactly that year's series.
// There is no fallback: a fetch or parse failure is terminal.
func (a *Assessor) BestAvailableYear(ctx context.Context, lat, lng float64) (*Assessment, error) {
	datasets, err := a.catalog.QueryDatasets(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, ErrNoData
	}

	var (
		best     nsrdb.Dataset
		bestYear = -1
	)
	for _, ds := range datasets {
		for _, y := range ds.AvailableYears {
			if y.Numeric && y.Year > bestYear {
				best = ds
				bestYear = y.Year
			}
		}
	}
	if bestYear < 0 {
		return nil, ErrNoRecentYear
	}

	link, ok := seriesLink(best, bestYear)
	if !ok {
		return nil, fmt.Errorf("dataset %q offers year %d but no download link: %w", best.Name, bestYear, ErrNoData)
	}

	raw, err := a.fetcher.FetchSeries(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetch year %d: %w", bestYear, err)
	}

	sum, err := parseSeries(raw, bestYear)
	if err != nil {
		return nil, fmt.Errorf("parse year %d: %w", bestYear, err)
	}

	return &Assessment{
		Location: models.Location{Latitude: lat, Longitude: lng},
		Summary:  sum,
		Dataset: &models.DatasetInfo{
			Name:           best.DisplayName,
			Type:           best.Type,
			ResolutionType: best.ResolutionType,
		},
		Source: "NREL NSRDB",
	}, nil
}

// seriesLink finds the download link for a numeric year, preferring the
// hourly export when a dataset offers several intervals.
func seriesLink(ds nsrdb.Dataset, year int) (string, bool) {
	url, found := "", false
	for _, l := range ds.Links {
		if !l.Year.Numeric || l.Year.Year != year {
			continue
		}
		if l.Interval == 60 {
			return l.URL, true
		}
		if !found {
			url, found = l.URL, true
		}
	}
	return url, found
}
