// Package solar decides which NSRDB dataset-years to request for a location
// and reduces the surviving per-year summaries to a final assessment.
//
// Three strategies exist because upstream availability is unpredictable per
// location and per year: BestAvailableYear asks the catalog and takes the
// newest year it offers, LatestAnnual walks a fixed candidate list with
// fallback, and MultiYearAverage attempts every candidate and averages the
// survivors.
package solar

import (
	"context"
	"errors"

	"github.com/lox/solarscout/internal/metrics"
	"github.com/lox/solarscout/internal/models"
	"github.com/lox/solarscout/internal/nsrdb"
	"github.com/lox/solarscout/internal/series"
)

var (
	// ErrNoData means the provider has no usable datasets or years for the
	// location.
	ErrNoData = errors.New("solar: no data available for location")

	// ErrNoRecentYear means datasets exist but none reports a numeric year,
	// only markers like "tmy".
	ErrNoRecentYear = errors.New("solar: no dataset reports a usable numeric year")
)

// Catalog reports which datasets cover a point.
type Catalog interface {
	QueryDatasets(ctx context.Context, lat, lng float64) ([]nsrdb.Dataset, error)
}

// SeriesFetcher retrieves raw exports, either from a catalog link or from a
// URL it builds for a fixed year.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, url string) (string, error)
	SeriesURL(year int, lat, lng float64) string
}

// DefaultCandidateYears is the fixed fallback window for the strategies that
// bypass the catalog, most recent known PSM3 year first.
var DefaultCandidateYears = []int{2022, 2021, 2020, 2019, 2018}

// Assessment is a single-year result, from either the best-available-year or
// the fixed-candidate strategy.
type Assessment struct {
	Location models.Location
	Summary  models.YearSummary
	Dataset  *models.DatasetInfo // only set by the catalog-driven strategy
	Source   string
}

// AverageAssessment is the multi-year result.
type AverageAssessment struct {
	Location models.Location
	Stats    models.MultiYearStats
	Source   string
}

// Assessor runs the strategies against injected collaborators. Fetches are
// issued sequentially; all accumulation state lives on the stack of a single
// call, so an Assessor is safe for concurrent use.
type Assessor struct {
	catalog Catalog
	fetcher SeriesFetcher
	years   []int
}

func NewAssessor(catalog Catalog, fetcher SeriesFetcher, candidateYears []int) *Assessor {
	if len(candidateYears) == 0 {
		candidateYears = DefaultCandidateYears
	}
	return &Assessor{catalog: catalog, fetcher: fetcher, years: candidateYears}
}

// parseSeries wraps series.Parse with outcome instrumentation.
func parseSeries(raw string, year int) (models.YearSummary, error) {
	sum, err := series.Parse(raw, year)
	metrics.SeriesParsed.WithLabelValues(parseOutcome(err)).Inc()
	return sum, err
}

func parseOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, series.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, series.ErrHeaderNotFound):
		return "header_not_found"
	case errors.Is(err, series.ErrColumnNotFound):
		return "column_not_found"
	case errors.Is(err, series.ErrNoValidRecords):
		return "no_valid_records"
	default:
		return "error"
	}
}

// retryable reports whether a fetch failure suggests trying the next
// candidate rather than giving up.
func retryable(err error) bool {
	var uerr *nsrdb.UpstreamError
	return errors.As(err, &uerr) && uerr.Retryable()
}
