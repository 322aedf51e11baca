package solar

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/solarscout/internal/nsrdb"
)

type fakeCatalog struct {
	datasets []nsrdb.Dataset
	err      error
}

func (f *fakeCatalog) QueryDatasets(ctx context.Context, lat, lng float64) ([]nsrdb.Dataset, error) {
	return f.datasets, f.err
}

// fakeFetcher serves canned payloads or errors keyed by URL and records the
// attempt order.
type fakeFetcher struct {
	payloads map[string]string
	errs     map[string]error
	calls    []string
}

func (f *fakeFetcher) SeriesURL(year int, lat, lng float64) string {
	return fmt.Sprintf("psm3:%d", year)
}

func (f *fakeFetcher) FetchSeries(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	payload, ok := f.payloads[url]
	if !ok {
		return "", &nsrdb.UpstreamError{Endpoint: "series", Status: 404}
	}
	return payload, nil
}

// seriesPayload builds a minimal parseable export with a single hourly
// sample carrying the given Wh/m² values.
func seriesPayload(ghiWh, dniWh float64) string {
	lines := []string{
		"Source,NSRDB",
		"Location ID,146282",
		"Year,Month,Day,Hour,GHI,DNI",
		fmt.Sprintf("2021,1,1,0,%g,%g", ghiWh, dniWh),
	}
	for len(lines) < 12 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// dailyAvgPayload builds an export whose GHI daily average works out to the
// given kWh/m² value under the fixed 365-day divisor.
func dailyAvgPayload(ghiDaily float64) string {
	return seriesPayload(ghiDaily*365*1000, 0)
}
