package solar

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lox/solarscout/internal/nsrdb"
)

func dataset(name string, years ...nsrdb.YearRef) nsrdb.Dataset {
	ds := nsrdb.Dataset{
		Name:           name,
		DisplayName:    name,
		Type:           "Satellite",
		ResolutionType: "Hourly",
		AvailableYears: years,
	}
	for _, y := range years {
		if y.Numeric {
			ds.Links = append(ds.Links, nsrdb.Link{
				Year:     y,
				Interval: 60,
				URL:      name + ":" + y.String(),
			})
		}
	}
	return ds
}

func TestBestAvailableYear_PicksLargestNumericYear(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("goes", nsrdb.NumericYear(2019), nsrdb.NumericYear(2021)),
		dataset("meteosat", nsrdb.NumericYear(2020)),
	}}
	fetcher := &fakeFetcher{payloads: map[string]string{
		"goes:2021": seriesPayload(100, 50),
	}}

	a := NewAssessor(catalog, fetcher, nil)
	got, err := a.BestAvailableYear(context.Background(), -36.794, 146.977)
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary.Year != 2021 {
		t.Errorf("Year = %d, want 2021", got.Summary.Year)
	}
	if got.Dataset == nil || got.Dataset.Name != "goes" {
		t.Errorf("Dataset = %+v, want goes", got.Dataset)
	}
	if got.Summary.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", got.Summary.SampleCount)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != "goes:2021" {
		t.Errorf("calls = %v, want single fetch of goes:2021", fetcher.calls)
	}
}

func TestBestAvailableYear_MarkerYearsNeverWin(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("tmy-only", nsrdb.MarkerYear("tmy"), nsrdb.MarkerYear("tgy")),
		dataset("annual", nsrdb.NumericYear(2019)),
	}}
	fetcher := &fakeFetcher{payloads: map[string]string{
		"annual:2019": seriesPayload(100, 50),
	}}

	a := NewAssessor(catalog, fetcher, nil)
	got, err := a.BestAvailableYear(context.Background(), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Dataset.Name != "annual" || got.Summary.Year != 2019 {
		t.Errorf("selected %s year %d, want annual 2019", got.Dataset.Name, got.Summary.Year)
	}
}

func TestBestAvailableYear_TieKeepsFirstDataset(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("first", nsrdb.NumericYear(2020)),
		dataset("second", nsrdb.NumericYear(2020)),
	}}
	fetcher := &fakeFetcher{payloads: map[string]string{
		"first:2020": seriesPayload(100, 50),
	}}

	a := NewAssessor(catalog, fetcher, nil)
	got, err := a.BestAvailableYear(context.Background(), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Dataset.Name != "first" {
		t.Errorf("Dataset = %s, want first", got.Dataset.Name)
	}
}

func TestBestAvailableYear_NoNumericYear(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("tmy-only", nsrdb.MarkerYear("tmy")),
	}}

	a := NewAssessor(catalog, &fakeFetcher{}, nil)
	_, err := a.BestAvailableYear(context.Background(), 0, 0)
	if !errors.Is(err, ErrNoRecentYear) {
		t.Fatalf("expected ErrNoRecentYear, got %v", err)
	}
}

func TestBestAvailableYear_EmptyCatalog(t *testing.T) {
	t.Parallel()

	a := NewAssessor(&fakeCatalog{}, &fakeFetcher{}, nil)
	_, err := a.BestAvailableYear(context.Background(), 0, 0)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestBestAvailableYear_CatalogErrorPassedThrough(t *testing.T) {
	t.Parallel()

	uerr := &nsrdb.UpstreamError{Endpoint: "catalog", Status: http.StatusServiceUnavailable}
	a := NewAssessor(&fakeCatalog{err: uerr}, &fakeFetcher{}, nil)

	_, err := a.BestAvailableYear(context.Background(), 0, 0)
	var got *nsrdb.UpstreamError
	if !errors.As(err, &got) || got.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream 503, got %v", err)
	}
}

func TestBestAvailableYear_NoFallbackOnFetchFailure(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("goes", nsrdb.NumericYear(2019), nsrdb.NumericYear(2021)),
	}}
	fetcher := &fakeFetcher{errs: map[string]error{
		"goes:2021": &nsrdb.UpstreamError{Endpoint: "series", Status: http.StatusServiceUnavailable},
	}}

	a := NewAssessor(catalog, fetcher, nil)
	if _, err := a.BestAvailableYear(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error")
	}
	// 2019 must not be attempted after 2021 fails.
	if len(fetcher.calls) != 1 {
		t.Errorf("calls = %v, want exactly one attempt", fetcher.calls)
	}
}

func TestBestAvailableYear_ParseFailureTerminal(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{datasets: []nsrdb.Dataset{
		dataset("goes", nsrdb.NumericYear(2021)),
	}}
	fetcher := &fakeFetcher{payloads: map[string]string{
		"goes:2021": "too\nshort",
	}}

	a := NewAssessor(catalog, fetcher, nil)
	if _, err := a.BestAvailableYear(context.Background(), 0, 0); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSeriesLink_PrefersHourlyInterval(t *testing.T) {
	t.Parallel()

	ds := nsrdb.Dataset{Links: []nsrdb.Link{
		{Year: nsrdb.NumericYear(2021), Interval: 30, URL: "half-hourly"},
		{Year: nsrdb.NumericYear(2021), Interval: 60, URL: "hourly"},
	}}
	url, ok := seriesLink(ds, 2021)
	if !ok || url != "hourly" {
		t.Errorf("seriesLink = %q, %v; want hourly", url, ok)
	}

	ds.Links = ds.Links[:1]
	url, ok = seriesLink(ds, 2021)
	if !ok || url != "half-hourly" {
		t.Errorf("seriesLink = %q, %v; want half-hourly fallback", url, ok)
	}
}
