package solar

import (
	"context"
	"log"
	"math"

	"github.com/lox/solarscout/internal/models"
)

// MultiYearAverage attempts every candidate year, skipping any that fails to
// fetch or parse, and averages the survivors. Unlike LatestAnnual it never
// stops early: one bad year must not hide the rest. Only when every candidate
// fails does it report ErrNoData.
func (a *Assessor) MultiYearAverage(ctx context.Context, lat, lng float64) (*AverageAssessment, error) {
	var years []models.YearSummary
	for _, year := range a.years {
		raw, err := a.fetcher.FetchSeries(ctx, a.fetcher.SeriesURL(year, lat, lng))
		if err != nil {
			log.Printf("solar: skipping year %d: %v", year, err)
			continue
		}
		sum, err := parseSeries(raw, year)
		if err != nil {
			log.Printf("solar: skipping year %d: %v", year, err)
			continue
		}
		years = append(years, sum)
	}
	if len(years) == 0 {
		return nil, ErrNoData
	}

	return &AverageAssessment{
		Location: models.Location{Latitude: lat, Longitude: lng},
		Stats:    aggregate(years),
		Source:   PSM3SourceLabel,
	}, nil
}

// aggregate computes the multi-year mean and population standard deviation
// (divide by N, not N-1) of the per-year daily averages. Years must be
// non-empty.
func aggregate(years []models.YearSummary) models.MultiYearStats {
	n := float64(len(years))

	var ghiSum, dniSum float64
	for _, y := range years {
		ghiSum += y.GHIDailyAvg
		dniSum += y.DNIDailyAvg
	}
	ghiMean := ghiSum / n

	var sq float64
	for _, y := range years {
		d := y.GHIDailyAvg - ghiMean
		sq += d * d
	}

	return models.MultiYearStats{
		Years:          years,
		AvgGHIDaily:    ghiMean,
		AvgDNIDaily:    dniSum / n,
		StdDevGHIDaily: math.Sqrt(sq / n),
	}
}
