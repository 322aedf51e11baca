// Package series reduces raw NSRDB CSV exports to annual irradiance summaries.
//
// Exports arrive as loosely structured text: a few metadata lines, then a
// header row naming the columns, then hourly samples. The parser locates the
// header, sums the GHI/DNI columns over rows that carry a finite GHI value,
// and derives daily averages.
package series

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/lox/solarscout/internal/models"
)

const (
	// minLines is the smallest export that could hold metadata, a header
	// and at least one sample.
	minLines = 10

	// headerScanLimit bounds how far into the payload the header may sit.
	headerScanLimit = 15

	whPerKWh    = 1000.0
	daysPerYear = 365.0 // fixed divisor, not leap-year-aware
)

var (
	ErrInsufficientData = errors.New("series: payload too short to contain a header and samples")
	ErrHeaderNotFound   = errors.New("series: no header row mentioning GHI within scan window")
	ErrColumnNotFound   = errors.New("series: header row has no GHI column")
	ErrNoValidRecords   = errors.New("series: no rows with a parseable GHI value")
)

// Parse reduces one dataset-year's raw export to a YearSummary. Totals are
// converted from the source's Wh/m² to kWh/m². Rows whose GHI field is
// missing or non-finite are skipped without aborting; a row may contribute
// to the GHI sum without contributing to DNI when only its DNI field is bad.
//
// Header detection is substring-based (any early line mentioning GHI), while
// column lookup requires the exact field name after trimming and uppercasing.
// The asymmetry is deliberate: headers like "GHI (W/m2)" units rows must not
// be mistaken for a GHI data column.
func Parse(raw string, year int) (models.YearSummary, error) {
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	if len(lines) < minLines {
		return models.YearSummary{}, ErrInsufficientData
	}

	headerIdx := -1
	limit := min(headerScanLimit, len(lines))
	for i := 0; i < limit; i++ {
		if strings.Contains(strings.ToUpper(lines[i]), "GHI") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return models.YearSummary{}, ErrHeaderNotFound
	}

	ghiIdx, dniIdx := -1, -1
	for i, field := range strings.Split(lines[headerIdx], ",") {
		switch strings.ToUpper(strings.TrimSpace(field)) {
		case "GHI":
			if ghiIdx < 0 {
				ghiIdx = i
			}
		case "DNI":
			if dniIdx < 0 {
				dniIdx = i
			}
		}
	}
	if ghiIdx < 0 {
		return models.YearSummary{}, ErrColumnNotFound
	}

	var ghiSum, dniSum float64
	samples := 0
	for _, line := range lines[headerIdx+1:] {
		fields := strings.Split(line, ",")
		if ghiIdx >= len(fields) {
			continue
		}
		ghi, ok := parseFinite(fields[ghiIdx])
		if !ok {
			continue
		}
		ghiSum += ghi
		samples++

		if dniIdx >= 0 && dniIdx < len(fields) {
			if dni, ok := parseFinite(fields[dniIdx]); ok {
				dniSum += dni
			}
		}
	}
	if samples == 0 {
		return models.YearSummary{}, ErrNoValidRecords
	}

	ghiTotal := ghiSum / whPerKWh
	dniTotal := dniSum / whPerKWh
	return models.YearSummary{
		Year:        year,
		GHITotal:    ghiTotal,
		DNITotal:    dniTotal,
		SampleCount: samples,
		GHIDailyAvg: ghiTotal / daysPerYear,
		DNIDailyAvg: dniTotal / daysPerYear,
	}, nil
}

// parseFinite parses a CSV field as a finite float. ParseFloat accepts "NaN"
// and "Inf" spellings, so finiteness is checked explicitly.
func parseFinite(field string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
