package models

// Location is the geographic point a request is assessed for.
type Location struct {
	Latitude  float64
	Longitude float64
}

// YearSummary is the reduced form of one dataset-year's hourly irradiance
// export. Totals are in kWh/m²; daily averages divide the annual total by a
// fixed 365 days regardless of leap years, matching the upstream convention.
type YearSummary struct {
	Year        int
	GHITotal    float64
	DNITotal    float64
	SampleCount int
	GHIDailyAvg float64
	DNIDailyAvg float64
}

// DatasetInfo carries the catalog metadata for the dataset a summary was drawn from.
type DatasetInfo struct {
	Name           string
	Type           string
	ResolutionType string
}

// MultiYearStats aggregates summaries across several years of the same
// dataset. Years holds the surviving summaries in fetch-attempt order.
type MultiYearStats struct {
	Years          []YearSummary
	AvgGHIDaily    float64
	AvgDNIDaily    float64
	StdDevGHIDaily float64
}
