package api

import (
	"github.com/lox/solarscout/internal/models"
	"github.com/lox/solarscout/internal/solar"
)

type locationView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type solarView struct {
	Year          int     `json:"year"`
	AnnualGHI     float64 `json:"annualGhi"`
	AnnualDNI     float64 `json:"annualDni"`
	AvgGHIDaily   float64 `json:"avgGhiDaily"`
	AvgDNIDaily   float64 `json:"avgDniDaily"`
	HoursRecorded int     `json:"hoursRecorded"`
}

type datasetView struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Resolution string `json:"resolution"`
}

type assessmentResponse struct {
	Location locationView `json:"location"`
	Solar    solarView    `json:"solar"`
	Dataset  *datasetView `json:"dataset,omitempty"`
	Source   string       `json:"source"`
}

type averageResponse struct {
	Location      locationView `json:"location"`
	Years         []solarView  `json:"years"`
	AvgGHI        float64      `json:"avgGhi"`
	AvgDNI        float64      `json:"avgDni"`
	StdDev        float64      `json:"stdDev"`
	YearsIncluded int          `json:"yearsIncluded"`
	Source        string       `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func solarViewFrom(sum models.YearSummary) solarView {
	return solarView{
		Year:          sum.Year,
		AnnualGHI:     sum.GHITotal,
		AnnualDNI:     sum.DNITotal,
		AvgGHIDaily:   sum.GHIDailyAvg,
		AvgDNIDaily:   sum.DNIDailyAvg,
		HoursRecorded: sum.SampleCount,
	}
}

func assessmentResponseFrom(a *solar.Assessment) assessmentResponse {
	resp := assessmentResponse{
		Location: locationView{Lat: a.Location.Latitude, Lng: a.Location.Longitude},
		Solar:    solarViewFrom(a.Summary),
		Source:   a.Source,
	}
	if a.Dataset != nil {
		resp.Dataset = &datasetView{
			Name:       a.Dataset.Name,
			Type:       a.Dataset.Type,
			Resolution: a.Dataset.ResolutionType,
		}
	}
	return resp
}

func averageResponseFrom(a *solar.AverageAssessment) averageResponse {
	resp := averageResponse{
		Location:      locationView{Lat: a.Location.Latitude, Lng: a.Location.Longitude},
		Years:         make([]solarView, 0, len(a.Stats.Years)),
		AvgGHI:        a.Stats.AvgGHIDaily,
		AvgDNI:        a.Stats.AvgDNIDaily,
		StdDev:        a.Stats.StdDevGHIDaily,
		YearsIncluded: len(a.Stats.Years),
		Source:        a.Source,
	}
	for _, y := range a.Stats.Years {
		resp.Years = append(resp.Years, solarViewFrom(y))
	}
	return resp
}
