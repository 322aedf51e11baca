package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NSRDBCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarscout_nsrdb_api_calls_total",
			Help: "Total NREL NSRDB API calls",
		},
		[]string{"endpoint", "status"},
	)

	NSRDBLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solarscout_nsrdb_api_latency_seconds",
			Help:    "NSRDB API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SeriesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarscout_series_parsed_total",
			Help: "Irradiance series parse attempts by outcome",
		},
		[]string{"outcome"},
	)

	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarscout_assessments_total",
			Help: "Solar resource assessments served by mode and result",
		},
		[]string{"mode", "result"},
	)
)
