package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/lox/solarscout/internal/metrics"
	"github.com/lox/solarscout/internal/nsrdb"
	"github.com/lox/solarscout/internal/series"
	"github.com/lox/solarscout/internal/solar"
)

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLocation(r)
	if err != nil {
		writeError(w, "latest", err)
		return
	}
	result, err := s.assessor.BestAvailableYear(r.Context(), lat, lng)
	if err != nil {
		writeError(w, "latest", err)
		return
	}
	writeJSON(w, "latest", assessmentResponseFrom(result))
}

func (s *Server) handleAnnual(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLocation(r)
	if err != nil {
		writeError(w, "annual", err)
		return
	}
	result, err := s.assessor.LatestAnnual(r.Context(), lat, lng)
	if err != nil {
		writeError(w, "annual", err)
		return
	}
	writeJSON(w, "annual", assessmentResponseFrom(result))
}

func (s *Server) handleAverage(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLocation(r)
	if err != nil {
		writeError(w, "average", err)
		return
	}
	result, err := s.assessor.MultiYearAverage(r.Context(), lat, lng)
	if err != nil {
		writeError(w, "average", err)
		return
	}
	writeJSON(w, "average", averageResponseFrom(result))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errInvalidInput marks request validation failures so they map to 400
// rather than an upstream category.
var errInvalidInput = errors.New("invalid input")

func parseLocation(r *http.Request) (lat, lng float64, err error) {
	lat, err = parseCoord(r.URL.Query().Get("lat"), 90)
	if err != nil {
		return 0, 0, fmt.Errorf("lat: %w", err)
	}
	lng, err = parseCoord(r.URL.Query().Get("lng"), 180)
	if err != nil {
		return 0, 0, fmt.Errorf("lng: %w", err)
	}
	return lat, lng, nil
}

func parseCoord(raw string, bound float64) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: missing parameter", errInvalidInput)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > bound {
		return 0, fmt.Errorf("%w: %q is not a valid coordinate", errInvalidInput, raw)
	}
	return v, nil
}

// errorCode maps the error taxonomy to an HTTP status and a stable code so
// callers can tell "no data here" from "upstream is down" from "bad request".
func errorCode(err error) (int, string) {
	var uerr *nsrdb.UpstreamError
	switch {
	case errors.Is(err, errInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &uerr):
		return http.StatusBadGateway, "upstream_error"
	case errors.Is(err, solar.ErrNoRecentYear):
		return http.StatusNotFound, "no_recent_year"
	case errors.Is(err, solar.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, series.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, series.ErrHeaderNotFound):
		return http.StatusUnprocessableEntity, "header_not_found"
	case errors.Is(err, series.ErrColumnNotFound):
		return http.StatusUnprocessableEntity, "column_not_found"
	case errors.Is(err, series.ErrNoValidRecords):
		return http.StatusUnprocessableEntity, "no_valid_records"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, mode string, v any) {
	metrics.AssessmentsTotal.WithLabelValues(mode, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, mode string, err error) {
	status, code := errorCode(err)
	metrics.AssessmentsTotal.WithLabelValues(mode, code).Inc()
	if status >= 500 {
		log.Printf("api: %s assessment failed: %v", mode, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Code: code})
}
