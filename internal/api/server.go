package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/solarscout/internal/solar"
)

// Assessor is the strategy surface the server exposes over HTTP.
type Assessor interface {
	BestAvailableYear(ctx context.Context, lat, lng float64) (*solar.Assessment, error)
	LatestAnnual(ctx context.Context, lat, lng float64) (*solar.Assessment, error)
	MultiYearAverage(ctx context.Context, lat, lng float64) (*solar.AverageAssessment, error)
}

type Server struct {
	assessor Assessor
	port     string
}

func NewServer(assessor Assessor, port string) *Server {
	return &Server{assessor: assessor, port: port}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/solar/latest", cors(http.HandlerFunc(s.handleLatest)))
	mux.Handle("/api/solar/annual", cors(http.HandlerFunc(s.handleAnnual)))
	mux.Handle("/api/solar/average", cors(http.HandlerFunc(s.handleAverage)))
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// cors allows browser clients anywhere to call the JSON API and answers
// preflight requests directly.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
