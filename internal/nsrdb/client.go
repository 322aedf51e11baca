// Package nsrdb talks to the NREL National Solar Radiation Database: the
// dataset catalog (data query) endpoint and the CSV export downloads it
// links to.
package nsrdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lox/solarscout/internal/httputil"
	"github.com/lox/solarscout/internal/metrics"
)

const (
	DefaultBaseURL = "https://developer.nrel.gov"

	catalogPath = "/api/solar/nsrdb_data_query.json"
	psm3Path    = "/api/nsrdb/v2/solar/psm3-download.csv"

	// Catalog download links embed these literal placeholders for the
	// caller's credentials.
	apiKeyPlaceholder = "yourapikey"
	emailPlaceholder  = "youremail"
)

// UpstreamError reports a non-success status from an NSRDB endpoint.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("nsrdb %s: status %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("nsrdb %s: status %d", e.Endpoint, e.Status)
}

// Retryable reports whether an alternate candidate is worth attempting after
// this failure. Rate limiting and server-side errors are transient; client
// errors are not.
func (e *UpstreamError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Client issues NSRDB requests with an injected API key, never reading
// credentials from ambient process state.
type Client struct {
	baseURL string
	apiKey  string
	email   string
	client  *http.Client
}

func New(apiKey, email string) *Client {
	return NewWithBaseURL(DefaultBaseURL, apiKey, email)
}

func NewWithBaseURL(baseURL, apiKey, email string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		email:   email,
		client:  httputil.NewClient(),
	}
}

// QueryDatasets asks the catalog which datasets and years cover a point.
func (c *Client) QueryDatasets(ctx context.Context, lat, lng float64) ([]Dataset, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("wkt", fmt.Sprintf("POINT(%g %g)", lng, lat))

	body, err := c.get(ctx, "catalog", c.baseURL+catalogPath+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return decodeCatalog(body)
}

// FetchSeries retrieves one dataset-year's raw CSV export. Catalog links
// carry credential placeholders which are substituted before the request.
func (c *Client) FetchSeries(ctx context.Context, rawURL string) (string, error) {
	u := strings.ReplaceAll(rawURL, apiKeyPlaceholder, c.apiKey)
	u = strings.ReplaceAll(u, emailPlaceholder, url.QueryEscape(c.email))

	body, err := c.get(ctx, "series", u)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// SeriesURL builds a PSM3 CSV download URL for a fixed year, used by the
// annual and multi-year strategies that bypass the catalog.
func (c *Client) SeriesURL(year int, lat, lng float64) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("email", c.email)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("names", strconv.Itoa(year))
	q.Set("interval", "60")
	q.Set("attributes", "ghi,dni")
	q.Set("utc", "false")
	return c.baseURL + psm3Path + "?" + q.Encode()
}

// get issues a GET with retry. Rate-limit responses are retried in place;
// any other failure is surfaced immediately so the caller can decide whether
// to fall back to another candidate.
func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", httputil.UserAgent)

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.NSRDBCallsTotal.WithLabelValues(endpoint, "error").Inc()
			return backoff.Permanent(fmt.Errorf("fetch %s: %w", endpoint, err))
		}
		defer resp.Body.Close()
		metrics.NSRDBLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		metrics.NSRDBCallsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			uerr := &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
			if resp.StatusCode == http.StatusTooManyRequests {
				return uerr
			}
			return backoff.Permanent(uerr)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
