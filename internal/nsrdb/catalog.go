package nsrdb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dataset is one catalog entry from the data query endpoint.
type Dataset struct {
	Name           string    `json:"name"`
	DisplayName    string    `json:"displayName"`
	Type           string    `json:"type"`
	ResolutionType string    `json:"resolutionType"`
	AvailableYears []YearRef `json:"availableYears"`
	Links          []Link    `json:"links"`
}

// Link is one downloadable export for a dataset.
type Link struct {
	Year     YearRef `json:"year"`
	Interval int     `json:"interval"`
	URL      string  `json:"link"`
}

// YearRef is an availableYears entry. The catalog mixes numeric years with
// marker strings such as "tmy" for typical-year products, so a plain int
// will not decode.
type YearRef struct {
	Year    int
	Marker  string
	Numeric bool
}

func NumericYear(y int) YearRef {
	return YearRef{Year: y, Numeric: true}
}

func MarkerYear(m string) YearRef {
	return YearRef{Marker: m}
}

func (y *YearRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = NumericYear(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year value %s is neither number nor string", data)
	}
	// Some catalog responses quote numeric years.
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*y = NumericYear(n)
		return nil
	}
	*y = MarkerYear(s)
	return nil
}

func (y YearRef) MarshalJSON() ([]byte, error) {
	if y.Numeric {
		return json.Marshal(y.Year)
	}
	return json.Marshal(y.Marker)
}

func (y YearRef) String() string {
	if y.Numeric {
		return strconv.Itoa(y.Year)
	}
	return y.Marker
}

type catalogResponse struct {
	Errors  []string  `json:"errors"`
	Outputs []Dataset `json:"outputs"`
}

func decodeCatalog(body []byte) ([]Dataset, error) {
	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("catalog query failed: %s", strings.Join(resp.Errors, "; "))
	}
	return resp.Outputs, nil
}
