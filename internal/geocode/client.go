package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Result carries a successful resolution of a free-text query (address or
// eircode) to WGS84 coordinates.
type Result struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName,omitempty"`
}

// ProviderError reports a failed lookup together with the provider's status,
// keeping the failure variant distinct from the success variant.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geocode provider error (status %d): %s", e.Status, e.Message)
}

// ClientConfig configures the external provider client.
type ClientConfig struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	Timeout      time.Duration
}

// Client calls a Nominatim-style search endpoint.
type Client struct {
	baseURL      string
	userAgent    string
	countryCodes string
	httpClient   *http.Client
}

// NewClient creates a provider client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:    cfg.UserAgent,
		countryCodes: cfg.CountryCodes,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a query against the provider. A query the provider does
// not know yields a *ProviderError, as does any non-OK response.
func (c *Client) Geocode(ctx context.Context, query string) (Result, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read geocode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, &ProviderError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Result{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return Result{}, &ProviderError{
			Status:  http.StatusNotFound,
			Message: "no results for query",
		}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("provider returned invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("provider returned invalid longitude %q: %w", results[0].Lon, err)
	}

	return Result{Lat: lat, Lng: lng, DisplayName: results[0].DisplayName}, nil
}
