// Package stocksapi is a client for the stocks API: three read-only JSON
// endpoints serving company profiles, company statistics and price histories.
package stocksapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Endpoint describes one of the three document endpoints.
type Endpoint struct {
	Name  string // used in errors and logs
	Path  string // relative to the base URL
	Field string // top-level key holding the single-element array
}

// The fixed endpoints of the stocks API.
var (
	ProfileEndpoint = Endpoint{Name: "profile", Path: "getstocksprofiledata", Field: "stocksProfileData"}
	StatsEndpoint   = Endpoint{Name: "stats", Path: "getstockstatsdata", Field: "stocksStatsData"}
	SeriesEndpoint  = Endpoint{Name: "series", Path: "getstocksdata", Field: "stocksData"}
)

// Endpoints lists the three endpoints in fetch order.
func Endpoints() []Endpoint {
	return []Endpoint{ProfileEndpoint, StatsEndpoint, SeriesEndpoint}
}

const userAgent = "stockdash/1"

// Client fetches documents from the stocks API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit paces outgoing requests to perSec with the given burst.
// A non-positive perSec disables pacing.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) {
		if perSec <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// NewClient creates a stocks API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL endpoint paths are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAll requests the three documents concurrently. It succeeds only if all
// three succeed; on any failure the others are cancelled and no documents are
// returned.
func (c *Client) FetchAll(ctx context.Context) (Documents, error) {
	var docs Documents

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.fetch(gctx, ProfileEndpoint, &docs.Profiles) })
	g.Go(func() error { return c.fetch(gctx, StatsEndpoint, &docs.Stats) })
	g.Go(func() error { return c.fetch(gctx, SeriesEndpoint, &docs.Series) })

	if err := g.Wait(); err != nil {
		return Documents{}, err
	}
	return docs, nil
}

// FetchStats requests only the statistics document.
func (c *Client) FetchStats(ctx context.Context) (StatsDoc, error) {
	var d StatsDoc
	if err := c.fetch(ctx, StatsEndpoint, &d); err != nil {
		return StatsDoc{}, err
	}
	return d, nil
}

// FetchProfiles requests only the profile document.
func (c *Client) FetchProfiles(ctx context.Context) (ProfileDoc, error) {
	var d ProfileDoc
	if err := c.fetch(ctx, ProfileEndpoint, &d); err != nil {
		return ProfileDoc{}, err
	}
	return d, nil
}

// FetchSeries requests only the price-series document.
func (c *Client) FetchSeries(ctx context.Context) (SeriesDoc, error) {
	var d SeriesDoc
	if err := c.fetch(ctx, SeriesEndpoint, &d); err != nil {
		return SeriesDoc{}, err
	}
	return d, nil
}

func (c *Client) fetch(ctx context.Context, ep Endpoint, dst any) error {
	u, err := url.JoinPath(c.baseURL, ep.Path)
	if err != nil {
		return fmt.Errorf("building %s url: %w", ep.Name, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("fetching %s: %w", ep.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", ep.Name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", ep.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &HTTPStatusError{Endpoint: ep.Name, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", ep.Name, err)
	}
	return DecodeEnvelope(ep, body, dst)
}

// DecodeEnvelope unwraps `{"<field>": [doc]}` and decodes doc into dst.
// Any other shape is a MalformedResponseError.
func DecodeEnvelope(ep Endpoint, body []byte, dst any) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return &MalformedResponseError{Endpoint: ep.Name, Err: err}
	}
	raw, ok := env[ep.Field]
	if !ok {
		return &MalformedResponseError{Endpoint: ep.Name, Err: fmt.Errorf("missing field %q", ep.Field)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return &MalformedResponseError{Endpoint: ep.Name, Err: fmt.Errorf("field %q: %w", ep.Field, err)}
	}
	if len(items) != 1 {
		return &MalformedResponseError{
			Endpoint: ep.Name,
			Err:      fmt.Errorf("field %q has %d elements: %w", ep.Field, len(items), ErrNotSingleElement),
		}
	}

	if err := json.Unmarshal(items[0], dst); err != nil {
		return &MalformedResponseError{Endpoint: ep.Name, Err: err}
	}
	return nil
}
