package plausible

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/feature-tracker/pkg/models/domain"
	"github.com/de-tools/feature-tracker/pkg/services/config"
	"github.com/de-tools/feature-tracker/pkg/services/metrics"
	"github.com/rs/zerolog"
)

const (
	goalProperty   = "event:goal"
	requestTimeout = 30 * time.Second
)

// Client talks to a Plausible-compatible stats API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	apiKey     string
	siteID     string
	period     string
}

// SourceFactory builds a Client as a metrics.Source.
func SourceFactory(cfg *config.Config) (metrics.Source, error) {
	return NewClient(cfg), nil
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		apiKey:     cfg.APIKey,
		siteID:     cfg.SiteID,
		period:     cfg.Period,
	}
}

func (c *Client) FeatureVisitors(
	ctx context.Context,
	pagePath, featureCode string,
	rng domain.DateRange,
) (float64, error) {
	filters := fmt.Sprintf("event:goal==%s;event:page==%s", featureCode, pagePath)
	return c.aggregate(ctx, rng, filters)
}

func (c *Client) FeatureTotals(
	ctx context.Context,
	rng domain.DateRange,
) (map[string]metrics.FeatureTotals, error) {
	return c.breakdown(ctx, rng, "")
}

func (c *Client) PageFeatureTotals(
	ctx context.Context,
	pagePath string,
	rng domain.DateRange,
) (map[string]metrics.FeatureTotals, error) {
	return c.breakdown(ctx, rng, fmt.Sprintf("event:page==%s", pagePath))
}

func (c *Client) SiteVisitors(ctx context.Context, rng domain.DateRange) (float64, error) {
	return c.aggregate(ctx, rng, "")
}

func (c *Client) PageVisitors(ctx context.Context, pagePath string, rng domain.DateRange) (float64, error) {
	return c.aggregate(ctx, rng, fmt.Sprintf("event:page==%s", pagePath))
}

type aggregateResponse struct {
	Results struct {
		Visitors struct {
			Value float64 `json:"value"`
		} `json:"visitors"`
	} `json:"results"`
}

func (c *Client) aggregate(ctx context.Context, rng domain.DateRange, filters string) (float64, error) {
	params := c.baseParams(rng)
	params.Set("metrics", "visitors")
	if filters != "" {
		params.Set("filters", filters)
	}

	var resp aggregateResponse
	if err := c.getJSON(ctx, "aggregate", params, &resp); err != nil {
		return 0, err
	}
	return resp.Results.Visitors.Value, nil
}

type breakdownResponse struct {
	Results []map[string]any `json:"results"`
}

func (c *Client) breakdown(
	ctx context.Context,
	rng domain.DateRange,
	filters string,
) (map[string]metrics.FeatureTotals, error) {
	params := c.baseParams(rng)
	params.Set("property", goalProperty)
	params.Set("metrics", "visitors,events")
	if filters != "" {
		params.Set("filters", filters)
	}

	var resp breakdownResponse
	if err := c.getJSON(ctx, "breakdown", params, &resp); err != nil {
		return nil, err
	}

	totals := make(map[string]metrics.FeatureTotals, len(resp.Results))
	for _, row := range resp.Results {
		name := rowName(row)
		if name == "" {
			continue
		}
		totals[name] = metrics.FeatureTotals{
			Visitors: rowNumber(row, "visitors"),
			Events:   rowNumber(row, "events"),
		}
	}
	return totals, nil
}

// rowName tolerates the key spellings different API versions use for the
// goal column.
func rowName(row map[string]any) string {
	for _, key := range []string{"goal", goalProperty, "name"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func rowNumber(row map[string]any, key string) float64 {
	v, _ := row[key].(float64)
	return v
}

func (c *Client) baseParams(rng domain.DateRange) url.Values {
	params := url.Values{}
	params.Set("site_id", c.siteID)
	params.Set("period", c.period)
	params.Set("date", fmt.Sprintf("%s,%s",
		rng.Start.Format(domain.DateLayout), rng.End.Format(domain.DateLayout)))
	return params
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s/%s?%s", c.baseURL, c.apiVersion, endpoint, params.Encode())

	zerolog.Ctx(ctx).Debug().Str("url", reqURL).Msg("querying metrics source")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
