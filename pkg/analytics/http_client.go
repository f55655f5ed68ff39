package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	console "github.com/goliatone/go-datagrid/components/console"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to remote analytics services via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting live analytics APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchABTests implements ABTestClient by calling the experiments endpoint.
func (c *HTTPClient) FetchABTests(ctx context.Context, query console.ABTestQuery) (console.ABTestReport, error) {
	req := abTestRequest{
		Experiment: query.Experiment,
		Confidence: query.Confidence,
	}
	var resp abTestResponse
	if err := c.do(ctx, http.MethodPost, "/experiments/query", req, &resp); err != nil {
		return console.ABTestReport{}, err
	}
	return resp.toReport(), nil
}

// FetchQuality implements QualityClient via the quality endpoint.
func (c *HTTPClient) FetchQuality(ctx context.Context, query console.QualityQuery) (console.QualityReport, error) {
	req := qualityRequest{
		BucketCount: query.BucketCount,
		Threshold:   query.Threshold,
	}
	var resp qualityResponse
	if err := c.do(ctx, http.MethodPost, "/quality/query", req, &resp); err != nil {
		return console.QualityReport{}, err
	}
	return resp.toReport(), nil
}

// FetchUsage implements UsageClient via the usage endpoint.
func (c *HTTPClient) FetchUsage(ctx context.Context, query console.UsageQuery) (console.UsageReport, error) {
	req := usageRequest{
		LookbackDays: query.LookbackDays,
		MaxPoints:    query.MaxPoints,
		Strategy:     string(query.Strategy),
	}
	var resp usageResponse
	if err := c.do(ctx, http.MethodPost, "/usage/query", req, &resp); err != nil {
		return console.UsageReport{}, err
	}
	return resp.toReport()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analytics: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type abTestRequest struct {
	Experiment string  `json:"experiment"`
	Confidence float64 `json:"confidence"`
}

type abTestVariant struct {
	Name        string  `json:"name"`
	Exposures   int     `json:"exposures"`
	Conversions int     `json:"conversions"`
	Rate        float64 `json:"rate"`
	Uplift      float64 `json:"uplift"`
}

type abTestResponse struct {
	Experiment string          `json:"experiment"`
	Confidence float64         `json:"confidence"`
	Winner     string          `json:"winner"`
	Variants   []abTestVariant `json:"variants"`
}

func (r abTestResponse) toReport() console.ABTestReport {
	variants := make([]console.ABTestVariant, len(r.Variants))
	for i, v := range r.Variants {
		variants[i] = console.ABTestVariant{
			Name:        v.Name,
			Exposures:   v.Exposures,
			Conversions: v.Conversions,
			Rate:        v.Rate,
			Uplift:      v.Uplift,
		}
	}
	return console.ABTestReport{
		Experiment: r.Experiment,
		Confidence: r.Confidence,
		Winner:     r.Winner,
		Variants:   variants,
	}
}

type qualityRequest struct {
	BucketCount int     `json:"bucket_count"`
	Threshold   float64 `json:"threshold"`
}

type qualityBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type qualityResponse struct {
	Threshold      float64         `json:"threshold"`
	BelowThreshold float64         `json:"below_threshold"`
	Buckets        []qualityBucket `json:"buckets"`
}

func (r qualityResponse) toReport() console.QualityReport {
	buckets := make([]console.QualityBucket, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = console.QualityBucket{Low: b.Low, High: b.High, Count: b.Count}
	}
	return console.QualityReport{
		Threshold:      r.Threshold,
		BelowThreshold: r.BelowThreshold,
		Buckets:        buckets,
	}
}

type usageRequest struct {
	LookbackDays int    `json:"lookback_days"`
	MaxPoints    int    `json:"max_points"`
	Strategy     string `json:"strategy"`
}

type usagePoint struct {
	Day     string `json:"day"`
	Renders int    `json:"renders"`
}

type usageResponse struct {
	Total  int          `json:"total"`
	Points []usagePoint `json:"points"`
}

func (r usageResponse) toReport() (console.UsageReport, error) {
	points := make([]console.UsagePoint, len(r.Points))
	for i, p := range r.Points {
		day, err := time.Parse(time.DateOnly, p.Day)
		if err != nil {
			return console.UsageReport{}, fmt.Errorf("analytics: parse usage day %q: %w", p.Day, err)
		}
		points[i] = console.UsagePoint{Timestamp: day, Renders: p.Renders}
	}
	return console.UsageReport{Points: points, Total: r.Total}, nil
}
