package analytics

import (
	"context"
	"sync"

	console "github.com/goliatone/go-datagrid/components/console"
)

// MockData seeds deterministic analytics responses for tests or local demos.
type MockData struct {
	ABTests console.ABTestReport
	Quality console.QualityReport
	Usage   console.UsageReport
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchABTests returns the configured experiment report ignoring query filters.
func (c *MockClient) FetchABTests(context.Context, console.ABTestQuery) (console.ABTestReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneABTests(c.data.ABTests), nil
}

// FetchQuality returns the configured quality report ignoring query filters.
func (c *MockClient) FetchQuality(context.Context, console.QualityQuery) (console.QualityReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneQuality(c.data.Quality), nil
}

// FetchUsage returns the configured usage report ignoring query filters.
func (c *MockClient) FetchUsage(context.Context, console.UsageQuery) (console.UsageReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneUsage(c.data.Usage), nil
}

func cloneABTests(report console.ABTestReport) console.ABTestReport {
	out := console.ABTestReport{
		Experiment: report.Experiment,
		Confidence: report.Confidence,
		Winner:     report.Winner,
		Variants:   make([]console.ABTestVariant, len(report.Variants)),
	}
	copy(out.Variants, report.Variants)
	return out
}

func cloneQuality(report console.QualityReport) console.QualityReport {
	out := console.QualityReport{
		Threshold:      report.Threshold,
		BelowThreshold: report.BelowThreshold,
		Buckets:        make([]console.QualityBucket, len(report.Buckets)),
	}
	copy(out.Buckets, report.Buckets)
	return out
}

func cloneUsage(report console.UsageReport) console.UsageReport {
	out := console.UsageReport{
		Total:  report.Total,
		Points: make([]console.UsagePoint, len(report.Points)),
	}
	copy(out.Points, report.Points)
	return out
}
