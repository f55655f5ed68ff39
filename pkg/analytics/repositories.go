package analytics

import (
	"context"

	console "github.com/goliatone/go-datagrid/components/console"
)

// NewABTestRepository adapts an analytics client into a console repository.
func NewABTestRepository(client ABTestClient) console.ABTestRepository {
	return &abTestRepository{client: client}
}

type abTestRepository struct {
	client ABTestClient
}

func (r *abTestRepository) FetchABTestReport(ctx context.Context, query console.ABTestQuery) (console.ABTestReport, error) {
	return r.client.FetchABTests(ctx, query)
}

// NewQualityRepository adapts the analytics client for quality panels.
func NewQualityRepository(client QualityClient) console.QualityReportRepository {
	return &qualityRepository{client: client}
}

type qualityRepository struct {
	client QualityClient
}

func (r *qualityRepository) FetchQualityReport(ctx context.Context, query console.QualityQuery) (console.QualityReport, error) {
	return r.client.FetchQuality(ctx, query)
}

// NewUsageRepository adapts usage clients into the trend panel.
func NewUsageRepository(client UsageClient) console.UsageReportRepository {
	return &usageRepository{client: client}
}

type usageRepository struct {
	client UsageClient
}

func (r *usageRepository) FetchUsageReport(ctx context.Context, query console.UsageQuery) (console.UsageReport, error) {
	return r.client.FetchUsage(ctx, query)
}
