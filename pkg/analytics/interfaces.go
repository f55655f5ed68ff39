package analytics

import (
	"context"

	console "github.com/goliatone/go-datagrid/components/console"
)

// ABTestClient fetches experiment results from upstream analytics services.
type ABTestClient interface {
	FetchABTests(ctx context.Context, query console.ABTestQuery) (console.ABTestReport, error)
}

// QualityClient fetches rendering quality distributions from BI systems.
type QualityClient interface {
	FetchQuality(ctx context.Context, query console.QualityQuery) (console.QualityReport, error)
}

// UsageClient fetches render volume metrics.
type UsageClient interface {
	FetchUsage(ctx context.Context, query console.UsageQuery) (console.UsageReport, error)
}

// Client is a convenience union for services that implement all analytics calls.
type Client interface {
	ABTestClient
	QualityClient
	UsageClient
}
