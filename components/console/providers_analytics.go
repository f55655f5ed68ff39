package console

import (
	"context"
	"time"

	"github.com/goliatone/go-datagrid/components/chartdata"
)

// ABTestRepository loads experiment results from the analytics backend.
type ABTestRepository interface {
	FetchABTestReport(ctx context.Context, query ABTestQuery) (ABTestReport, error)
}

// QualityReportRepository loads rendering quality distributions.
type QualityReportRepository interface {
	FetchQualityReport(ctx context.Context, query QualityQuery) (QualityReport, error)
}

// UsageReportRepository loads render volume over time.
type UsageReportRepository interface {
	FetchUsageReport(ctx context.Context, query UsageQuery) (UsageReport, error)
}

// ABTestQuery selects an experiment and the confidence level to report at.
type ABTestQuery struct {
	Experiment string
	Confidence float64
}

// ABTestReport captures per-variant outcomes.
type ABTestReport struct {
	Experiment string
	Confidence float64
	Variants   []ABTestVariant
	Winner     string
}

// ABTestVariant is a single experiment arm.
type ABTestVariant struct {
	Name        string
	Exposures   int
	Conversions int
	Rate        float64
	Uplift      float64
}

// QualityQuery controls histogram shape.
type QualityQuery struct {
	BucketCount int
	Threshold   float64
}

// QualityReport contains score buckets and the share below threshold.
type QualityReport struct {
	Threshold      float64
	BelowThreshold float64
	Buckets        []QualityBucket
}

// QualityBucket is one histogram bucket.
type QualityBucket struct {
	Low   float64
	High  float64
	Count int
}

// UsageQuery configures trend queries.
type UsageQuery struct {
	LookbackDays int
	MaxPoints    int
	Strategy     chartdata.Strategy
}

// UsageReport carries render counts per day.
type UsageReport struct {
	Points []UsagePoint
	Total  int
}

// UsagePoint is one time bucket.
type UsagePoint struct {
	Timestamp time.Time
	Renders   int
}

type abTestProvider struct {
	repo ABTestRepository
}

// NewABTestProvider wires an ABTestRepository into a Provider.
func NewABTestProvider(repo ABTestRepository) Provider {
	if repo == nil {
		repo = DemoABTestRepository{}
	}
	return &abTestProvider{repo: repo}
}

func (p *abTestProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	query := extractABTestQuery(meta.Instance.Configuration)
	report, err := p.repo.FetchABTestReport(ctx, query)
	if err != nil {
		return nil, err
	}
	variants := make([]map[string]any, 0, len(report.Variants))
	for _, v := range report.Variants {
		variants = append(variants, map[string]any{
			"name":        v.Name,
			"exposures":   v.Exposures,
			"conversions": v.Conversions,
			"rate":        v.Rate,
			"uplift":      v.Uplift,
		})
	}
	return PanelData{
		"experiment": report.Experiment,
		"confidence": report.Confidence,
		"variants":   variants,
		"winner":     report.Winner,
	}, nil
}

type qualityProvider struct {
	repo QualityReportRepository
}

// NewQualityScoresProvider wires quality repositories for score panels.
func NewQualityScoresProvider(repo QualityReportRepository) Provider {
	if repo == nil {
		repo = DemoQualityRepository{}
	}
	return &qualityProvider{repo: repo}
}

func (p *qualityProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	query := extractQualityQuery(meta.Instance.Configuration)
	report, err := p.repo.FetchQualityReport(ctx, query)
	if err != nil {
		return nil, err
	}
	buckets := make([]map[string]any, 0, len(report.Buckets))
	for _, b := range report.Buckets {
		buckets = append(buckets, map[string]any{
			"low":   b.Low,
			"high":  b.High,
			"count": b.Count,
		})
	}
	return PanelData{
		"threshold":       report.Threshold,
		"below_threshold": report.BelowThreshold,
		"buckets":         buckets,
	}, nil
}

type usageTrendProvider struct {
	repo UsageReportRepository
}

// NewUsageTrendProvider wires usage repositories into a Provider. Points are
// downsampled through chartdata before they reach the template.
func NewUsageTrendProvider(repo UsageReportRepository) Provider {
	if repo == nil {
		repo = DemoUsageRepository{}
	}
	return &usageTrendProvider{repo: repo}
}

func (p *usageTrendProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	query := extractUsageQuery(meta.Instance.Configuration)
	report, err := p.repo.FetchUsageReport(ctx, query)
	if err != nil {
		return nil, err
	}

	points := make([]chartdata.Point, 0, len(report.Points))
	for _, pt := range report.Points {
		points = append(points, chartdata.Point{
			"timestamp": pt.Timestamp,
			"label":     pt.Timestamp.Format("2006-01-02"),
			"value":     float64(pt.Renders),
		})
	}
	points = chartdata.SampleAxis(points, query.MaxPoints, query.Strategy, "timestamp")

	series := make([]map[string]any, 0, len(points))
	for _, pt := range points {
		series = append(series, map[string]any{
			"day":     pt["label"],
			"renders": pt["value"],
		})
	}
	return PanelData{
		"lookback_days": query.LookbackDays,
		"series":        series,
		"total":         report.Total,
	}, nil
}

func extractABTestQuery(config map[string]any) ABTestQuery {
	confidence := float64Value(config["confidence"])
	if confidence <= 0 || confidence > 1 {
		confidence = 0.95
	}
	return ABTestQuery{
		Experiment: stringValue(config["experiment"], "subject-line-v2"),
		Confidence: confidence,
	}
}

func extractQualityQuery(config map[string]any) QualityQuery {
	buckets := intValue(config["bucket_count"])
	if buckets < 2 {
		buckets = 10
	}
	threshold := float64Value(config["threshold"])
	if threshold <= 0 || threshold > 1 {
		threshold = 0.6
	}
	return QualityQuery{BucketCount: buckets, Threshold: threshold}
}

func extractUsageQuery(config map[string]any) UsageQuery {
	days := intValue(config["lookback_days"])
	if days <= 0 {
		days = 30
	}
	maxPoints := intValue(config["max_points"])
	if maxPoints <= 0 {
		maxPoints = 120
	}
	strategy := chartdata.Strategy(stringValue(config["sample_strategy"], string(chartdata.StrategyTime)))
	return UsageQuery{LookbackDays: days, MaxPoints: maxPoints, Strategy: strategy}
}

// DemoABTestRepository returns static experiment data for demos/tests.
type DemoABTestRepository struct{}

func (DemoABTestRepository) FetchABTestReport(ctx context.Context, query ABTestQuery) (ABTestReport, error) {
	variants := []ABTestVariant{
		{Name: "control", Exposures: 5120, Conversions: 486},
		{Name: "variant-a", Exposures: 5075, Conversions: 559},
		{Name: "variant-b", Exposures: 5098, Conversions: 517},
	}
	base := 0.0
	winner := ""
	best := 0.0
	for i := range variants {
		v := &variants[i]
		if v.Exposures > 0 {
			v.Rate = float64(v.Conversions) / float64(v.Exposures) * 100
		}
		if i == 0 {
			base = v.Rate
		} else if base > 0 {
			v.Uplift = (v.Rate - base) / base * 100
		}
		if v.Rate > best {
			best = v.Rate
			winner = v.Name
		}
	}
	return ABTestReport{
		Experiment: query.Experiment,
		Confidence: query.Confidence,
		Variants:   variants,
		Winner:     winner,
	}, nil
}

// DemoQualityRepository returns a synthetic score histogram.
type DemoQualityRepository struct{}

func (DemoQualityRepository) FetchQualityReport(ctx context.Context, query QualityQuery) (QualityReport, error) {
	width := 1.0 / float64(query.BucketCount)
	buckets := make([]QualityBucket, query.BucketCount)
	total := 0
	below := 0
	for i := range buckets {
		low := float64(i) * width
		count := 3 + (i*7)%23
		buckets[i] = QualityBucket{Low: low, High: low + width, Count: count}
		total += count
		if low+width <= query.Threshold {
			below += count
		}
	}
	share := 0.0
	if total > 0 {
		share = float64(below) / float64(total) * 100
	}
	return QualityReport{
		Threshold:      query.Threshold,
		BelowThreshold: share,
		Buckets:        buckets,
	}, nil
}

// DemoUsageRepository returns synthetic daily render volume.
type DemoUsageRepository struct{}

func (DemoUsageRepository) FetchUsageReport(ctx context.Context, query UsageQuery) (UsageReport, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]UsagePoint, 0, query.LookbackDays)
	total := 0
	for i := query.LookbackDays - 1; i >= 0; i-- {
		renders := 2400 + (i*311)%900
		points = append(points, UsagePoint{
			Timestamp: now.AddDate(0, 0, -i),
			Renders:   renders,
		})
		total += renders
	}
	return UsageReport{Points: points, Total: total}, nil
}
