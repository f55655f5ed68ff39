package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-datagrid/components/chartdata"
)

const (
	defaultChartHeight = "360px"
	defaultMaxPoints   = 200
)

var sharedChartCache = NewChartCache(5 * time.Minute)

type chartRenderContext struct {
	Viewer ViewerContext
	Theme  string
}

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// Series is one chart legend entry. Points carry "label" and "value" fields
// (or "x"/"y" pairs for scatter) and are bounded by the configured sampling
// strategy before they reach the chart runtime.
type Series struct {
	Name   string
	Points []chartdata.Point
}

// EChartsProvider renders server-side chart HTML for the given chart type,
// reducing every series through chartdata before conversion.
type EChartsProvider struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
	maxPoints     int
	strategy      chartdata.Strategy
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so the ECharts JS runtime loads
// from a CDN or self-hosted bucket.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// WithMaxPoints caps the number of points per series handed to the chart.
func WithMaxPoints(max int) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.maxPoints = max
	}
}

// WithSampleStrategy overrides the default uniform reduction.
func WithSampleStrategy(strategy chartdata.Strategy) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.strategy = strategy
	}
}

// NewEChartsProvider builds a provider for a specific chart type.
func NewEChartsProvider(chartType string, options ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
		maxPoints: defaultMaxPoints,
		strategy:  chartdata.StrategyUniform,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Fetch converts panel configuration into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}

	title := stringValue(cfg["title"], "Chart")
	subtitle := stringValue(cfg["subtitle"], "")

	if meta.Translator != nil {
		key := fmt.Sprintf("console.panel.%s.title", meta.Instance.DefinitionID)
		if translated := translateOrFallback(ctx, meta.Translator, key, meta.Viewer.Locale, title, nil); translated != "" {
			title = translated
		}
	}

	series := parseSeries(cfg["series"])
	if len(series) == 0 {
		return nil, fmt.Errorf("console: chart series is required")
	}

	series = p.boundSeries(series, cfg)

	xAxis := stringSliceValue(cfg["x_axis"])
	if len(xAxis) == 0 {
		xAxis = inferredAxisLabels(series)
	}

	renderCtx := chartRenderContext{
		Viewer: meta.Viewer,
		Theme:  p.resolveTheme(meta.Viewer),
	}
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		renderCtx.Theme = override
	}

	renderFn := func() (string, error) {
		return p.render(title, subtitle, xAxis, series, renderCtx)
	}

	var (
		html string
		err  error
	)

	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, p.chartType, configHash(cfg))
		html, err = p.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}

	data := PanelData{
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      title,
		"subtitle":   subtitle,
		"theme":      renderCtx.Theme,
	}

	if dynamic := boolValue(cfg["dynamic"]); dynamic {
		data["dynamic"] = true
		if refresh := stringValue(cfg["refresh_endpoint"], ""); refresh != "" {
			data["refresh_endpoint"] = refresh
		}
	}

	return data, nil
}

// boundSeries applies the sampling cap configured on the panel (falling back
// to the provider defaults) to every series.
func (p *EChartsProvider) boundSeries(series []Series, cfg map[string]any) []Series {
	maxPoints := p.maxPoints
	if v := intValue(cfg["max_points"]); v > 0 {
		maxPoints = v
	}
	strategy := p.strategy
	if v := stringValue(cfg["sample_strategy"], ""); v != "" {
		strategy = chartdata.Strategy(v)
	}
	axisKey := stringValue(cfg["axis_key"], "")

	out := make([]Series, len(series))
	for i, s := range series {
		out[i] = Series{
			Name:   s.Name,
			Points: chartdata.SampleAxis(s.Points, maxPoints, strategy, axisKey),
		}
	}
	return out
}

func (p *EChartsProvider) render(title, subtitle string, xAxis []string, series []Series, ctx chartRenderContext) (string, error) {
	switch p.chartType {
	case "bar":
		return p.renderBarChart(title, subtitle, xAxis, series, ctx)
	case "line":
		return p.renderLineChart(title, subtitle, xAxis, series, ctx)
	case "pie":
		return p.renderPieChart(title, subtitle, series, ctx)
	case "scatter":
		return p.renderScatterChart(title, subtitle, series, ctx)
	case "gauge":
		return p.renderGaugeChart(title, series, ctx)
	default:
		return "", fmt.Errorf("console: unsupported chart type: %s", p.chartType)
	}
}

func (p *EChartsProvider) renderBarChart(title, subtitle string, xAxis []string, series []Series, ctx chartRenderContext) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalChartOptions(title, subtitle, ctx)...)
	bar.SetXAxis(xAxis)
	for _, s := range series {
		bar.AddSeries(s.Name, toBarData(s.Points))
	}
	return renderChart(bar)
}

func (p *EChartsProvider) renderLineChart(title, subtitle string, xAxis []string, series []Series, ctx chartRenderContext) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(title, subtitle, ctx)...)
	line.SetXAxis(xAxis)
	for _, s := range series {
		line.AddSeries(s.Name, toLineData(s.Points))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (p *EChartsProvider) renderPieChart(title, subtitle string, series []Series, ctx chartRenderContext) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalChartOptions(title, subtitle, ctx)...)
	for _, s := range series {
		pie.AddSeries(s.Name, toPieData(s.Points))
	}
	return renderChart(pie)
}

func (p *EChartsProvider) renderScatterChart(title, subtitle string, series []Series, ctx chartRenderContext) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(p.globalChartOptions(title, subtitle, ctx)...)
	for _, s := range series {
		scatter.AddSeries(s.Name, toScatterData(s.Points))
	}
	return renderChart(scatter)
}

func (p *EChartsProvider) renderGaugeChart(title string, series []Series, ctx chartRenderContext) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(p.globalChartOptions(title, "", ctx)...)
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		gauge.AddSeries(s.Name, []opts.GaugeData{
			{Name: s.Name, Value: pointValue(s.Points[0])},
		})
	}
	return renderChart(gauge)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(title, subtitle string, ctx chartRenderContext) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  ctx.Theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func (p *EChartsProvider) resolveTheme(viewer ViewerContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return types.ThemeWesteros
}

func pointLabel(point chartdata.Point) string {
	return stringValue(point["label"], "")
}

func pointValue(point chartdata.Point) float64 {
	return float64Value(point["value"])
}

func pointPair(point chartdata.Point) []float64 {
	x, xOK := point["x"]
	y, yOK := point["y"]
	if !xOK || !yOK {
		return nil
	}
	return []float64{float64Value(x), float64Value(y)}
}

func toBarData(points []chartdata.Point) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  pointLabel(point),
			Value: pointValue(point),
		}
	}
	return data
}

func toLineData(points []chartdata.Point) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  pointLabel(point),
			Value: pointValue(point),
		}
	}
	return data
}

func toPieData(points []chartdata.Point) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := pointLabel(point)
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: pointValue(point),
		}
	}
	return data
}

func toScatterData(points []chartdata.Point) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, point := range points {
		value := []float64{float64(i + 1), pointValue(point)}
		if pair := pointPair(point); len(pair) == 2 {
			value = pair
		}
		data[i] = opts.ScatterData{
			Name:  pointLabel(point),
			Value: value,
		}
	}
	return data
}

func inferredAxisLabels(series []Series) []string {
	if len(series) == 0 {
		return nil
	}
	var candidate []string
	max := 0
	for _, s := range series {
		if len(s.Points) > max {
			max = len(s.Points)
			candidate = make([]string, len(s.Points))
			for i, point := range s.Points {
				if label := pointLabel(point); label != "" {
					candidate[i] = label
				} else {
					candidate[i] = fmt.Sprintf("Item %d", i+1)
				}
			}
		}
	}
	return candidate
}

// parseSeries accepts the loosely-typed series shapes that survive YAML/JSON
// decoding of panel configuration.
func parseSeries(v any) []Series {
	switch val := v.(type) {
	case []Series:
		return val
	case []map[string]any:
		out := make([]Series, 0, len(val))
		for _, item := range val {
			if series := buildSeries(item); len(series.Points) > 0 {
				out = append(out, series)
			}
		}
		return out
	case []any:
		out := make([]Series, 0, len(val))
		for _, item := range val {
			seriesMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if series := buildSeries(seriesMap); len(series.Points) > 0 {
				out = append(out, series)
			}
		}
		return out
	default:
		return nil
	}
}

func buildSeries(m map[string]any) Series {
	return Series{
		Name:   stringValue(m["name"], "Series"),
		Points: parsePoints(m["data"]),
	}
}

func parsePoints(v any) []chartdata.Point {
	switch value := v.(type) {
	case []chartdata.Point:
		return value
	case []float64:
		points := make([]chartdata.Point, len(value))
		for i, val := range value {
			points[i] = chartdata.Point{"value": val}
		}
		return points
	case []int:
		points := make([]chartdata.Point, len(value))
		for i, val := range value {
			points[i] = chartdata.Point{"value": float64(val)}
		}
		return points
	case []any:
		return convertAnyPoints(value)
	case []map[string]any:
		points := make([]chartdata.Point, 0, len(value))
		for _, item := range value {
			points = append(points, pointFromMap(item))
		}
		return points
	default:
		return nil
	}
}

func convertAnyPoints(items []any) []chartdata.Point {
	points := make([]chartdata.Point, 0, len(items))
	for _, item := range items {
		switch val := item.(type) {
		case float64:
			points = append(points, chartdata.Point{"value": val})
		case float32:
			points = append(points, chartdata.Point{"value": float64(val)})
		case int:
			points = append(points, chartdata.Point{"value": float64(val)})
		case int64:
			points = append(points, chartdata.Point{"value": float64(val)})
		case json.Number:
			points = append(points, chartdata.Point{"value": float64Value(val)})
		case []float64:
			if len(val) >= 2 {
				points = append(points, chartdata.Point{"x": val[0], "y": val[1]})
			}
		case []any:
			if len(val) >= 2 {
				points = append(points, chartdata.Point{
					"x": float64Value(val[0]),
					"y": float64Value(val[1]),
				})
			}
		case map[string]any:
			points = append(points, pointFromMap(val))
		}
	}
	return points
}

func pointFromMap(m map[string]any) chartdata.Point {
	point := chartdata.Point{
		"label": stringValue(m["name"], stringValue(m["label"], "")),
		"value": float64Value(m["value"]),
	}
	if x, ok := m["x"]; ok {
		if y, yok := m["y"]; yok {
			point["x"] = float64Value(x)
			point["y"] = float64Value(y)
		}
	}
	if ts, ok := m["timestamp"]; ok {
		point["timestamp"] = ts
	}
	return point
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func intValue(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return 0
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return false
	}
}

func init() {
	RegisterPanelHook(func(reg *Registry) error {
		providers := map[string]string{
			"console.panel.bar_chart":     "bar",
			"console.panel.line_chart":    "line",
			"console.panel.pie_chart":     "pie",
			"console.panel.scatter_chart": "scatter",
			"console.panel.gauge_chart":   "gauge",
		}
		for code, chartType := range providers {
			if _, ok := reg.Provider(code); ok {
				continue
			}
			if _, ok := reg.Definition(code); !ok {
				continue
			}
			if err := reg.RegisterProvider(code, NewEChartsProvider(chartType)); err != nil {
				return err
			}
		}
		return nil
	})
}
