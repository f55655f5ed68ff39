package chartdata

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Point is one sample of a chart series: field name to primitive value. Order
// along the implicit axis is carried by the slice, not the point.
type Point map[string]any

// Strategy selects how a series is reduced to a bounded subset.
type Strategy string

const (
	// StrategyUniform keeps every ceil(n/maxPoints)-th element starting at 0.
	StrategyUniform Strategy = "uniform"
	// StrategyAdaptive spreads maxPoints picks across the series and always
	// preserves the exact endpoint.
	StrategyAdaptive Strategy = "adaptive"
	// StrategyTime sorts a copy by the detected time field before uniform
	// sampling. Without a time-like field it degrades to uniform.
	StrategyTime Strategy = "time-based"
)

var timeFieldPattern = regexp.MustCompile(`(?i)time|date`)

// Sample reduces data to at most maxPoints points without reordering or
// mutating the source. When len(data) <= maxPoints (or maxPoints is not
// positive) the input is returned unchanged.
func Sample(data []Point, maxPoints int, strategy Strategy) []Point {
	return SampleAxis(data, maxPoints, strategy, "")
}

// SampleAxis is Sample with an explicit axis key for time-based detection.
func SampleAxis(data []Point, maxPoints int, strategy Strategy, axisKey string) []Point {
	n := len(data)
	if maxPoints <= 0 || n <= maxPoints {
		return data
	}
	switch strategy {
	case StrategyAdaptive:
		return sampleAdaptive(data, maxPoints)
	case StrategyTime:
		return sampleTime(data, maxPoints, axisKey)
	default:
		return sampleUniform(data, maxPoints)
	}
}

// sampleUniform picks indices 0, step, 2*step, ... with step = ceil(n/max),
// which keeps the output length at or below maxPoints for every n.
func sampleUniform(data []Point, maxPoints int) []Point {
	n := len(data)
	step := (n + maxPoints - 1) / maxPoints
	out := make([]Point, 0, maxPoints)
	for i := 0; i < n; i += step {
		out = append(out, data[i])
	}
	return out
}

// sampleAdaptive keeps floor(i*n/max) for i = 0..max-1 and force-overwrites
// the final pick with the true last source element.
func sampleAdaptive(data []Point, maxPoints int) []Point {
	n := len(data)
	out := make([]Point, maxPoints)
	for i := 0; i < maxPoints; i++ {
		out[i] = data[i*n/maxPoints]
	}
	out[maxPoints-1] = data[n-1]
	return out
}

func sampleTime(data []Point, maxPoints int, axisKey string) []Point {
	field := detectTimeField(data, axisKey)
	if field == "" {
		return sampleUniform(data, maxPoints)
	}
	sorted := make([]Point, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return axisLess(sorted[i][field], sorted[j][field])
	})
	return sampleUniform(sorted, maxPoints)
}

// detectTimeField returns the axis key when the series carries it, otherwise
// the first field (in lexical order, for determinism) whose name matches
// /time|date/i. Empty means no candidate.
func detectTimeField(data []Point, axisKey string) string {
	if len(data) == 0 {
		return ""
	}
	first := data[0]
	if axisKey != "" {
		if _, ok := first[axisKey]; ok {
			return axisKey
		}
	}
	fields := make([]string, 0, len(first))
	for name := range first {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		if timeFieldPattern.MatchString(name) {
			return name
		}
	}
	return ""
}

func axisLess(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Before(bt)
		}
	}
	af, aok := numeric(a)
	bf, bok := numeric(b)
	if aok && bok {
		return af < bf
	}
	return axisString(a) < axisString(b)
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

func axisString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case nil:
		return ""
	default:
		if f, ok := numeric(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ""
	}
}
