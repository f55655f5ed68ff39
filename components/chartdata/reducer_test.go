package chartdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReducerMemoizesOnInputIdentity(t *testing.T) {
	data := valuePoints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	var reducer Reducer

	first := reducer.Sample(data, 3, StrategyUniform)
	second := reducer.Sample(data, 3, StrategyUniform)

	require.NotEmpty(t, first)
	assert.True(t, &first[0] == &second[0], "same inputs must return the cached result")
}

func TestReducerRecomputesWhenInputsChange(t *testing.T) {
	data := valuePoints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	var reducer Reducer

	uniform := reducer.Sample(data, 3, StrategyUniform)
	assert.Equal(t, []int{0, 4, 8}, values(uniform))

	adaptive := reducer.Sample(data, 3, StrategyAdaptive)
	assert.Equal(t, 9, adaptive[2]["value"], "strategy change recomputes")

	other := valuePoints(10, 11, 12, 13, 14, 15)
	out := reducer.Sample(other, 3, StrategyUniform)
	assert.Equal(t, []int{10, 12, 14}, values(out))
}

func TestReducerInvalidate(t *testing.T) {
	data := valuePoints(0, 1, 2, 3, 4, 5)
	var reducer Reducer

	first := reducer.Sample(data, 2, StrategyUniform)
	reducer.Invalidate()
	second := reducer.Sample(data, 2, StrategyUniform)

	assert.Equal(t, values(first), values(second))
	assert.False(t, &first[0] == &second[0], "invalidate drops the cache")
}
