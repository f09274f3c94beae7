package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechLens/internal/model"
)

func TestSMA_Scenario(t *testing.T) {
	out, err := SMA(series(t, 10, 11, 12, 13, 14), 3)
	require.NoError(t, err)

	assert.Equal(t, "SMA_3", out.Name)
	assert.Equal(t, []model.Value{
		model.Undefined, model.Undefined, model.Of(11), model.Of(12), model.Of(13),
	}, out.Values)
}

func TestSMA_LengthPrefixAndMean(t *testing.T) {
	prices := zigzag(40)
	in := series(t, prices...)
	for _, w := range []int{1, 2, 5, 14, 40} {
		out, err := SMA(in, w)
		require.NoError(t, err)
		require.Equal(t, in.Len(), out.Len())
		requireUndefinedPrefix(t, out, w-1)

		sum := 0.0
		for _, p := range prices[:w] {
			sum += p
		}
		assert.InDelta(t, sum/float64(w), out.At(w-1).Float, 1e-9, "window %d", w)
		assert.Equal(t, in.Times, out.Times)
	}
}

func TestSMA_InsufficientDataIsAllUndefined(t *testing.T) {
	out, err := SMA(series(t, 1, 2, 3), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Zero(t, out.DefinedCount())
}

func TestSMA_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1, -50} {
		_, err := SMA(series(t, 1, 2, 3), w)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "window %d", w)
	}
}

func TestSMA_UndefinedInputPropagates(t *testing.T) {
	in := series(t, 1, 2, 3, 4, 5)
	in.Values[2] = model.Undefined

	out, err := SMA(in, 2)
	require.NoError(t, err)
	assert.True(t, out.At(1).Valid)
	assert.False(t, out.At(2).Valid)
	assert.False(t, out.At(3).Valid)
	assert.Equal(t, model.Of(4.5), out.At(4))
}

func TestSMA_WindowLongerThanSeries(t *testing.T) {
	in := series(t, 1, 2, 3)
	for _, w := range []int{4, 2_000_000_000, 1 << 62} {
		out, err := SMA(in, w)
		require.NoError(t, err)
		require.Equal(t, in.Len(), out.Len())
		assert.Zero(t, out.DefinedCount(), "window %d", w)
	}

	rsi, err := RSI(in, 1<<62)
	require.NoError(t, err)
	assert.Zero(t, rsi.DefinedCount())

	bb, err := Bollinger(in, 1<<62, 2)
	require.NoError(t, err)
	assert.Zero(t, bb.Upper.DefinedCount())
}
