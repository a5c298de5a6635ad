package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTransform = [6]float64{100, 10, 0, 200, 0, -10}

func TestNewGrid(t *testing.T) {
	g := NewGrid(4, 3, testTransform, "WGS84")

	require.Len(t, g.Data, 12)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			assert.True(t, g.IsNoData(x, y))
		}
	}

	g.Set(2, 1, 0.5)
	assert.Equal(t, 0.5, g.At(2, 1))
	assert.False(t, g.IsNoData(2, 1))
}

func TestIsNoData_NaN(t *testing.T) {
	g := NewGrid(1, 1, testTransform, "")
	g.Set(0, 0, math.NaN())
	assert.True(t, g.IsNoData(0, 0))
}

func TestBoundsAndCellCenter(t *testing.T) {
	g := NewGrid(4, 3, testTransform, "")

	xMin, yMin, xMax, yMax := g.Bounds()
	assert.Equal(t, 100.0, xMin)
	assert.Equal(t, 170.0, yMin)
	assert.Equal(t, 140.0, xMax)
	assert.Equal(t, 200.0, yMax)

	cx, cy := g.CellCenter(0, 0)
	assert.Equal(t, 105.0, cx)
	assert.Equal(t, 195.0, cy)

	cx, cy = g.CellCenter(3, 2)
	assert.Equal(t, 135.0, cx)
	assert.Equal(t, 175.0, cy)
}

func TestSameShape(t *testing.T) {
	a := NewGrid(4, 3, testTransform, "")
	b := NewGrid(4, 3, testTransform, "")
	c := NewGrid(3, 4, testTransform, "")
	d := NewGrid(4, 3, [6]float64{0, 10, 0, 200, 0, -10}, "")

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
	assert.False(t, a.SameShape(d))
}

func TestSummary(t *testing.T) {
	t.Run("skips no-data cells", func(t *testing.T) {
		g := NewGrid(2, 2, testTransform, "")
		g.Set(0, 0, 1)
		g.Set(1, 0, 3)

		stats, err := g.Summary()
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, 2.0, stats.Mean)
	})

	t.Run("errors on empty grid", func(t *testing.T) {
		g := NewGrid(2, 2, testTransform, "")
		_, err := g.Summary()
		require.Error(t, err)
	})
}

func TestStatistics(t *testing.T) {
	t.Run("even count", func(t *testing.T) {
		stats := Statistics([]float64{4, 1, 3, 2})
		assert.Equal(t, 4, stats.Count)
		assert.Equal(t, 2.5, stats.Mean)
		assert.InDelta(t, math.Sqrt(1.25), stats.Std, 1e-12)
		assert.Equal(t, 1.0, stats.Min)
		assert.Equal(t, 4.0, stats.Max)
		assert.Equal(t, 2.5, stats.Median)
	})

	t.Run("odd count", func(t *testing.T) {
		stats := Statistics([]float64{5, 1, 3})
		assert.Equal(t, 3.0, stats.Median)
	})
}
