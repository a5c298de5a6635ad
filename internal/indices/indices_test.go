package indices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

var testTransform = [6]float64{0, 10, 0, 20, 0, -10}

func newBand(values []float64) *raster.Grid {
	g := raster.NewGrid(2, 2, testTransform, "WGS84")
	copy(g.Data, values)
	return g
}

func testBands() []*raster.Grid {
	bands := make([]*raster.Grid, BandCount)
	bands[BandBlue] = newBand([]float64{0.05, 0.05, 0.05, 0.05})
	bands[BandGreen] = newBand([]float64{0.10, 0.10, 0.10, 0.10})
	bands[BandRed] = newBand([]float64{0.10, 0.20, 0.10, 0.20})
	bands[BandNIR] = newBand([]float64{0.40, 0.50, 0.30, 0.60})
	bands[BandSWIR] = newBand([]float64{0.20, 0.20, 0.20, 0.20})
	return bands
}

func TestComputeIndexes_NDVI(t *testing.T) {
	set, err := ComputeIndexes(testBands())
	require.NoError(t, err)

	// NDVI = (NIR - RED) / (NIR + RED), computed by hand per cell.
	assert.InDelta(t, 0.6, set.NDVI.At(0, 0), 1e-9)
	assert.InDelta(t, 0.3/0.7, set.NDVI.At(1, 0), 1e-9)
	assert.InDelta(t, 0.5, set.NDVI.At(0, 1), 1e-9)
	assert.InDelta(t, 0.5, set.NDVI.At(1, 1), 1e-9)
}

func TestComputeIndexes_AllIndexesWithinRange(t *testing.T) {
	set, err := ComputeIndexes(testBands())
	require.NoError(t, err)

	for _, grid := range set.Grids() {
		for y := 0; y < grid.Height; y++ {
			for x := 0; x < grid.Width; x++ {
				v := grid.At(x, y)
				require.GreaterOrEqual(t, v, -1.0)
				require.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestComputeIndexes_BSI(t *testing.T) {
	bands := testBands()
	bands[BandBlue].Set(0, 0, 0.1)
	bands[BandRed].Set(0, 0, 0.2)
	bands[BandNIR].Set(0, 0, 0.3)
	bands[BandSWIR].Set(0, 0, 0.4)

	set, err := ComputeIndexes(bands)
	require.NoError(t, err)

	// ((0.4+0.2)-(0.3+0.1)) / ((0.4+0.2)+(0.3+0.1)) = 0.2
	assert.InDelta(t, 0.2, set.BSI.At(0, 0), 1e-9)
}

func TestComputeIndexes_NoData(t *testing.T) {
	t.Run("no-data input propagates", func(t *testing.T) {
		bands := testBands()
		bands[BandNIR].Set(0, 0, raster.NoDataValue)

		set, err := ComputeIndexes(bands)
		require.NoError(t, err)

		// Every index reading NIR is no-data at that cell.
		assert.True(t, set.NDVI.IsNoData(0, 0))
		assert.True(t, set.NDBI.IsNoData(0, 0))
		assert.True(t, set.NDWI.IsNoData(0, 0))
		assert.True(t, set.BSI.IsNoData(0, 0))
		assert.False(t, set.NDVI.IsNoData(1, 0))
	})

	t.Run("zero denominator yields no-data", func(t *testing.T) {
		bands := testBands()
		bands[BandNIR].Set(0, 0, 0.1)
		bands[BandRed].Set(0, 0, -0.1)

		set, err := ComputeIndexes(bands)
		require.NoError(t, err)
		assert.True(t, set.NDVI.IsNoData(0, 0))
	})
}

func TestComputeIndexes_InputValidation(t *testing.T) {
	t.Run("wrong band count", func(t *testing.T) {
		_, err := ComputeIndexes(testBands()[:3])
		require.Error(t, err)
	})

	t.Run("misaligned bands", func(t *testing.T) {
		bands := testBands()
		bands[BandSWIR] = raster.NewGrid(3, 3, testTransform, "WGS84")
		_, err := ComputeIndexes(bands)
		require.Error(t, err)
	})
}

func TestSummarizeIndexes(t *testing.T) {
	set, err := ComputeIndexes(testBands())
	require.NoError(t, err)

	rows, err := SummarizeIndexes(2020, set)
	require.NoError(t, err)
	require.Len(t, rows, IndexCount)

	for i, row := range rows {
		assert.Equal(t, 2020, row.Year)
		assert.Equal(t, IndexNames[i], row.Index)
		assert.GreaterOrEqual(t, row.Max, row.Min)
	}

	assert.InDelta(t, (0.6+0.3/0.7+0.5+0.5)/4, rows[IndexNDVI].Mean, 1e-9)
}
