package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

var testTransform = [6]float64{0, 10, 0, 40, 0, -10}

func gridFromValues(width, height int, values []float64) *raster.Grid {
	g := raster.NewGrid(width, height, testTransform, "WGS84")
	copy(g.Data, values)
	return g
}

func TestDetectDifference_Classification(t *testing.T) {
	baseline := gridFromValues(4, 1, []float64{0.5, 0.5, 0.5, 0.5})
	latest := gridFromValues(4, 1, []float64{0.3, 0.4, 0.45, 0.6})

	result, err := DetectDifference(baseline, latest, 0.1)
	require.NoError(t, err)

	// delta -0.2: loss; -0.1: loss (threshold is inclusive); -0.05: no
	// change; +0.1: gain.
	assert.Equal(t, DifferenceLoss, result.Classes.At(0, 0))
	assert.Equal(t, DifferenceLoss, result.Classes.At(1, 0))
	assert.Equal(t, DifferenceNoChange, result.Classes.At(2, 0))
	assert.Equal(t, DifferenceGain, result.Classes.At(3, 0))

	assert.InDelta(t, -0.2, result.Delta.At(0, 0), 1e-9)
	assert.InDelta(t, 0.1, result.Delta.At(3, 0), 1e-9)
}

func TestDetectDifference_StrictPartition(t *testing.T) {
	baseline := gridFromValues(3, 3, []float64{
		0.1, 0.2, 0.3,
		0.4, 0.5, 0.6,
		0.7, 0.8, 0.9,
	})
	latest := gridFromValues(3, 3, []float64{
		0.3, 0.2, 0.1,
		0.1, 0.5, 0.9,
		0.7, 0.5, 0.9,
	})

	result, err := DetectDifference(baseline, latest, DifferenceThreshold)
	require.NoError(t, err)

	// Every valid cell lands in exactly one class.
	counted := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			class := result.Classes.At(x, y)
			assert.Contains(t, []float64{DifferenceLoss, DifferenceNoChange, DifferenceGain}, class)
			counted++
		}
	}
	assert.Equal(t, 9, counted)
}

func TestDetectDifference_NoData(t *testing.T) {
	baseline := gridFromValues(2, 1, []float64{0.5, raster.NoDataValue})
	latest := gridFromValues(2, 1, []float64{raster.NoDataValue, 0.5})

	result, err := DetectDifference(baseline, latest, DifferenceThreshold)
	require.NoError(t, err)

	assert.True(t, result.Delta.IsNoData(0, 0))
	assert.True(t, result.Classes.IsNoData(0, 0))
	assert.True(t, result.Delta.IsNoData(1, 0))
	assert.True(t, result.Classes.IsNoData(1, 0))
}

func TestDetectDifference_Misaligned(t *testing.T) {
	baseline := raster.NewGrid(2, 2, testTransform, "")
	latest := raster.NewGrid(3, 2, testTransform, "")
	_, err := DetectDifference(baseline, latest, DifferenceThreshold)
	require.Error(t, err)
}

func TestDifferenceSummarize(t *testing.T) {
	baseline := gridFromValues(4, 1, []float64{0.5, 0.5, 0.5, raster.NoDataValue})
	latest := gridFromValues(4, 1, []float64{0.2, 0.5, 0.5, 0.5})

	result, err := DetectDifference(baseline, latest, DifferenceThreshold)
	require.NoError(t, err)

	rows, err := result.Summarize()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	loss := rows[0]
	assert.Equal(t, MethodDifference, loss.Method)
	assert.Equal(t, "vegetation_loss", loss.Category)
	assert.Equal(t, 1, loss.Pixels)
	assert.InDelta(t, 100.0/3.0, loss.Percent, 1e-9)
	assert.InDelta(t, raster.PixelAreaHa, loss.Hectares, 1e-9)

	noChange := rows[1]
	assert.Equal(t, 2, noChange.Pixels)
	assert.InDelta(t, 200.0/3.0, noChange.Percent, 1e-9)
}
