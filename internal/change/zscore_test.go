package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

func TestDetectZScoreAnomalies(t *testing.T) {
	// Nine cells with delta 0 and one outlier with delta 1. The delta
	// population has mean 0.1 and std 0.3, so the outlier scores z=3 and
	// every other cell scores z=-1/3.
	baseline := raster.NewGrid(5, 2, testTransform, "WGS84")
	latest := raster.NewGrid(5, 2, testTransform, "WGS84")
	for i := range baseline.Data {
		baseline.Data[i] = 0.5
		latest.Data[i] = 0.5
	}
	latest.Set(0, 0, 1.5)

	result, err := DetectZScoreAnomalies(baseline, latest)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, result.Scores.At(0, 0), 1e-9)
	assert.Equal(t, AnomalyPositive, result.Direction.At(0, 0))

	assert.InDelta(t, -1.0/3.0, result.Scores.At(1, 0), 1e-9)
	assert.Equal(t, AnomalyNone, result.Direction.At(1, 0))
}

func TestDetectZScoreAnomalies_ZeroStd(t *testing.T) {
	baseline := raster.NewGrid(2, 2, testTransform, "WGS84")
	latest := raster.NewGrid(2, 2, testTransform, "WGS84")
	for i := range baseline.Data {
		baseline.Data[i] = 0.2
		latest.Data[i] = 0.4
	}

	result, err := DetectZScoreAnomalies(baseline, latest)
	require.NoError(t, err)

	// A constant delta field has no anomalies.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, 0.0, result.Scores.At(x, y))
			assert.Equal(t, AnomalyNone, result.Direction.At(x, y))
		}
	}
}

func TestDetectZScoreAnomalies_NoValidCells(t *testing.T) {
	baseline := raster.NewGrid(2, 2, testTransform, "WGS84")
	latest := raster.NewGrid(2, 2, testTransform, "WGS84")
	_, err := DetectZScoreAnomalies(baseline, latest)
	require.Error(t, err)
}

func TestClassifyZScore_ClosedNormalBand(t *testing.T) {
	// |z| equal to the threshold is still normal; only strictly beyond
	// it is an anomaly.
	assert.Equal(t, AnomalyNone, classifyZScore(ZScoreThreshold))
	assert.Equal(t, AnomalyNone, classifyZScore(-ZScoreThreshold))
	assert.Equal(t, AnomalyPositive, classifyZScore(ZScoreThreshold+1e-9))
	assert.Equal(t, AnomalyNegative, classifyZScore(-ZScoreThreshold-1e-9))
	assert.Equal(t, AnomalyNone, classifyZScore(0))
}

func TestZScoreSummarize(t *testing.T) {
	baseline := raster.NewGrid(5, 2, testTransform, "WGS84")
	latest := raster.NewGrid(5, 2, testTransform, "WGS84")
	for i := range baseline.Data {
		baseline.Data[i] = 0.5
		latest.Data[i] = 0.5
	}
	latest.Set(0, 0, 1.5)

	result, err := DetectZScoreAnomalies(baseline, latest)
	require.NoError(t, err)

	rows := result.Summarize()
	require.Len(t, rows, 3)
	assert.Equal(t, "anomaly_negative", rows[0].Category)
	assert.Equal(t, 0, rows[0].Pixels)
	assert.Equal(t, "normal", rows[1].Category)
	assert.Equal(t, 9, rows[1].Pixels)
	assert.Equal(t, "anomaly_positive", rows[2].Category)
	assert.Equal(t, 1, rows[2].Pixels)
}
