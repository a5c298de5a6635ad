package zonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

func TestAggregateChanges(t *testing.T) {
	classes := testRaster()
	delta := testRaster()

	// Left half urbanization with delta -0.3, right half no change.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 {
				classes.Set(x, y, float64(change.ClassUrbanization))
				delta.Set(x, y, -0.3)
			} else {
				classes.Set(x, y, float64(change.ClassNoChange))
				delta.Set(x, y, 0)
			}
		}
	}

	grid, err := CreateAnalysisGrid(classes, 2, 2)
	require.NoError(t, err)

	stats, err := AggregateChanges(grid, classes, delta)
	require.NoError(t, err)
	require.Len(t, stats, 4)

	totalValid := 0
	totalUrbanizationPx := 0
	for _, zone := range stats {
		totalValid += zone.ValidPixels
		totalUrbanizationPx += zone.UrbanizationPx
	}
	// Every cell is assigned to exactly one zone.
	assert.Equal(t, 100, totalValid)
	assert.Equal(t, 50, totalUrbanizationPx)

	// Left-column zones (col 0) are fully urbanized, right-column zones
	// are fully unchanged.
	for _, zone := range stats {
		if zone.ZoneX == 0 {
			assert.Equal(t, 25, zone.UrbanizationPx, zone.ZoneID)
			assert.Equal(t, 100.0, zone.UrbanizationPct, zone.ZoneID)
			assert.InDelta(t, 0.25, zone.UrbanizationHa, 1e-9, zone.ZoneID)
			assert.InDelta(t, -0.3, zone.MeanDeltaNDVI, 1e-9, zone.ZoneID)
			assert.InDelta(t, 0.25, zone.TransformationIndex, 1e-9, zone.ZoneID)
		} else {
			assert.Equal(t, 0, zone.UrbanizationPx, zone.ZoneID)
			assert.Equal(t, 25, zone.NoChangePx, zone.ZoneID)
			assert.InDelta(t, 0.0, zone.MeanDeltaNDVI, 1e-9, zone.ZoneID)
		}
	}
}

func TestAggregateChanges_AreaConservation(t *testing.T) {
	classes := testRaster()
	delta := testRaster()

	// Mixed classes with some no-data holes.
	classValues := []float64{
		float64(change.ClassNoChange),
		float64(change.ClassUrbanization),
		float64(change.ClassVegetationLoss),
		float64(change.ClassVegetationGain),
		float64(change.ClassNewWater),
		float64(change.ClassWaterLoss),
	}
	valid := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if (x+y)%7 == 0 {
				continue // leave the cell no-data
			}
			classes.Set(x, y, classValues[(x+y*3)%len(classValues)])
			delta.Set(x, y, 0.01*float64(x-y))
			valid++
		}
	}

	grid, err := CreateAnalysisGrid(classes, 3, 3)
	require.NoError(t, err)

	stats, err := AggregateChanges(grid, classes, delta)
	require.NoError(t, err)

	sumValid := 0
	sumPx := 0
	sumHa := 0.0
	for _, zone := range stats {
		sumValid += zone.ValidPixels
		sumPx += zone.NoChangePx + zone.UrbanizationPx + zone.VegetationLossPx +
			zone.VegetationGainPx + zone.NewWaterPx + zone.WaterLossPx
		sumHa += zone.NoChangeHa + zone.UrbanizationHa + zone.VegetationLossHa +
			zone.VegetationGainHa + zone.NewWaterHa + zone.WaterLossHa
	}

	// No cell is lost or double counted, in pixels or hectares.
	assert.Equal(t, valid, sumValid)
	assert.Equal(t, valid, sumPx)
	assert.InDelta(t, float64(valid)*raster.PixelAreaHa, sumHa, 1e-9)
}

func TestAggregateChanges_ExtentMismatch(t *testing.T) {
	classes := testRaster()
	delta := testRaster()
	for i := range classes.Data {
		classes.Data[i] = float64(change.ClassNoChange)
		delta.Data[i] = 0
	}

	shifted := raster.NewGrid(10, 10, [6]float64{50, 10, 0, 100, 0, -10}, "WGS84")
	grid, err := CreateAnalysisGrid(shifted, 2, 2)
	require.NoError(t, err)

	_, err = AggregateChanges(grid, classes, delta)
	require.Error(t, err)
}

func TestAggregateChanges_Misaligned(t *testing.T) {
	classes := testRaster()
	delta := raster.NewGrid(5, 5, testTransform, "WGS84")

	grid, err := CreateAnalysisGrid(classes, 2, 2)
	require.NoError(t, err)

	_, err = AggregateChanges(grid, classes, delta)
	require.Error(t, err)
}
