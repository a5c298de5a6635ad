package change

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// DifferenceThreshold is the minimum NDVI delta considered significant.
const DifferenceThreshold = 0.15

// Discrete classes of the simple-difference method.
const (
	DifferenceLoss     = -1.0
	DifferenceNoChange = 0.0
	DifferenceGain     = 1.0
)

// DifferenceResult holds the continuous delta raster and its classification.
// Cells no-data in either input are no-data in both outputs.
type DifferenceResult struct {
	Delta   *raster.Grid
	Classes *raster.Grid
}

// DetectDifference computes latest - baseline for one index and classifies
// every valid cell as loss (delta <= -threshold), gain (delta >= +threshold)
// or no-change. The classification is a strict partition of the valid cells.
func DetectDifference(baseline, latest *raster.Grid, threshold float64) (*DifferenceResult, error) {
	if !baseline.SameShape(latest) {
		return nil, fmt.Errorf("baseline and latest rasters are not aligned")
	}

	delta := raster.NewGrid(baseline.Width, baseline.Height, baseline.GeoTransform, baseline.Projection)
	classes := raster.NewGrid(baseline.Width, baseline.Height, baseline.GeoTransform, baseline.Projection)

	for y := 0; y < baseline.Height; y++ {
		for x := 0; x < baseline.Width; x++ {
			if baseline.IsNoData(x, y) || latest.IsNoData(x, y) {
				continue
			}
			d := latest.At(x, y) - baseline.At(x, y)
			delta.Set(x, y, d)
			classes.Set(x, y, classifyDelta(d, threshold))
		}
	}

	return &DifferenceResult{Delta: delta, Classes: classes}, nil
}

func classifyDelta(delta, threshold float64) float64 {
	switch {
	case delta <= -threshold:
		return DifferenceLoss
	case delta >= threshold:
		return DifferenceGain
	default:
		return DifferenceNoChange
	}
}

// Summarize counts each difference class and the delta distribution.
func (r *DifferenceResult) Summarize() ([]CategoryStatistics, error) {
	counts := map[float64]int{}
	valid := 0
	for y := 0; y < r.Classes.Height; y++ {
		for x := 0; x < r.Classes.Width; x++ {
			if r.Classes.IsNoData(x, y) {
				continue
			}
			counts[r.Classes.At(x, y)]++
			valid++
		}
	}

	rows := []CategoryStatistics{
		newCategory(MethodDifference, "vegetation_loss", counts[DifferenceLoss], valid),
		newCategory(MethodDifference, "no_change", counts[DifferenceNoChange], valid),
		newCategory(MethodDifference, "vegetation_gain", counts[DifferenceGain], valid),
	}
	return rows, nil
}
