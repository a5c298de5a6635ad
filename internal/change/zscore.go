package change

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// ZScoreThreshold bounds the closed "normal" band: |z| <= 2 is normal,
// anomalies are strictly beyond it.
const ZScoreThreshold = 2.0

// Direction classes of the z-score method.
const (
	AnomalyNegative = -1.0
	AnomalyNone     = 0.0
	AnomalyPositive = 1.0
)

type ZScoreResult struct {
	Scores    *raster.Grid
	Direction *raster.Grid
}

// DetectZScoreAnomalies standardizes the cell-wise delta of an index by
// the global mean and standard deviation of the valid delta population.
// Cells no-data in either input are excluded entirely.
func DetectZScoreAnomalies(baseline, latest *raster.Grid) (*ZScoreResult, error) {
	if !baseline.SameShape(latest) {
		return nil, fmt.Errorf("baseline and latest rasters are not aligned")
	}

	delta := raster.NewGrid(baseline.Width, baseline.Height, baseline.GeoTransform, baseline.Projection)
	for y := 0; y < baseline.Height; y++ {
		for x := 0; x < baseline.Width; x++ {
			if baseline.IsNoData(x, y) || latest.IsNoData(x, y) {
				continue
			}
			delta.Set(x, y, latest.At(x, y)-baseline.At(x, y))
		}
	}

	stats, err := delta.Summary()
	if err != nil {
		return nil, fmt.Errorf("z-score analysis: %v", err)
	}

	scores := raster.NewGrid(delta.Width, delta.Height, delta.GeoTransform, delta.Projection)
	direction := raster.NewGrid(delta.Width, delta.Height, delta.GeoTransform, delta.Projection)

	for y := 0; y < delta.Height; y++ {
		for x := 0; x < delta.Width; x++ {
			if delta.IsNoData(x, y) {
				continue
			}
			z := 0.0
			if stats.Std > 0 {
				z = (delta.At(x, y) - stats.Mean) / stats.Std
			}
			scores.Set(x, y, z)
			direction.Set(x, y, classifyZScore(z))
		}
	}

	return &ZScoreResult{Scores: scores, Direction: direction}, nil
}

func classifyZScore(z float64) float64 {
	switch {
	case z < -ZScoreThreshold:
		return AnomalyNegative
	case z > ZScoreThreshold:
		return AnomalyPositive
	default:
		return AnomalyNone
	}
}

// Summarize counts anomaly directions over the valid cells.
func (r *ZScoreResult) Summarize() []CategoryStatistics {
	counts := map[float64]int{}
	valid := 0
	for y := 0; y < r.Direction.Height; y++ {
		for x := 0; x < r.Direction.Width; x++ {
			if r.Direction.IsNoData(x, y) {
				continue
			}
			counts[r.Direction.At(x, y)]++
			valid++
		}
	}

	return []CategoryStatistics{
		newCategory(MethodZScore, "anomaly_negative", counts[AnomalyNegative], valid),
		newCategory(MethodZScore, "normal", counts[AnomalyNone], valid),
		newCategory(MethodZScore, "anomaly_positive", counts[AnomalyPositive], valid),
	}
}
