package change

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/indices"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// Classification thresholds, fixed for the study area.
const (
	ThresholdVegetation = 0.3  // NDVI above this is dense vegetation
	ThresholdUrban      = 0.0  // NDBI above this is built-up
	ThresholdWater      = 0.1  // NDWI above this is surface water
	ThresholdMinChange  = 0.15 // minimum significant index delta
)

type ChangeClass uint8

const (
	ClassNoChange ChangeClass = iota
	ClassUrbanization
	ClassVegetationLoss
	ClassVegetationGain
	ClassNewWater
	ClassWaterLoss
)

var ClassNames = map[ChangeClass]string{
	ClassNoChange:       "no_change",
	ClassUrbanization:   "urbanization",
	ClassVegetationLoss: "vegetation_loss",
	ClassVegetationGain: "vegetation_gain",
	ClassNewWater:       "new_water",
	ClassWaterLoss:      "water_loss",
}

// OrderedClasses fixes the row order of exported class tables.
var OrderedClasses = []ChangeClass{
	ClassNoChange,
	ClassUrbanization,
	ClassVegetationLoss,
	ClassVegetationGain,
	ClassNewWater,
	ClassWaterLoss,
}

// CellIndexes holds the index values of one cell at both acquisition times.
type CellIndexes struct {
	NDVIBaseline float64
	NDVILatest   float64
	NDBIBaseline float64
	NDBILatest   float64
	NDWIBaseline float64
	NDWILatest   float64
}

type rule struct {
	class   ChangeClass
	matches func(c CellIndexes) bool
}

// classificationRules is evaluated top to bottom; the first matching rule
// wins, so classes are mutually exclusive by construction. Reordering the
// rules changes the semantics.
var classificationRules = []rule{
	{ClassUrbanization, func(c CellIndexes) bool {
		return c.NDVIBaseline > ThresholdVegetation &&
			c.NDBILatest > ThresholdUrban &&
			c.NDBILatest-c.NDBIBaseline > ThresholdMinChange
	}},
	{ClassVegetationLoss, func(c CellIndexes) bool {
		return c.NDVIBaseline-c.NDVILatest > ThresholdMinChange
	}},
	{ClassVegetationGain, func(c CellIndexes) bool {
		return c.NDVILatest-c.NDVIBaseline > ThresholdMinChange
	}},
	{ClassNewWater, func(c CellIndexes) bool {
		return c.NDWIBaseline < 0 && c.NDWILatest > ThresholdWater
	}},
	{ClassWaterLoss, func(c CellIndexes) bool {
		return c.NDWIBaseline > ThresholdWater && c.NDWILatest < 0
	}},
}

// ClassifyCell assigns the change class for one valid cell.
func ClassifyCell(c CellIndexes) ChangeClass {
	for _, r := range classificationRules {
		if r.matches(c) {
			return r.class
		}
	}
	return ClassNoChange
}

// ClassifyMulticriteria classifies every cell valid in both index sets.
// Cells no-data in either NDVI raster are no-data in the output.
func ClassifyMulticriteria(baseline, latest *indices.IndexSet) (*raster.Grid, error) {
	ref := baseline.NDVI
	if !ref.SameShape(latest.NDVI) {
		return nil, fmt.Errorf("baseline and latest index rasters are not aligned")
	}

	classes := raster.NewGrid(ref.Width, ref.Height, ref.GeoTransform, ref.Projection)
	for y := 0; y < ref.Height; y++ {
		for x := 0; x < ref.Width; x++ {
			if baseline.NDVI.IsNoData(x, y) || latest.NDVI.IsNoData(x, y) {
				continue
			}
			cell := CellIndexes{
				NDVIBaseline: baseline.NDVI.At(x, y),
				NDVILatest:   latest.NDVI.At(x, y),
				NDBIBaseline: baseline.NDBI.At(x, y),
				NDBILatest:   latest.NDBI.At(x, y),
				NDWIBaseline: baseline.NDWI.At(x, y),
				NDWILatest:   latest.NDWI.At(x, y),
			}
			classes.Set(x, y, float64(ClassifyCell(cell)))
		}
	}

	return classes, nil
}

// SummarizeClasses counts each multicriteria class over the valid cells.
func SummarizeClasses(classes *raster.Grid) []CategoryStatistics {
	counts := map[ChangeClass]int{}
	valid := 0
	for y := 0; y < classes.Height; y++ {
		for x := 0; x < classes.Width; x++ {
			if classes.IsNoData(x, y) {
				continue
			}
			counts[ChangeClass(classes.At(x, y))]++
			valid++
		}
	}

	rows := make([]CategoryStatistics, 0, len(OrderedClasses))
	for _, class := range OrderedClasses {
		rows = append(rows, newCategory(MethodMulticriteria, ClassNames[class], counts[class], valid))
	}
	return rows
}
