package zonal

import (
	"fmt"
	"math"

	"github.com/schollz/progressbar/v3"
	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// ZoneStatistics is one row of the per-zone table: pixel counts, areas and
// shares per multicriteria class, plus aggregate change metrics.
type ZoneStatistics struct {
	ZoneID      string  `csv:"zone_id"`
	ZoneX       int     `csv:"zone_x"`
	ZoneY       int     `csv:"zone_y"`
	AreaHa      float64 `csv:"area_ha"`
	ValidPixels int     `csv:"valid_pixels"`

	NoChangePx  int     `csv:"no_change_px"`
	NoChangeHa  float64 `csv:"no_change_ha"`
	NoChangePct float64 `csv:"no_change_pct"`

	UrbanizationPx  int     `csv:"urbanization_px"`
	UrbanizationHa  float64 `csv:"urbanization_ha"`
	UrbanizationPct float64 `csv:"urbanization_pct"`

	VegetationLossPx  int     `csv:"vegetation_loss_px"`
	VegetationLossHa  float64 `csv:"vegetation_loss_ha"`
	VegetationLossPct float64 `csv:"vegetation_loss_pct"`

	VegetationGainPx  int     `csv:"vegetation_gain_px"`
	VegetationGainHa  float64 `csv:"vegetation_gain_ha"`
	VegetationGainPct float64 `csv:"vegetation_gain_pct"`

	NewWaterPx  int     `csv:"new_water_px"`
	NewWaterHa  float64 `csv:"new_water_ha"`
	NewWaterPct float64 `csv:"new_water_pct"`

	WaterLossPx  int     `csv:"water_loss_px"`
	WaterLossHa  float64 `csv:"water_loss_ha"`
	WaterLossPct float64 `csv:"water_loss_pct"`

	MeanDeltaNDVI       float64 `csv:"mean_delta_ndvi"`
	TotalChangeHa       float64 `csv:"total_change_ha"`
	TotalChangePct      float64 `csv:"total_change_pct"`
	TransformationIndex float64 `csv:"transformation_index"`
}

func (s *ZoneStatistics) classCount(class change.ChangeClass) *int {
	switch class {
	case change.ClassUrbanization:
		return &s.UrbanizationPx
	case change.ClassVegetationLoss:
		return &s.VegetationLossPx
	case change.ClassVegetationGain:
		return &s.VegetationGainPx
	case change.ClassNewWater:
		return &s.NewWaterPx
	case change.ClassWaterLoss:
		return &s.WaterLossPx
	default:
		return &s.NoChangePx
	}
}

// AggregateChanges computes the per-zone table from the classified change
// raster and the continuous NDVI delta raster. Each valid cell contributes
// to exactly one zone, so per-category zone areas sum to the raster totals.
func AggregateChanges(grid *AnalysisGrid, classes, delta *raster.Grid) ([]ZoneStatistics, error) {
	if !classes.SameShape(delta) {
		return nil, fmt.Errorf("classified and delta rasters are not aligned")
	}
	xMin, yMin, xMax, yMax := classes.Bounds()
	const eps = 1e-6
	if math.Abs(xMin-grid.XMin) > eps || math.Abs(yMin-grid.YMin) > eps ||
		math.Abs(xMax-grid.XMax) > eps || math.Abs(yMax-grid.YMax) > eps {
		return nil, fmt.Errorf("analysis grid extent does not match the change raster extent")
	}

	stats := make([]ZoneStatistics, len(grid.Zones))
	deltaSums := make([]float64, len(grid.Zones))
	deltaCounts := make([]int, len(grid.Zones))
	for i, zone := range grid.Zones {
		stats[i] = ZoneStatistics{
			ZoneID: zone.ID,
			ZoneX:  zone.Col,
			ZoneY:  zone.Row,
			AreaHa: zone.AreaHa,
		}
	}

	progressBar := progressbar.Default(int64(classes.Height), "Aggregating zones")
	for y := 0; y < classes.Height; y++ {
		for x := 0; x < classes.Width; x++ {
			if classes.IsNoData(x, y) {
				continue
			}
			cx, cy := classes.CellCenter(x, y)
			index, ok := grid.ZoneIndexAt(cx, cy)
			if !ok {
				continue
			}
			zone := &stats[index]
			zone.ValidPixels++
			counter := zone.classCount(change.ChangeClass(classes.At(x, y)))
			*counter++
			if !delta.IsNoData(x, y) {
				deltaSums[index] += delta.At(x, y)
				deltaCounts[index]++
			}
		}
		progressBar.Add(1)
	}
	fmt.Println()

	for i := range stats {
		finalizeZone(&stats[i], deltaSums[i], deltaCounts[i])
	}

	return stats, nil
}

func finalizeZone(zone *ZoneStatistics, deltaSum float64, deltaCount int) {
	pct := func(pixels int) float64 {
		if zone.ValidPixels == 0 {
			return 0
		}
		return 100 * float64(pixels) / float64(zone.ValidPixels)
	}

	zone.NoChangeHa = float64(zone.NoChangePx) * raster.PixelAreaHa
	zone.NoChangePct = pct(zone.NoChangePx)
	zone.UrbanizationHa = float64(zone.UrbanizationPx) * raster.PixelAreaHa
	zone.UrbanizationPct = pct(zone.UrbanizationPx)
	zone.VegetationLossHa = float64(zone.VegetationLossPx) * raster.PixelAreaHa
	zone.VegetationLossPct = pct(zone.VegetationLossPx)
	zone.VegetationGainHa = float64(zone.VegetationGainPx) * raster.PixelAreaHa
	zone.VegetationGainPct = pct(zone.VegetationGainPx)
	zone.NewWaterHa = float64(zone.NewWaterPx) * raster.PixelAreaHa
	zone.NewWaterPct = pct(zone.NewWaterPx)
	zone.WaterLossHa = float64(zone.WaterLossPx) * raster.PixelAreaHa
	zone.WaterLossPct = pct(zone.WaterLossPx)

	if deltaCount > 0 {
		zone.MeanDeltaNDVI = deltaSum / float64(deltaCount)
	}

	zone.TotalChangeHa = zone.UrbanizationHa + zone.VegetationLossHa + zone.VegetationGainHa
	if zone.AreaHa > 0 {
		zone.TotalChangePct = 100 * zone.TotalChangeHa / zone.AreaHa
	}
	zone.TransformationIndex = zone.UrbanizationHa + zone.VegetationLossHa - zone.VegetationGainHa
}
