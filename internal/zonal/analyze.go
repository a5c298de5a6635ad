package zonal

import (
	"fmt"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// AnalyzeZones runs the full zonal phase: grid creation or reuse, per-zone
// aggregation of the classified change raster, hotspot ranking and the
// temporal evolution table. All outputs are overwritten deterministically.
func AnalyzeZones(years []int, cells, topN int) ([]ZoneStatistics, []ZoneRanking, error) {
	classifiedPath := change.ClassifiedRasterPath()
	deltaPath := change.DifferenceDeltaRasterPath()
	for _, path := range []string{classifiedPath, deltaPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, fmt.Errorf("missing change raster, expected %s (run the change detection phase first)", path)
		}
	}

	classifiedBands, err := raster.ReadBands(classifiedPath, 1)
	if err != nil {
		return nil, nil, err
	}
	classified := classifiedBands[0]

	deltaBands, err := raster.ReadBands(deltaPath, 1)
	if err != nil {
		return nil, nil, err
	}
	delta := deltaBands[0]

	if err := os.MkdirAll(fmt.Sprintf("%s/data/vector", properties.RootPath()), os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("failed to create vector data directory: %v", err)
	}

	gridPath := GridGeoJSONPath()
	var grid *AnalysisGrid
	if _, err := os.Stat(gridPath); err == nil {
		fmt.Printf("  Loading existing analysis grid: %s\n", gridPath)
		grid, err = LoadAnalysisGrid(gridPath)
		if err != nil {
			return nil, nil, err
		}
	} else {
		fmt.Printf("  Creating %dx%d analysis grid\n", cells, cells)
		grid, err = CreateAnalysisGrid(classified, cells, cells)
		if err != nil {
			return nil, nil, err
		}
		if err := grid.WriteGeoJSON(gridPath); err != nil {
			return nil, nil, err
		}
		fmt.Printf("  Grid saved: %s (%d zones)\n", gridPath, len(grid.Zones))
	}

	stats, err := AggregateChanges(grid, classified, delta)
	if err != nil {
		return nil, nil, err
	}

	ranking, err := RankZones(stats, MetricUrbanizationHa, topN)
	if err != nil {
		return nil, nil, err
	}

	fmt.Printf("\n  Top %d urbanization hotspots:\n", len(ranking))
	for _, entry := range ranking {
		fmt.Printf("   %d. %s: %.2f ha\n", entry.Rank, entry.ZoneID, entry.Value)
	}

	fmt.Println("\n  Temporal evolution:")
	temporal, err := TemporalEvolution(years)
	if err != nil {
		return nil, nil, err
	}

	if err := WriteZoneStatisticsCSV(ZoneStatisticsCSVPath(), stats); err != nil {
		return nil, nil, err
	}
	if err := WriteRankingCSV(RankingCSVPath(), ranking); err != nil {
		return nil, nil, err
	}
	if err := WriteTemporalCSV(TemporalCSVPath(), temporal); err != nil {
		return nil, nil, err
	}
	if err := WriteZonesGeoJSON(ZonesGeoJSONPath(), grid, stats); err != nil {
		return nil, nil, err
	}
	if err := WriteHotspotsGeoJSON(HotspotsGeoJSONPath(), grid, stats, ranking); err != nil {
		return nil, nil, err
	}

	totalUrbanization := 0.0
	totalVegetationLoss := 0.0
	totalVegetationGain := 0.0
	for _, zone := range stats {
		totalUrbanization += zone.UrbanizationHa
		totalVegetationLoss += zone.VegetationLossHa
		totalVegetationGain += zone.VegetationGainHa
	}
	fmt.Printf("\n  Total urbanization:      %8.2f ha\n", totalUrbanization)
	fmt.Printf("  Total vegetation loss:   %8.2f ha\n", totalVegetationLoss)
	fmt.Printf("  Total vegetation gain:   %8.2f ha\n", totalVegetationGain)

	return stats, ranking, nil
}
