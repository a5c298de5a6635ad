package zonal

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb/geojson"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
)

func ZoneStatisticsCSVPath() string {
	return fmt.Sprintf("%s/data/processed/zonal_statistics.csv", properties.RootPath())
}

func RankingCSVPath() string {
	return fmt.Sprintf("%s/data/processed/zone_ranking.csv", properties.RootPath())
}

func TemporalCSVPath() string {
	return fmt.Sprintf("%s/data/processed/temporal_evolution.csv", properties.RootPath())
}

func ZonesGeoJSONPath() string {
	return fmt.Sprintf("%s/data/vector/zones_with_stats.geojson", properties.RootPath())
}

func HotspotsGeoJSONPath() string {
	return fmt.Sprintf("%s/data/vector/hotspots.geojson", properties.RootPath())
}

func writeCSV[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}

func WriteZoneStatisticsCSV(path string, stats []ZoneStatistics) error {
	return writeCSV(path, stats)
}

// ReadZoneStatisticsCSV loads a previously written statistics table, in
// the zone order it was written in (col-major, matching AnalysisGrid).
func ReadZoneStatisticsCSV(path string) ([]ZoneStatistics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	var stats []ZoneStatistics
	if err := gocsv.UnmarshalFile(file, &stats); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return stats, nil
}

func WriteRankingCSV(path string, ranking []ZoneRanking) error {
	return writeCSV(path, ranking)
}

func WriteTemporalCSV(path string, records []TemporalRecord) error {
	return writeCSV(path, records)
}

func zoneFeature(zone Zone, stats ZoneStatistics) *geojson.Feature {
	feature := geojson.NewFeature(zone.Geometry)
	feature.Properties = geojson.Properties{
		"zone_id":              stats.ZoneID,
		"zone_x":               stats.ZoneX,
		"zone_y":               stats.ZoneY,
		"area_ha":              stats.AreaHa,
		"valid_pixels":         stats.ValidPixels,
		"no_change_ha":         stats.NoChangeHa,
		"urbanization_ha":      stats.UrbanizationHa,
		"urbanization_pct":     stats.UrbanizationPct,
		"vegetation_loss_ha":   stats.VegetationLossHa,
		"vegetation_gain_ha":   stats.VegetationGainHa,
		"new_water_ha":         stats.NewWaterHa,
		"water_loss_ha":        stats.WaterLossHa,
		"mean_delta_ndvi":      stats.MeanDeltaNDVI,
		"total_change_ha":      stats.TotalChangeHa,
		"total_change_pct":     stats.TotalChangePct,
		"transformation_index": stats.TransformationIndex,
	}
	return feature
}

// WriteZonesGeoJSON exports every zone with its full statistics row, the
// vector artifact the dashboard reads.
func WriteZonesGeoJSON(path string, grid *AnalysisGrid, stats []ZoneStatistics) error {
	if len(stats) != len(grid.Zones) {
		return fmt.Errorf("got %d statistics rows for %d zones", len(stats), len(grid.Zones))
	}

	collection := geojson.NewFeatureCollection()
	for i, zone := range grid.Zones {
		collection.Append(zoneFeature(zone, stats[i]))
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal zone statistics: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}

// WriteHotspotsGeoJSON exports only the ranked hotspot zones, with their
// rank attached, for consumption by external GIS tools.
func WriteHotspotsGeoJSON(path string, grid *AnalysisGrid, stats []ZoneStatistics, ranking []ZoneRanking) error {
	byID := make(map[string]int, len(grid.Zones))
	for i, zone := range grid.Zones {
		byID[zone.ID] = i
	}

	collection := geojson.NewFeatureCollection()
	for _, entry := range ranking {
		index, ok := byID[entry.ZoneID]
		if !ok {
			return fmt.Errorf("ranked zone %s not present in the analysis grid", entry.ZoneID)
		}
		feature := zoneFeature(grid.Zones[index], stats[index])
		feature.Properties["rank"] = entry.Rank
		feature.Properties["rank_metric"] = entry.Metric
		feature.Properties["rank_value"] = entry.Value
		collection.Append(feature)
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal hotspots: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
