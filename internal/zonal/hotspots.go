package zonal

import (
	"fmt"
	"sort"
)

// Metrics a ranking can be built on.
const (
	MetricUrbanizationHa      = "urbanization_ha"
	MetricVegetationLossHa    = "vegetation_loss_ha"
	MetricTotalChangeHa       = "total_change_ha"
	MetricTransformationIndex = "transformation_index"
)

const DefaultHotspotCount = 10

type ZoneRanking struct {
	Rank                int     `csv:"rank"`
	ZoneID              string  `csv:"zone_id"`
	Metric              string  `csv:"metric"`
	Value               float64 `csv:"value"`
	UrbanizationHa      float64 `csv:"urbanization_ha"`
	VegetationLossHa    float64 `csv:"vegetation_loss_ha"`
	VegetationGainHa    float64 `csv:"vegetation_gain_ha"`
	TotalChangeHa       float64 `csv:"total_change_ha"`
	TransformationIndex float64 `csv:"transformation_index"`
}

// MetricValue extracts the ranking metric from a statistics row.
func MetricValue(zone ZoneStatistics, metric string) (float64, error) {
	switch metric {
	case MetricUrbanizationHa:
		return zone.UrbanizationHa, nil
	case MetricVegetationLossHa:
		return zone.VegetationLossHa, nil
	case MetricTotalChangeHa:
		return zone.TotalChangeHa, nil
	case MetricTransformationIndex:
		return zone.TransformationIndex, nil
	default:
		return 0, fmt.Errorf("unknown ranking metric %q", metric)
	}
}

// RankZones orders all zones by the chosen metric, descending; zones with
// equal metric value are ordered by ascending zone id, so the ranking is
// total and reproducible. The top topN zones are returned.
func RankZones(stats []ZoneStatistics, metric string, topN int) ([]ZoneRanking, error) {
	type scored struct {
		zone  ZoneStatistics
		value float64
	}

	scoredZones := make([]scored, 0, len(stats))
	for _, zone := range stats {
		value, err := MetricValue(zone, metric)
		if err != nil {
			return nil, err
		}
		scoredZones = append(scoredZones, scored{zone: zone, value: value})
	}

	sort.Slice(scoredZones, func(i, j int) bool {
		if scoredZones[i].value != scoredZones[j].value {
			return scoredZones[i].value > scoredZones[j].value
		}
		return scoredZones[i].zone.ZoneID < scoredZones[j].zone.ZoneID
	})

	if topN > len(scoredZones) {
		topN = len(scoredZones)
	}

	ranking := make([]ZoneRanking, 0, topN)
	for i := 0; i < topN; i++ {
		zone := scoredZones[i].zone
		ranking = append(ranking, ZoneRanking{
			Rank:                i + 1,
			ZoneID:              zone.ZoneID,
			Metric:              metric,
			Value:               scoredZones[i].value,
			UrbanizationHa:      zone.UrbanizationHa,
			VegetationLossHa:    zone.VegetationLossHa,
			VegetationGainHa:    zone.VegetationGainHa,
			TotalChangeHa:       zone.TotalChangeHa,
			TransformationIndex: zone.TransformationIndex,
		})
	}

	return ranking, nil
}
