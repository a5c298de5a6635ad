package change

import (
	"fmt"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/indices"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

func ClassifiedRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_classified.tif", properties.RootPath())
}

func DifferenceRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_difference.tif", properties.RootPath())
}

func DifferenceDeltaRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_difference_delta.tif", properties.RootPath())
}

func ZScoreRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_zscore.tif", properties.RootPath())
}

func ZScoreValuesRasterPath() string {
	return fmt.Sprintf("%s/data/processed/change_zscore_values.tif", properties.RootPath())
}

func StatisticsTablePath() string {
	return fmt.Sprintf("%s/data/processed/change_statistics.csv", properties.RootPath())
}

// DetectChanges runs the three detection methods over the index rasters of
// the baseline and latest years and writes all change rasters plus the
// combined area table. Each method is independent of the others.
func DetectChanges(baselineYear, latestYear int) ([]CategoryStatistics, error) {
	baselinePath := indices.IndexRasterPath(baselineYear)
	latestPath := indices.IndexRasterPath(latestYear)
	for _, path := range []string{baselinePath, latestPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("missing index raster, expected %s (run the index phase first)", path)
		}
	}

	baseline, err := indices.ReadIndexSet(baselinePath)
	if err != nil {
		return nil, err
	}
	latest, err := indices.ReadIndexSet(latestPath)
	if err != nil {
		return nil, err
	}
	if !baseline.NDVI.SameShape(latest.NDVI) {
		return nil, fmt.Errorf("index rasters %d and %d are not on the same grid", baselineYear, latestYear)
	}

	period := fmt.Sprintf("%d_%d", baselineYear, latestYear)
	var allRows []CategoryStatistics

	fmt.Println("METHOD 1: SIMPLE DIFFERENCE (dNDVI)")
	difference, err := DetectDifference(baseline.NDVI, latest.NDVI, DifferenceThreshold)
	if err != nil {
		return nil, err
	}
	differenceRows, err := difference.Summarize()
	if err != nil {
		return nil, err
	}
	PrintStatistics(differenceRows)
	allRows = append(allRows, differenceRows...)

	fmt.Println("\nMETHOD 2: MULTICRITERIA CLASSIFICATION")
	classified, err := ClassifyMulticriteria(baseline, latest)
	if err != nil {
		return nil, err
	}
	classRows := SummarizeClasses(classified)
	PrintStatistics(classRows)
	allRows = append(allRows, classRows...)

	fmt.Println("\nMETHOD 3: Z-SCORE ANOMALY DETECTION")
	zscore, err := DetectZScoreAnomalies(baseline.NDVI, latest.NDVI)
	if err != nil {
		return nil, err
	}
	zscoreRows := zscore.Summarize()
	PrintStatistics(zscoreRows)
	allRows = append(allRows, zscoreRows...)

	// All methods succeeded; only now touch the output files.
	outputs := []struct {
		path        string
		grid        *raster.Grid
		description string
	}{
		{DifferenceDeltaRasterPath(), difference.Delta, "Delta_NDVI_" + period},
		{DifferenceRasterPath(), difference.Classes, "Difference_NDVI_" + period},
		{ClassifiedRasterPath(), classified, "Classification_" + period},
		{ZScoreValuesRasterPath(), zscore.Scores, "Zscore_Values_" + period},
		{ZScoreRasterPath(), zscore.Direction, "Zscore_Direction_" + period},
	}
	for _, out := range outputs {
		if err := raster.WriteGeoTIFF(out.path, []*raster.Grid{out.grid}, []string{out.description}); err != nil {
			return nil, err
		}
		fmt.Printf("   Saved: %s\n", out.path)
	}

	if err := WriteStatistics(StatisticsTablePath(), allRows); err != nil {
		return nil, err
	}

	return allRows, nil
}
