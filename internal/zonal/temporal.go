package zonal

import (
	"fmt"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/indices"
)

// TemporalRecord summarizes one acquisition year: whole-raster index
// statistics plus the share of cells in each coarse cover class.
type TemporalRecord struct {
	Year          int     `csv:"year"`
	NDVIMean      float64 `csv:"ndvi_mean"`
	NDVIStd       float64 `csv:"ndvi_std"`
	NDBIMean      float64 `csv:"ndbi_mean"`
	NDBIStd       float64 `csv:"ndbi_std"`
	NDWIMean      float64 `csv:"ndwi_mean"`
	BSIMean       float64 `csv:"bsi_mean"`
	PctVegetation float64 `csv:"pct_vegetation"`
	PctUrban      float64 `csv:"pct_urban"`
	PctWater      float64 `csv:"pct_water"`
	PctOther      float64 `csv:"pct_other"`
}

// TemporalEvolution builds the per-year trend table from the index
// rasters. Cover classes are exclusive (vegetation, then built-up, then
// water, then other), so the shares sum to 100% of the valid cells.
func TemporalEvolution(years []int) ([]TemporalRecord, error) {
	records := make([]TemporalRecord, 0, len(years))

	for _, year := range years {
		path := indices.IndexRasterPath(year)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("missing index raster, expected %s (run the index phase first)", path)
		}

		set, err := indices.ReadIndexSet(path)
		if err != nil {
			return nil, err
		}

		record := TemporalRecord{Year: year}

		ndviStats, err := set.NDVI.Summary()
		if err != nil {
			return nil, fmt.Errorf("year %d: %v", year, err)
		}
		ndbiStats, err := set.NDBI.Summary()
		if err != nil {
			return nil, fmt.Errorf("year %d: %v", year, err)
		}
		ndwiStats, err := set.NDWI.Summary()
		if err != nil {
			return nil, fmt.Errorf("year %d: %v", year, err)
		}
		bsiStats, err := set.BSI.Summary()
		if err != nil {
			return nil, fmt.Errorf("year %d: %v", year, err)
		}

		record.NDVIMean = ndviStats.Mean
		record.NDVIStd = ndviStats.Std
		record.NDBIMean = ndbiStats.Mean
		record.NDBIStd = ndbiStats.Std
		record.NDWIMean = ndwiStats.Mean
		record.BSIMean = bsiStats.Mean

		valid, vegetation, urban, water := 0, 0, 0, 0
		for y := 0; y < set.NDVI.Height; y++ {
			for x := 0; x < set.NDVI.Width; x++ {
				if set.NDVI.IsNoData(x, y) || set.NDBI.IsNoData(x, y) || set.NDWI.IsNoData(x, y) {
					continue
				}
				valid++
				switch {
				case set.NDVI.At(x, y) > change.ThresholdVegetation:
					vegetation++
				case set.NDBI.At(x, y) > change.ThresholdUrban:
					urban++
				case set.NDWI.At(x, y) > change.ThresholdWater:
					water++
				}
			}
		}

		if valid > 0 {
			record.PctVegetation = 100 * float64(vegetation) / float64(valid)
			record.PctUrban = 100 * float64(urban) / float64(valid)
			record.PctWater = 100 * float64(water) / float64(valid)
			record.PctOther = 100 - record.PctVegetation - record.PctUrban - record.PctWater
		}

		fmt.Printf("   %d: NDVI=%.3f, NDBI=%.3f, Urban=%.1f%%\n",
			year, record.NDVIMean, record.NDBIMean, record.PctUrban)

		records = append(records, record)
	}

	return records, nil
}
