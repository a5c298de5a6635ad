package indices

import (
	"fmt"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

func RawImagePath(year int) string {
	return fmt.Sprintf("%s/data/raw/sentinel2_%d.tif", properties.RootPath(), year)
}

func IndexRasterPath(year int) string {
	return fmt.Sprintf("%s/data/processed/indices_%d.tif", properties.RootPath(), year)
}

func StatisticsTablePath() string {
	return fmt.Sprintf("%s/data/processed/index_statistics.csv", properties.RootPath())
}

// ReadIndexSet loads a previously written 4-band index raster.
func ReadIndexSet(path string) (*IndexSet, error) {
	grids, err := raster.ReadBands(path, IndexCount)
	if err != nil {
		return nil, err
	}
	return &IndexSet{
		NDVI: grids[IndexNDVI],
		NDBI: grids[IndexNDBI],
		NDWI: grids[IndexNDWI],
		BSI:  grids[IndexBSI],
	}, nil
}

// scaleReflectance converts digital numbers to 0-1 reflectance when the
// composite was exported unscaled. Values above 1.5 indicate raw DN.
func scaleReflectance(bands []*raster.Grid) {
	maxValue := 0.0
	for _, band := range bands {
		for _, v := range band.Data {
			if v != raster.NoDataValue && v > maxValue {
				maxValue = v
			}
		}
	}
	if maxValue <= 1.5 {
		return
	}
	fmt.Println("  Scaling DN values to reflectance (0-1)")
	for _, band := range bands {
		for i, v := range band.Data {
			if v != raster.NoDataValue {
				band.Data[i] = v / 10000
			}
		}
	}
}

// CalculateIndices computes the four index rasters for one acquisition
// year and merges its summary rows into the running statistics table.
func CalculateIndices(year int) ([]IndexStatistics, error) {
	rawPath := RawImagePath(year)
	if _, err := os.Stat(rawPath); err != nil {
		return nil, fmt.Errorf("missing raw image for year %d, expected %s", year, rawPath)
	}

	fmt.Printf("  Reading image: %s\n", rawPath)
	bands, err := raster.ReadBands(rawPath, BandCount)
	if err != nil {
		return nil, err
	}

	scaleReflectance(bands)

	fmt.Println("  Computing spectral indices...")
	set, err := ComputeIndexes(bands)
	if err != nil {
		return nil, err
	}

	rows, err := SummarizeIndexes(year, set)
	if err != nil {
		return nil, err
	}

	outputPath := IndexRasterPath(year)
	if err := os.MkdirAll(fmt.Sprintf("%s/data/processed", properties.RootPath()), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create processed data directory: %v", err)
	}
	fmt.Printf("  Writing indices to: %s\n", outputPath)
	if err := raster.WriteGeoTIFF(outputPath, set.Grids(), IndexNames); err != nil {
		return nil, err
	}

	if err := UpsertStatistics(StatisticsTablePath(), rows); err != nil {
		return nil, err
	}

	return rows, nil
}
