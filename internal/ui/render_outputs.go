package ui

import (
	"fmt"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/zonal"
	"github.com/urbanwatch/urban-change-cli/output"
)

// RenderOutputs handles the UI for rendering images from the pipeline
// artifacts: the classified change map, a yearly NDVI timelapse and a
// hotspot choropleth.
func RenderOutputs() {
	PrintWarning("- Change rasters and zonal tables should be present (run the full pipeline first).")

	years, err := ReadYears("Enter the years for the NDVI timelapse (e.g. 2018-2024, empty for all): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if _, err := output.CreateChangeImage(); err != nil {
		PrintError(err.Error())
		return
	}

	framePaths, err := output.CreateIndexImages(years)
	if err != nil {
		PrintError(err.Error())
		return
	}

	animationPath := fmt.Sprintf("%s/data/result/%s/videos/ndvi_timelapse", properties.RootPath(), properties.StudyArea())
	if err := os.MkdirAll(fmt.Sprintf("%s/data/result/%s/videos", properties.RootPath(), properties.StudyArea()), os.ModePerm); err != nil {
		PrintError(fmt.Sprintf("failed to create videos folder: %v", err))
		return
	}
	if err := output.CreateAnimationFromImages(framePaths, animationPath); err != nil {
		PrintError(err.Error())
		return
	}

	grid, err := zonal.LoadAnalysisGrid(zonal.GridGeoJSONPath())
	if err != nil {
		PrintError(err.Error())
		return
	}
	stats, err := zonal.ReadZoneStatisticsCSV(zonal.ZoneStatisticsCSVPath())
	if err != nil {
		PrintError(err.Error())
		return
	}
	if _, err := output.CreateChoroplethImage(grid, stats, zonal.MetricUrbanizationHa); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Successfully rendered the change map, NDVI timelapse and hotspot choropleth!")
}
