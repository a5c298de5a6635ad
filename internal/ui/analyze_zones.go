package ui

import (
	"github.com/urbanwatch/urban-change-cli/internal/delivery"
	"github.com/urbanwatch/urban-change-cli/internal/zonal"
)

// AnalyzeZones handles the UI for the zonal analysis phase
func AnalyzeZones() {
	PrintWarning("- Change rasters should be present in data/processed (run the change detection first).")

	years, err := ReadYears("Enter the years for the temporal evolution table (e.g. 2018-2024, empty for all): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	cells, err := ReadIntDefault("Enter the grid size (zones per axis)", 2, 100, zonal.DefaultGridCells)
	if err != nil {
		PrintError(err.Error())
		return
	}

	topN, err := ReadIntDefault("Enter the number of hotspots to rank", 1, cells*cells, zonal.DefaultHotspotCount)
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunZonalAnalysis(years, cells, topN); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess("Zonal analysis completed, tables and GeoJSON written to data/processed and data/vector!")
}
