package ui

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/delivery"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
)

// DownloadImages handles the UI for acquiring yearly composites
func DownloadImages() {
	PrintWarning(fmt.Sprintf("- A '%s.geojson' file with the study area polygon should be present in data/geojsons folder.\n- COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET and COPERNICUS_TOKEN_URL must be set.", properties.StudyArea()))

	years, err := ReadYears("Enter the years to download (e.g. 2018-2024 or 2018,2021,2024, empty for all): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunDownload(years); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess(fmt.Sprintf("Successfully downloaded composites for %d year(s)!", len(years)))
}
