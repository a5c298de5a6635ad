package ui

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/delivery"
)

// CalculateIndices handles the UI for the spectral index phase
func CalculateIndices() {
	PrintWarning("- Raw composites should be present in data/raw (run the download first).")

	years, err := ReadYears("Enter the years to process (e.g. 2018-2024, empty for all): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunIndices(years); err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess(fmt.Sprintf("Successfully calculated indices for %d year(s)!", len(years)))
}
