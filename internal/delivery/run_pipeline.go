package delivery

import (
	"fmt"
	"os"
	"time"

	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/indices"
	"github.com/urbanwatch/urban-change-cli/internal/notification"
	"github.com/urbanwatch/urban-change-cli/internal/sentinel"
	"github.com/urbanwatch/urban-change-cli/internal/utils"
	"github.com/urbanwatch/urban-change-cli/internal/zonal"
)

func notifyError(message string) {
	if err := notification.SendDiscordErrorNotification(message); err != nil {
		fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
	}
}

func notifySuccess(message string) {
	if err := notification.SendDiscordSuccessNotification(message); err != nil {
		fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
	}
}

// RunDownload acquires one yearly composite per requested year.
func RunDownload(years []int) error {
	fmt.Println("\n=== PHASE 1: IMAGE ACQUISITION ===")
	start := time.Now()

	if err := sentinel.DownloadYearlyComposites(years); err != nil {
		notifyError(fmt.Sprintf("Image acquisition failed: %v", err))
		return err
	}

	fmt.Printf("\nAcquisition finished in %s\n", time.Since(start).Round(time.Second))
	return nil
}

// RunIndices computes the four spectral indices for every year that has
// a raw composite on disk. Years the archive has no usable scene for are
// skipped; a year missing for any other reason is a fatal input error.
func RunIndices(years []int) error {
	fmt.Println("\n=== PHASE 2: SPECTRAL INDICES ===")
	start := time.Now()

	unavailable := sentinel.CachedUnavailableYears()
	for _, year := range utils.SortYears(years, true) {
		if unavailable[year] {
			if _, err := os.Stat(indices.RawImagePath(year)); err != nil {
				fmt.Printf("\n--- Year %d: skipped, no usable scene in the archive ---\n", year)
				continue
			}
		}
		fmt.Printf("\n--- Year %d ---\n", year)
		rows, err := indices.CalculateIndices(year)
		if err != nil {
			notifyError(fmt.Sprintf("Index calculation failed for %d: %v", year, err))
			return err
		}
		indices.PrintStatistics(year, rows)
	}

	fmt.Printf("\nIndex calculation finished in %s\n", time.Since(start).Round(time.Second))
	return nil
}

// RunChangeDetection compares the earliest and latest years with the
// three detection methods.
func RunChangeDetection(years []int) error {
	if len(years) < 2 {
		return fmt.Errorf("change detection needs at least two years, got %d", len(years))
	}
	sorted := utils.SortYears(years, true)
	baseline, latest := sorted[0], sorted[len(sorted)-1]

	fmt.Printf("\n=== PHASE 3: CHANGE DETECTION (%d vs %d) ===\n", baseline, latest)
	start := time.Now()

	if _, err := change.DetectChanges(baseline, latest); err != nil {
		notifyError(fmt.Sprintf("Change detection failed: %v", err))
		return err
	}

	fmt.Printf("\nChange detection finished in %s\n", time.Since(start).Round(time.Second))
	return nil
}

// RunZonalAnalysis aggregates the classified changes into the analysis
// grid and writes every tabular and vector artifact.
func RunZonalAnalysis(years []int, cells, topN int) error {
	fmt.Println("\n=== PHASE 4: ZONAL ANALYSIS ===")
	start := time.Now()

	sorted := utils.SortYears(years, true)
	if _, _, err := zonal.AnalyzeZones(sorted, cells, topN); err != nil {
		notifyError(fmt.Sprintf("Zonal analysis failed: %v", err))
		return err
	}

	fmt.Printf("\nZonal analysis finished in %s\n", time.Since(start).Round(time.Second))
	return nil
}

// yearsWithIndexRaster narrows a year list to those whose index raster
// exists on disk, keeping the order of the input.
func yearsWithIndexRaster(years []int) []int {
	available := make([]int, 0, len(years))
	for _, year := range years {
		if _, err := os.Stat(indices.IndexRasterPath(year)); err == nil {
			available = append(available, year)
		}
	}
	return available
}

// RunFullPipeline executes every phase in order. Each phase validates
// its own inputs, so a rerun resumes from whatever is already on disk.
// Years without a usable scene drop out after the index phase; the later
// phases run over the years that actually produced rasters.
func RunFullPipeline(years []int, cells, topN int) error {
	start := time.Now()

	if err := RunDownload(years); err != nil {
		return err
	}
	if err := RunIndices(years); err != nil {
		return err
	}

	processed := yearsWithIndexRaster(utils.SortYears(years, true))
	if len(processed) < 2 {
		err := fmt.Errorf("only %d of %d requested years have index rasters, need at least two for change detection", len(processed), len(years))
		notifyError(err.Error())
		return err
	}
	if len(processed) < len(years) {
		fmt.Printf("\n\033[33mContinuing with %d of %d requested years, the rest have no usable scene.\033[0m\n", len(processed), len(years))
	}

	if err := RunChangeDetection(processed); err != nil {
		return err
	}
	if err := RunZonalAnalysis(processed, cells, topN); err != nil {
		return err
	}

	elapsed := time.Since(start).Round(time.Second)
	fmt.Printf("\nPipeline completed in %s\n", elapsed)
	notifySuccess(fmt.Sprintf("Urban change pipeline completed in %s", elapsed))
	return nil
}
