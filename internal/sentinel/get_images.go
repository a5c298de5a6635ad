package sentinel

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/paulmach/orb/geojson"
	"github.com/schollz/progressbar/v3"
	"github.com/urbanwatch/urban-change-cli/internal/cache"
	"github.com/urbanwatch/urban-change-cli/internal/indices"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// Copernicus rate limits concurrent process requests, two workers keeps
// us comfortably below the ceiling.
const downloadWorkers = 2

var errNoScene = errors.New("no scene matched the time range and cloud filter")

// isUnavailable distinguishes an empty archive window from transient
// request failures, only the former is worth remembering across runs.
func isUnavailable(err error) bool {
	return errors.Is(err, errNoScene) || strings.Contains(err.Error(), "NO_DATA")
}

func unavailableYearsStore(area string) (*cache.FileCache[[]int], string) {
	store := cache.NewFileCache[[]int]("cache/sentinel")
	return store, store.GenerateKey("unavailable_years", area)
}

// CachedUnavailableYears reports the years a previous run found no
// usable scene for, keyed by the configured study area. Later phases
// consult this so an empty archive window does not abort the pipeline.
func CachedUnavailableYears() map[int]bool {
	store, key := unavailableYearsStore(properties.StudyArea())
	years, _ := store.Get(key)
	set := make(map[int]bool, len(years))
	for _, year := range years {
		set[year] = true
	}
	return set
}

// DownloadYearlyComposites fetches one summer composite per requested
// year into data/raw. Years already on disk are skipped, and years the
// archive could not serve are remembered so reruns do not retry them.
func DownloadYearlyComposites(years []int) error {
	area := properties.StudyArea()
	geometry, err := GetStudyAreaGeometry(area)
	if err != nil {
		return err
	}

	rawDir := fmt.Sprintf("%s/data/raw", properties.RootPath())
	if err := os.MkdirAll(rawDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create raw data directory: %v", err)
	}

	unavailableCache, cacheKey := unavailableYearsStore(area)
	unavailable, _ := unavailableCache.Get(cacheKey)
	unavailableSet := make(map[int]bool, len(unavailable))
	for _, year := range unavailable {
		unavailableSet[year] = true
	}

	bar := progressbar.Default(int64(len(years)), "Downloading composites")

	wp := workerpool.New(downloadWorkers)
	mu := sync.Mutex{}
	var errs []error
	newUnavailable := []int{}

	for _, year := range years {
		year := year
		wp.Submit(func() {
			defer bar.Add(1)

			path := indices.RawImagePath(year)
			if _, err := os.Stat(path); err == nil {
				return
			}
			if unavailableSet[year] {
				fmt.Printf("\n  Skipping %d, no usable scene found on a previous run\n", year)
				return
			}

			if err := downloadComposite(year, geometry, path); err != nil {
				mu.Lock()
				if isUnavailable(err) {
					newUnavailable = append(newUnavailable, year)
					fmt.Printf("\n  No usable scene for %d: %v\n", year, err)
				} else {
					errs = append(errs, fmt.Errorf("year %d: %v", year, err))
				}
				mu.Unlock()
			}
		})
	}
	wp.StopWait()

	if len(newUnavailable) > 0 {
		combined := append(unavailable, newUnavailable...)
		if err := unavailableCache.Set(cacheKey, combined); err != nil {
			fmt.Printf("  Warning: failed to persist unavailable years: %v\n", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to download %d composites, first error: %v", len(errs), errs[0])
	}
	return nil
}

// downloadComposite requests the least-cloudy summer composite for one
// year, writes it and verifies the band layout before accepting it.
func downloadComposite(year int, geometry *geojson.Geometry, path string) error {
	start := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.September, 30, 23, 59, 59, 0, time.UTC)

	content, err := requestComposite(start, end, geometry)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return errNoScene
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", tmpPath, err)
	}

	if _, err := raster.ReadBands(tmpPath, indices.BandCount); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("downloaded composite is invalid: %v", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move composite into place: %v", err)
	}

	fmt.Printf("\n  Saved composite for %d: %s\n", year, path)
	return nil
}
