package indices

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

type IndexStatistics struct {
	Year   int     `csv:"year"`
	Index  string  `csv:"index"`
	Mean   float64 `csv:"mean"`
	Std    float64 `csv:"std"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	Median float64 `csv:"median"`
}

// SummarizeIndexes builds one statistics row per index over valid cells.
func SummarizeIndexes(year int, set *IndexSet) ([]IndexStatistics, error) {
	grids := set.Grids()
	rows := make([]IndexStatistics, 0, len(grids))
	for i, grid := range grids {
		stats, err := grid.Summary()
		if err != nil {
			return nil, fmt.Errorf("index %s for year %d: %v", IndexNames[i], year, err)
		}
		rows = append(rows, IndexStatistics{
			Year:   year,
			Index:  IndexNames[i],
			Mean:   stats.Mean,
			Std:    stats.Std,
			Min:    stats.Min,
			Max:    stats.Max,
			Median: stats.Median,
		})
	}
	return rows, nil
}

func indexOrder(name string) int {
	for i, n := range IndexNames {
		if n == name {
			return i
		}
	}
	return len(IndexNames)
}

// ReadStatisticsRows loads the running statistics table. A missing file
// is an empty table, not an error.
func ReadStatisticsRows(path string) ([]IndexStatistics, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open statistics table %s: %v", path, err)
	}
	defer file.Close()

	var rows []IndexStatistics
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse statistics table %s: %v", path, err)
	}
	return rows, nil
}

// UpsertStatistics merges rows into the running statistics table,
// replacing any existing rows for the same (year, index) pair and
// rewriting the whole file, so reruns of a year are idempotent.
func UpsertStatistics(path string, rows []IndexStatistics) error {
	existing, err := ReadStatisticsRows(path)
	if err != nil {
		return err
	}

	type key struct {
		year  int
		index string
	}
	replaced := make(map[key]bool, len(rows))
	for _, row := range rows {
		replaced[key{row.Year, row.Index}] = true
	}

	merged := make([]IndexStatistics, 0, len(existing)+len(rows))
	for _, row := range existing {
		if !replaced[key{row.Year, row.Index}] {
			merged = append(merged, row)
		}
	}
	merged = append(merged, rows...)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Year != merged[j].Year {
			return merged[i].Year < merged[j].Year
		}
		return indexOrder(merged[i].Index) < indexOrder(merged[j].Index)
	})

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create statistics table %s: %v", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&merged, file); err != nil {
		return fmt.Errorf("failed to write statistics table %s: %v", path, err)
	}
	return nil
}

// PrintStatistics mirrors the per-year summary table on stdout.
func PrintStatistics(year int, rows []IndexStatistics) {
	fmt.Printf("\n  Statistics %d:\n", year)
	fmt.Printf("     %-8s %-8s %-8s %-8s %-8s\n", "Index", "Mean", "Std", "Min", "Max")
	for _, row := range rows {
		fmt.Printf("     %-8s %7.3f %7.3f %7.3f %7.3f\n", row.Index, row.Mean, row.Std, row.Min, row.Max)
	}
}
