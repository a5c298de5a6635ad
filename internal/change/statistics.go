package change

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

const (
	MethodDifference    = "simple_difference"
	MethodMulticriteria = "multicriteria"
	MethodZScore        = "zscore"
)

type CategoryStatistics struct {
	Method   string  `csv:"method"`
	Category string  `csv:"category"`
	Pixels   int     `csv:"pixels"`
	Percent  float64 `csv:"percent"`
	Hectares float64 `csv:"hectares"`
}

func newCategory(method, category string, pixels, validPixels int) CategoryStatistics {
	percent := 0.0
	if validPixels > 0 {
		percent = 100 * float64(pixels) / float64(validPixels)
	}
	return CategoryStatistics{
		Method:   method,
		Category: category,
		Pixels:   pixels,
		Percent:  percent,
		Hectares: float64(pixels) * raster.PixelAreaHa,
	}
}

// WriteStatistics overwrites the per-method area table. Reruns are
// idempotent given identical inputs.
func WriteStatistics(path string, rows []CategoryStatistics) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create change statistics table: %v", err)
	}
	defer file.Close()

	return gocsv.MarshalFile(&rows, file)
}

// PrintStatistics mirrors the per-method summary on stdout.
func PrintStatistics(rows []CategoryStatistics) {
	fmt.Printf("\n  %-18s %-18s %-12s %-8s %-10s\n", "Method", "Category", "Pixels", "%", "Hectares")
	for _, row := range rows {
		fmt.Printf("  %-18s %-18s %-12d %-7.2f%% %-10.2f\n",
			row.Method, row.Category, row.Pixels, row.Percent, row.Hectares)
	}
}
