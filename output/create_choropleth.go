package output

import (
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/zonal"
)

const (
	choroplethCellSize = 80
	choroplethMargin   = 40
)

// CreateChoroplethImage draws the analysis grid with each zone shaded by
// the chosen ranking metric, white for zero up to dark red for the
// maximum. Rows are flipped so north stays at the top of the image.
func CreateChoroplethImage(grid *zonal.AnalysisGrid, stats []zonal.ZoneStatistics, metric string) (string, error) {
	if len(stats) != len(grid.Zones) {
		return "", fmt.Errorf("got %d statistics rows for %d zones", len(stats), len(grid.Zones))
	}

	values := make([]float64, len(stats))
	maxValue := 0.0
	for i, zone := range stats {
		value, err := zonal.MetricValue(zone, metric)
		if err != nil {
			return "", err
		}
		values[i] = value
		if value > maxValue {
			maxValue = value
		}
	}

	width := grid.CellsX*choroplethCellSize + 2*choroplethMargin
	height := grid.CellsY*choroplethCellSize + 2*choroplethMargin

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, zone := range grid.Zones {
		norm := 0.0
		if maxValue > 0 {
			norm = values[i] / maxValue
		}

		px := float64(choroplethMargin + zone.Col*choroplethCellSize)
		py := float64(choroplethMargin + (grid.CellsY-1-zone.Row)*choroplethCellSize)

		dc.SetRGB(1, 1-norm*0.8, 1-norm*0.9)
		dc.DrawRectangle(px, py, choroplethCellSize, choroplethCellSize)
		dc.Fill()

		dc.SetRGB(0.4, 0.4, 0.4)
		dc.SetLineWidth(1)
		dc.DrawRectangle(px, py, choroplethCellSize, choroplethCellSize)
		dc.Stroke()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(zone.ID, px+choroplethCellSize/2, py+choroplethCellSize/2-8, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", values[i]), px+choroplethCellSize/2, py+choroplethCellSize/2+10, 0.5, 0.5)
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Zone choropleth: %s", metric), float64(width)/2, choroplethMargin/2, 0.5, 0.5)

	resultPath := fmt.Sprintf("%s/data/result/%s/images", properties.RootPath(), properties.StudyArea())
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %v", err)
	}
	outputPath := fmt.Sprintf("%s/choropleth_%s.png", resultPath, metric)

	if err := dc.SavePNG(outputPath); err != nil {
		return "", fmt.Errorf("failed to save choropleth: %v", err)
	}

	fmt.Println("Choropleth created successfully as", outputPath)
	return outputPath, nil
}
