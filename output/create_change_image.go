package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/change"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// CreateChangeImage renders the multicriteria classification raster as a
// PNG using the class color map. NoData cells are left white.
func CreateChangeImage() (string, error) {
	classifiedPath := change.ClassifiedRasterPath()
	if _, err := os.Stat(classifiedPath); err != nil {
		return "", fmt.Errorf("missing classified raster, expected %s (run the change detection phase first)", classifiedPath)
	}

	bands, err := raster.ReadBands(classifiedPath, 1)
	if err != nil {
		return "", err
	}
	classified := bands[0]

	resultPath := fmt.Sprintf("%s/data/result/%s/images", properties.RootPath(), properties.StudyArea())
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %v", err)
	}
	outputPath := fmt.Sprintf("%s/change_classified.png", resultPath)

	newImage := image.NewRGBA(image.Rect(0, 0, classified.Width, classified.Height))
	for y := 0; y < classified.Height; y++ {
		for x := 0; x < classified.Width; x++ {
			if classified.IsNoData(x, y) {
				newImage.Set(x, y, color.White)
				continue
			}
			name := change.ClassNames[change.ChangeClass(classified.At(x, y))]
			mapped := properties.ChangeColorMap[name]
			newImage.Set(x, y, color.RGBA{R: mapped.R, G: mapped.G, B: mapped.B, A: 255})
		}
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create PNG file: %v", err)
	}
	defer outputFile.Close()

	if err := png.Encode(outputFile, newImage); err != nil {
		return "", fmt.Errorf("failed to encode PNG file: %v", err)
	}

	fmt.Println("PNG image created successfully as", outputPath)
	return outputPath, nil
}
