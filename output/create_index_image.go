package output

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"github.com/urbanwatch/urban-change-cli/internal/indices"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
)

func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

func valueToColor(norm float64) color.RGBA {
	var r, g, b uint8
	if norm <= 0.5 {
		// Transition from blue to green
		ratio := norm / 0.5
		r = 0
		g = uint8(255 * ratio)
		b = uint8(255 * (1 - ratio))
	} else {
		// Transition from green to red
		ratio := (norm - 0.5) / 0.5
		r = uint8(255 * ratio)
		g = uint8(255 * (1 - ratio))
		b = 0
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// CreateIndexImages renders the NDVI raster of every year as a JPEG
// frame and returns the frame paths in year order. NDVI is mapped from
// its [-1, 1] range onto a blue to green to red ramp.
func CreateIndexImages(years []int) ([]string, error) {
	resultPath := fmt.Sprintf("%s/data/result/%s/images/NDVI", properties.RootPath(), properties.StudyArea())
	if err := os.MkdirAll(resultPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %v", err)
	}

	imagePaths := []string{}
	for _, year := range years {
		path := indices.IndexRasterPath(year)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("missing index raster for %d, expected %s (run the index phase first)", year, path)
		}

		set, err := indices.ReadIndexSet(path)
		if err != nil {
			return nil, err
		}
		ndvi := set.NDVI

		newImage := image.NewRGBA(image.Rect(0, 0, ndvi.Width, ndvi.Height))
		for y := 0; y < ndvi.Height; y++ {
			for x := 0; x < ndvi.Width; x++ {
				if ndvi.IsNoData(x, y) {
					newImage.Set(x, y, color.White)
					continue
				}
				newImage.Set(x, y, valueToColor(normalize(ndvi.At(x, y), -1, 1)))
			}
		}

		outputPath := fmt.Sprintf("%s/ndvi_%d.jpeg", resultPath, year)
		outputFile, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create JPEG file: %v", err)
		}
		if err := jpeg.Encode(outputFile, newImage, &jpeg.Options{Quality: 100}); err != nil {
			outputFile.Close()
			return nil, fmt.Errorf("failed to encode JPEG file: %v", err)
		}
		outputFile.Close()

		fmt.Println("JPEG image created successfully as", outputPath)
		imagePaths = append(imagePaths, outputPath)
	}

	return imagePaths, nil
}
