package sentinel

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
)

// GetStudyAreaGeometry loads the study-area polygon from the configured
// GeoJSON. The first feature of the collection defines the area.
func GetStudyAreaGeometry(area string) (*geojson.Geometry, error) {
	filePath := fmt.Sprintf("%s/data/geojsons/%s.geojson", properties.RootPath(), area)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read study area %s: %v", filePath, err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON in %s: %v", filePath, err)
	}
	if len(collection.Features) == 0 {
		return nil, fmt.Errorf("no features in study area file %s", filePath)
	}

	return geojson.NewGeometry(collection.Features[0].Geometry), nil
}

// GetCentroid returns the (latitude, longitude) centroid of the study area.
func GetCentroid(geometry *geojson.Geometry) (float64, float64, error) {
	centroid, area := planar.CentroidArea(geometry.Geometry())
	if area <= 0 {
		return 0, 0, errors.New("error getting centroid")
	}
	return centroid.Y(), centroid.X(), nil
}
