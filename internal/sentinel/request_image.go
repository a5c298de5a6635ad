package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

const processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

// Sentinel-2 ground resolution in meters.
const resolution = 10

// maxCloudCoverage filters out scenes too cloudy for index analysis.
const maxCloudCoverage = 20

func calculatePixels(distance float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

// requestComposite fetches one least-cloudy composite of the study area
// for the given time range, with the five bands the index calculator
// needs, as a float32 GeoTIFF.
func requestComposite(startDate, endDate time.Time, geometry *geojson.Geometry) ([]byte, error) {
	bound := geometry.Geometry().Bound()

	widthPixels := calculatePixels(bound.Max[0] - bound.Min[0])
	heightPixels := calculatePixels(bound.Max[1] - bound.Min[1])
	// Clamp to the allowed range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	evalscript := `
    //VERSION=3
    function setup() {
      return {
        input: ["B02", "B03", "B04", "B08", "B11"],
        output: {
          id: "default",
          bands: 5,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B02, sample.B03, sample.B04, sample.B08, sample.B11];
    }
  `

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geometry,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
						"maxCloudCoverage": maxCloudCoverage,
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "leastCC",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	retries := 5
	var response *http.Response
	for attempt := 1; attempt <= retries; attempt++ {
		response, err = httpClient.Post(processURL, "application/json", bytes.NewBuffer(requestBody))
		if err == nil && response.StatusCode == http.StatusOK {
			break
		}

		if response != nil {
			body, _ := io.ReadAll(response.Body)
			bodyStr := string(body)
			response.Body.Close()
			response = nil
			if strings.Contains(bodyStr, "403") {
				return nil, fmt.Errorf("unauthorized access, check your client ID and secret")
			}
			fmt.Printf("Attempt %d failed: %s\n", attempt, bodyStr)
		} else {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
		}

		time.Sleep(5 * time.Second)
	}

	if response == nil {
		return nil, fmt.Errorf("failed to request composite after %d attempts: %v", retries, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return content, nil
}
