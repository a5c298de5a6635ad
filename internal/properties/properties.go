package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func StudyArea() string {
	area := os.Getenv("STUDY_AREA")
	if area == "" {
		area = "penaflor"
	}
	return area
}

func CopernicusClientID() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecret() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

type Color struct {
	R, G, B uint8
}

// ChangeColorMap maps multicriteria class names to the colors used when
// rendering classified change rasters.
var ChangeColorMap = map[string]Color{
	"no_change":       {224, 224, 224},
	"urbanization":    {214, 39, 40},
	"vegetation_loss": {255, 127, 14},
	"vegetation_gain": {44, 160, 44},
	"new_water":       {31, 119, 180},
	"water_loss":      {140, 86, 75},
}
