package raster

import (
	"fmt"
	"math"
	"sort"
)

// NoDataValue marks invalid cells in every raster this tool produces.
const NoDataValue = -9999.0

// PixelAreaHa is the ground area of one Sentinel-2 pixel (10m x 10m).
const PixelAreaHa = 0.01

// Grid is a single-band raster held fully in memory, row-major.
// GeoTransform follows the GDAL convention: [0] origin X, [1] pixel width,
// [3] origin Y, [5] pixel height (negative for north-up rasters).
type Grid struct {
	Width        int
	Height       int
	Data         []float64
	GeoTransform [6]float64
	Projection   string
}

func NewGrid(width, height int, geoTransform [6]float64, projection string) *Grid {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = NoDataValue
	}
	return &Grid{
		Width:        width,
		Height:       height,
		Data:         data,
		GeoTransform: geoTransform,
		Projection:   projection,
	}
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, value float64) {
	g.Data[y*g.Width+x] = value
}

func (g *Grid) IsNoData(x, y int) bool {
	v := g.At(x, y)
	return v == NoDataValue || math.IsNaN(v)
}

// SameShape reports whether two grids share dimensions and geotransform,
// i.e. whether their cells are aligned.
func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width &&
		g.Height == other.Height &&
		g.GeoTransform == other.GeoTransform
}

// Bounds returns the geographic extent (xmin, ymin, xmax, ymax).
func (g *Grid) Bounds() (float64, float64, float64, float64) {
	xMin := g.GeoTransform[0]
	yMax := g.GeoTransform[3]
	xMax := xMin + g.GeoTransform[1]*float64(g.Width)
	yMin := yMax + g.GeoTransform[5]*float64(g.Height)
	return xMin, yMin, xMax, yMax
}

// CellCenter returns the geographic coordinates of the center of cell (x, y).
func (g *Grid) CellCenter(x, y int) (float64, float64) {
	cx := g.GeoTransform[0] + (float64(x)+0.5)*g.GeoTransform[1]
	cy := g.GeoTransform[3] + (float64(y)+0.5)*g.GeoTransform[5]
	return cx, cy
}

// ValidValues returns the values of all cells that are not no-data.
func (g *Grid) ValidValues() []float64 {
	values := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		if v != NoDataValue && !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

type Stats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// Summary computes statistics over the valid cells of the grid. A grid
// with no valid cells is an input error, not an empty result.
func (g *Grid) Summary() (Stats, error) {
	values := g.ValidValues()
	if len(values) == 0 {
		return Stats{}, fmt.Errorf("no valid cells in %dx%d grid", g.Width, g.Height)
	}
	return Statistics(values), nil
}

func Statistics(values []float64) Stats {
	stats := Stats{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}

	sum := 0.0
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))

	sqDiff := 0.0
	for _, v := range values {
		d := v - stats.Mean
		sqDiff += d * d
	}
	stats.Std = math.Sqrt(sqDiff / float64(len(values)))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	return stats
}
