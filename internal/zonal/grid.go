package zonal

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/urbanwatch/urban-change-cli/internal/properties"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// DefaultGridCells is the number of analysis zones per axis.
const DefaultGridCells = 10

// Zone is one cell of the analysis grid. Zones are created once and never
// altered; statistics are attached to them per run.
type Zone struct {
	ID       string
	Col      int
	Row      int
	Geometry orb.Polygon
	AreaHa   float64
}

// AnalysisGrid is a deterministic regular tiling of the study extent.
type AnalysisGrid struct {
	Zones      []Zone
	CellsX     int
	CellsY     int
	XMin       float64
	YMin       float64
	XMax       float64
	YMax       float64
	CellWidth  float64
	CellHeight float64
	Projection string
}

func GridGeoJSONPath() string {
	return fmt.Sprintf("%s/data/vector/analysis_grid.geojson", properties.RootPath())
}

func ZoneID(col, row int) string {
	return fmt.Sprintf("Z_%02d_%02d", col, row)
}

// CreateAnalysisGrid tiles the extent of the reference raster into
// cellsX x cellsY rectangular zones. The tiling is fully determined by the
// extent and the cell counts.
func CreateAnalysisGrid(ref *raster.Grid, cellsX, cellsY int) (*AnalysisGrid, error) {
	if cellsX <= 0 || cellsY <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", cellsX, cellsY)
	}

	xMin, yMin, xMax, yMax := ref.Bounds()
	cellWidth := (xMax - xMin) / float64(cellsX)
	cellHeight := (yMax - yMin) / float64(cellsY)

	grid := &AnalysisGrid{
		Zones:      make([]Zone, 0, cellsX*cellsY),
		CellsX:     cellsX,
		CellsY:     cellsY,
		XMin:       xMin,
		YMin:       yMin,
		XMax:       xMax,
		YMax:       yMax,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Projection: ref.Projection,
	}

	for col := 0; col < cellsX; col++ {
		for row := 0; row < cellsY; row++ {
			x1 := xMin + float64(col)*cellWidth
			y1 := yMin + float64(row)*cellHeight
			x2 := x1 + cellWidth
			y2 := y1 + cellHeight

			polygon := orb.Polygon{orb.Ring{
				{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}, {x1, y1},
			}}
			grid.Zones = append(grid.Zones, Zone{
				ID:       ZoneID(col, row),
				Col:      col,
				Row:      row,
				Geometry: polygon,
				AreaHa:   planar.Area(polygon) / 10000,
			})
		}
	}

	return grid, nil
}

// ZoneIndexAt assigns a point to exactly one zone: the one containing it,
// with points on the max edge of the extent clamped into the last zone.
// Cells straddling a boundary are never split or double-counted.
func (g *AnalysisGrid) ZoneIndexAt(cx, cy float64) (int, bool) {
	if cx < g.XMin || cx > g.XMax || cy < g.YMin || cy > g.YMax {
		return 0, false
	}
	col := int(math.Floor((cx - g.XMin) / g.CellWidth))
	row := int(math.Floor((cy - g.YMin) / g.CellHeight))
	if col >= g.CellsX {
		col = g.CellsX - 1
	}
	if row >= g.CellsY {
		row = g.CellsY - 1
	}
	return col*g.CellsY + row, true
}

// WriteGeoJSON persists the grid so later runs reuse the same zones.
func (g *AnalysisGrid) WriteGeoJSON(path string) error {
	collection := geojson.NewFeatureCollection()
	for _, zone := range g.Zones {
		feature := geojson.NewFeature(zone.Geometry)
		feature.Properties = geojson.Properties{
			"zone_id": zone.ID,
			"zone_x":  zone.Col,
			"zone_y":  zone.Row,
			"area_ha": zone.AreaHa,
		}
		collection.Append(feature)
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal analysis grid: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis grid: %v", err)
	}
	return nil
}

// LoadAnalysisGrid rebuilds the grid from a previously written GeoJSON.
// The tiling parameters are recovered from the zone geometries.
func LoadAnalysisGrid(path string) (*AnalysisGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis grid %s: %v", path, err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis grid %s: %v", path, err)
	}
	if len(collection.Features) == 0 {
		return nil, fmt.Errorf("analysis grid %s has no zones", path)
	}

	grid := &AnalysisGrid{}
	grid.XMin = math.Inf(1)
	grid.YMin = math.Inf(1)
	grid.XMax = math.Inf(-1)
	grid.YMax = math.Inf(-1)

	for _, feature := range collection.Features {
		polygon, ok := feature.Geometry.(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("analysis grid %s contains a non-polygon zone", path)
		}
		col := int(feature.Properties.MustFloat64("zone_x"))
		row := int(feature.Properties.MustFloat64("zone_y"))
		zone := Zone{
			ID:       feature.Properties.MustString("zone_id"),
			Col:      col,
			Row:      row,
			Geometry: polygon,
			AreaHa:   feature.Properties.MustFloat64("area_ha"),
		}
		grid.Zones = append(grid.Zones, zone)

		bound := polygon.Bound()
		grid.XMin = math.Min(grid.XMin, bound.Min[0])
		grid.YMin = math.Min(grid.YMin, bound.Min[1])
		grid.XMax = math.Max(grid.XMax, bound.Max[0])
		grid.YMax = math.Max(grid.YMax, bound.Max[1])
		if col+1 > grid.CellsX {
			grid.CellsX = col + 1
		}
		if row+1 > grid.CellsY {
			grid.CellsY = row + 1
		}
	}

	grid.CellWidth = (grid.XMax - grid.XMin) / float64(grid.CellsX)
	grid.CellHeight = (grid.YMax - grid.YMin) / float64(grid.CellsY)

	// Zones must be addressable as zones[col*cellsY+row].
	expected := grid.CellsX * grid.CellsY
	if len(grid.Zones) != expected {
		return nil, fmt.Errorf("analysis grid %s has %d zones, expected %d", path, len(grid.Zones), expected)
	}
	ordered := make([]Zone, expected)
	for _, zone := range grid.Zones {
		ordered[zone.Col*grid.CellsY+zone.Row] = zone
	}
	grid.Zones = ordered

	return grid, nil
}
