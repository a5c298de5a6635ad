package zonal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// 10x10 raster over the extent x: 0..100, y: 0..100.
var testTransform = [6]float64{0, 10, 0, 100, 0, -10}

func testRaster() *raster.Grid {
	return raster.NewGrid(10, 10, testTransform, "WGS84")
}

func TestCreateAnalysisGrid(t *testing.T) {
	grid, err := CreateAnalysisGrid(testRaster(), 5, 5)
	require.NoError(t, err)

	require.Len(t, grid.Zones, 25)
	assert.Equal(t, 20.0, grid.CellWidth)
	assert.Equal(t, 20.0, grid.CellHeight)
	assert.Equal(t, 0.0, grid.XMin)
	assert.Equal(t, 100.0, grid.YMax)

	first := grid.Zones[0]
	assert.Equal(t, "Z_00_00", first.ID)
	assert.Equal(t, 0, first.Col)
	assert.Equal(t, 0, first.Row)
	// 20x20 planar units -> 400 m2 -> 0.04 ha.
	assert.InDelta(t, 0.04, first.AreaHa, 1e-9)

	// Zones are addressable as zones[col*cellsY+row].
	assert.Equal(t, "Z_02_03", grid.Zones[2*5+3].ID)
}

func TestCreateAnalysisGrid_InvalidSize(t *testing.T) {
	_, err := CreateAnalysisGrid(testRaster(), 0, 5)
	require.Error(t, err)
}

func TestZoneIndexAt(t *testing.T) {
	grid, err := CreateAnalysisGrid(testRaster(), 5, 5)
	require.NoError(t, err)

	t.Run("interior point", func(t *testing.T) {
		index, ok := grid.ZoneIndexAt(5, 5)
		require.True(t, ok)
		assert.Equal(t, "Z_00_00", grid.Zones[index].ID)

		index, ok = grid.ZoneIndexAt(45, 65)
		require.True(t, ok)
		assert.Equal(t, "Z_02_03", grid.Zones[index].ID)
	})

	t.Run("internal boundary goes to the higher zone", func(t *testing.T) {
		index, ok := grid.ZoneIndexAt(20, 0.5)
		require.True(t, ok)
		assert.Equal(t, 1, grid.Zones[index].Col)
	})

	t.Run("max edge is clamped into the last zone", func(t *testing.T) {
		index, ok := grid.ZoneIndexAt(100, 100)
		require.True(t, ok)
		assert.Equal(t, 4, grid.Zones[index].Col)
		assert.Equal(t, 4, grid.Zones[index].Row)
	})

	t.Run("outside the extent", func(t *testing.T) {
		_, ok := grid.ZoneIndexAt(-1, 50)
		assert.False(t, ok)
		_, ok = grid.ZoneIndexAt(50, 100.5)
		assert.False(t, ok)
	})
}

func TestGridGeoJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis_grid.geojson")

	original, err := CreateAnalysisGrid(testRaster(), 4, 3)
	require.NoError(t, err)
	require.NoError(t, original.WriteGeoJSON(path))

	loaded, err := LoadAnalysisGrid(path)
	require.NoError(t, err)

	assert.Equal(t, original.CellsX, loaded.CellsX)
	assert.Equal(t, original.CellsY, loaded.CellsY)
	assert.InDelta(t, original.CellWidth, loaded.CellWidth, 1e-9)
	assert.InDelta(t, original.CellHeight, loaded.CellHeight, 1e-9)

	require.Len(t, loaded.Zones, len(original.Zones))
	for i, zone := range original.Zones {
		assert.Equal(t, zone.ID, loaded.Zones[i].ID)
		assert.Equal(t, zone.Col, loaded.Zones[i].Col)
		assert.Equal(t, zone.Row, loaded.Zones[i].Row)
		assert.InDelta(t, zone.AreaHa, loaded.Zones[i].AreaHa, 1e-9)
	}

	// The loaded grid assigns points identically to the original.
	for _, point := range [][2]float64{{0.5, 0.5}, {55, 42}, {99.9, 99.9}} {
		wantIndex, wantOK := original.ZoneIndexAt(point[0], point[1])
		gotIndex, gotOK := loaded.ZoneIndexAt(point[0], point[1])
		require.Equal(t, wantOK, gotOK)
		assert.Equal(t, wantIndex, gotIndex)
	}
}

func TestLoadAnalysisGrid_MissingFile(t *testing.T) {
	_, err := LoadAnalysisGrid(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
}
