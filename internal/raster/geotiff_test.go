package raster

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoTIFFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.tif")

	first := NewGrid(3, 2, testTransform, "")
	second := NewGrid(3, 2, testTransform, "")
	for i := range first.Data {
		first.Data[i] = float64(i) / 10
		second.Data[i] = -float64(i) / 10
	}
	first.Set(1, 1, NoDataValue)

	require.NoError(t, WriteGeoTIFF(path, []*Grid{first, second}, []string{"Delta_NDVI", "Zscore"}))

	grids, err := ReadBands(path, 2)
	require.NoError(t, err)
	require.Len(t, grids, 2)

	assert.Equal(t, first.GeoTransform, grids[0].GeoTransform)
	assert.True(t, grids[0].IsNoData(1, 1))
	assert.InDelta(t, 0.2, grids[0].At(2, 0), 1e-6)
	assert.InDelta(t, -0.2, grids[1].At(2, 0), 1e-6)
}

func TestReadBands_BandCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.tif")

	grid := NewGrid(2, 2, testTransform, "")
	require.NoError(t, WriteGeoTIFF(path, []*Grid{grid}, []string{"only"}))

	_, err := ReadBands(path, 5)
	require.Error(t, err)
}

func TestWriteGeoTIFF_InputValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.tif")

	require.Error(t, WriteGeoTIFF(path, nil, nil))

	a := NewGrid(2, 2, testTransform, "")
	b := NewGrid(3, 3, testTransform, "")
	require.Error(t, WriteGeoTIFF(path, []*Grid{a, b}, nil))
}
