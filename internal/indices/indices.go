package indices

import (
	"fmt"

	"github.com/urbanwatch/urban-change-cli/internal/raster"
)

// Band order of the downloaded Sentinel-2 composites.
const (
	BandBlue = iota // B02
	BandGreen       // B03
	BandRed         // B04
	BandNIR         // B08
	BandSWIR        // B11
	BandCount
)

// Band order of the index rasters produced by ComputeIndexes.
const (
	IndexNDVI = iota
	IndexNDBI
	IndexNDWI
	IndexBSI
	IndexCount
)

var IndexNames = []string{"NDVI", "NDBI", "NDWI", "BSI"}

type IndexSet struct {
	NDVI *raster.Grid
	NDBI *raster.Grid
	NDWI *raster.Grid
	BSI  *raster.Grid
}

func (s *IndexSet) Grids() []*raster.Grid {
	return []*raster.Grid{s.NDVI, s.NDBI, s.NDWI, s.BSI}
}

// clamp keeps reflectance noise from pushing a ratio outside its nominal range.
func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// ratio computes (a - b) / (a + b) for one cell. A zero denominator or a
// no-data input yields no-data, never infinity.
func ratio(a, b float64) float64 {
	if a == raster.NoDataValue || b == raster.NoDataValue {
		return raster.NoDataValue
	}
	denominator := a + b
	if denominator == 0 {
		return raster.NoDataValue
	}
	return clamp((a - b) / denominator)
}

// ComputeIndexes derives the four spectral indices from a 5-band composite.
// All bands must share the same grid; a mismatch is a configuration error.
func ComputeIndexes(bands []*raster.Grid) (*IndexSet, error) {
	if len(bands) != BandCount {
		return nil, fmt.Errorf("expected %d bands, got %d", BandCount, len(bands))
	}
	ref := bands[0]
	for i, band := range bands[1:] {
		if !ref.SameShape(band) {
			return nil, fmt.Errorf("band %d grid does not match band 1", i+2)
		}
	}

	blue := bands[BandBlue]
	green := bands[BandGreen]
	red := bands[BandRed]
	nir := bands[BandNIR]
	swir := bands[BandSWIR]

	set := &IndexSet{
		NDVI: raster.NewGrid(ref.Width, ref.Height, ref.GeoTransform, ref.Projection),
		NDBI: raster.NewGrid(ref.Width, ref.Height, ref.GeoTransform, ref.Projection),
		NDWI: raster.NewGrid(ref.Width, ref.Height, ref.GeoTransform, ref.Projection),
		BSI:  raster.NewGrid(ref.Width, ref.Height, ref.GeoTransform, ref.Projection),
	}

	for y := 0; y < ref.Height; y++ {
		for x := 0; x < ref.Width; x++ {
			b := blue.At(x, y)
			g := green.At(x, y)
			r := red.At(x, y)
			n := nir.At(x, y)
			s := swir.At(x, y)

			set.NDVI.Set(x, y, ratio(n, r))
			set.NDBI.Set(x, y, ratio(s, n))
			set.NDWI.Set(x, y, ratio(g, n))
			set.BSI.Set(x, y, bareSoilIndex(b, r, n, s))
		}
	}

	return set, nil
}

// bareSoilIndex computes ((SWIR+RED) - (NIR+BLUE)) / ((SWIR+RED) + (NIR+BLUE)).
func bareSoilIndex(blue, red, nir, swir float64) float64 {
	if blue == raster.NoDataValue || red == raster.NoDataValue ||
		nir == raster.NoDataValue || swir == raster.NoDataValue {
		return raster.NoDataValue
	}
	denominator := (swir + red) + (nir + blue)
	if denominator == 0 {
		return raster.NoDataValue
	}
	return clamp(((swir + red) - (nir + blue)) / denominator)
}
