package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

func openDataset(path string) (*godal.Dataset, error) {
	return godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
}

// ReadBands reads all bands of a GeoTIFF into aligned grids. A band count
// different from expectedBands is a fatal configuration error. Cells equal
// to the band's declared no-data value are normalized to NoDataValue.
func ReadBands(path string, expectedBands int) ([]*Grid, error) {
	ds, err := openDataset(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %v", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if len(bands) != expectedBands {
		return nil, fmt.Errorf("raster %s has %d bands, expected %d", path, len(bands), expectedBands)
	}

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY

	geoTransform, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to read geotransform of %s: %v", path, err)
	}

	projection := ""
	if sr := ds.SpatialRef(); sr != nil {
		projection, _ = sr.WKT()
	}

	grids := make([]*Grid, len(bands))
	for i, band := range bands {
		grid := NewGrid(width, height, geoTransform, projection)
		for y := 0; y < height; y++ {
			row := grid.Data[y*width : (y+1)*width]
			if err := band.Read(0, y, row, width, 1); err != nil {
				return nil, fmt.Errorf("failed to read band %d of %s: %v", i+1, path, err)
			}
		}
		if noData, ok := band.NoData(); ok && noData != NoDataValue {
			for j, v := range grid.Data {
				if v == noData {
					grid.Data[j] = NoDataValue
				}
			}
		}
		grids[i] = grid
	}

	return grids, nil
}

// WriteGeoTIFF writes aligned grids as a multi-band float32 GeoTIFF with
// NoDataValue declared on every band. Existing files are overwritten.
func WriteGeoTIFF(path string, grids []*Grid, descriptions []string) error {
	if len(grids) == 0 {
		return fmt.Errorf("no bands to write to %s", path)
	}
	ref := grids[0]
	for i, grid := range grids[1:] {
		if !ref.SameShape(grid) {
			return fmt.Errorf("band %d does not match the grid of band 1", i+2)
		}
	}

	ds, err := godal.Create(godal.GTiff, path, len(grids), godal.Float32, ref.Width, ref.Height)
	if err != nil {
		return fmt.Errorf("failed to create raster %s: %v", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(ref.GeoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %v", path, err)
	}
	if ref.Projection != "" {
		sr, err := godal.NewSpatialRefFromWKT(ref.Projection)
		if err != nil {
			return fmt.Errorf("invalid projection for %s: %v", path, err)
		}
		defer sr.Close()
		if err := ds.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set projection on %s: %v", path, err)
		}
	}

	for i, grid := range grids {
		band := ds.Bands()[i]
		if err := band.SetNoData(NoDataValue); err != nil {
			return fmt.Errorf("failed to set nodata on band %d of %s: %v", i+1, path, err)
		}
		if i < len(descriptions) && descriptions[i] != "" {
			if err := band.SetDescription(descriptions[i]); err != nil {
				return fmt.Errorf("failed to describe band %d of %s: %v", i+1, path, err)
			}
		}
		buffer := make([]float32, grid.Width)
		for y := 0; y < grid.Height; y++ {
			for x := 0; x < grid.Width; x++ {
				buffer[x] = float32(grid.At(x, y))
			}
			if err := band.Write(0, y, buffer, grid.Width, 1); err != nil {
				return fmt.Errorf("failed to write band %d of %s: %v", i+1, path, err)
			}
		}
	}

	return nil
}
