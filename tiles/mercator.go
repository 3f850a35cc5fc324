package tiles

import (
	"math"

	"github.com/s0ultr4d3r/gpxmerge/geo"
)

const TileSize = 256

// maxMercatorLat is where Web Mercator is cut off.
const maxMercatorLat = 85.05112878

// Project maps lon/lat (degrees) to normalized Web Mercator in [0,1], y down.
func Project(lat, lon float64) (x, y float64) {
	x = (lon + 180.0) / 360.0
	lat = math.Min(maxMercatorLat, math.Max(-maxMercatorLat, lat))
	s := math.Sin(lat * math.Pi / 180.0)
	y = 0.5 - math.Log((1+s)/(1-s))/(4*math.Pi)
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y float64) (lat, lon float64) {
	lon = x*360.0 - 180.0
	lat = math.Atan(math.Sinh(math.Pi*(1-2*y))) * 180.0 / math.Pi
	return lat, lon
}

func worldSize(z int) float64 { return TileSize * math.Exp2(float64(z)) }

// WorldPixel returns the position in world pixels at zoom z.
func WorldPixel(lat, lon float64, z int) (px, py float64) {
	x, y := Project(lat, lon)
	ws := worldSize(z)
	return x * ws, y * ws
}

// pixelBox returns the top-left and bottom-right world pixels of b at zoom z.
func pixelBox(b geo.Bounds, z int) (tlx, tly, brx, bry float64) {
	tlx, tly = WorldPixel(b.MaxLat, b.MinLon, z)
	brx, bry = WorldPixel(b.MinLat, b.MaxLon, z)
	return
}

// CoveringTiles returns the inclusive tile range covering b at zoom z.
func CoveringTiles(b geo.Bounds, z int) (minTX, minTY, maxTX, maxTY int) {
	tlx, tly, brx, bry := pixelBox(b, z)
	minTX = int(math.Floor(tlx / TileSize))
	minTY = int(math.Floor(tly / TileSize))
	maxTX = int(math.Floor(math.Max(tlx, brx-1) / TileSize))
	maxTY = int(math.Floor(math.Max(tly, bry-1) / TileSize))
	return
}

// FitZoom picks the highest zoom at which b fits into w x h pixels.
func FitZoom(b geo.Bounds, w, h int, p Preset) int {
	for z := p.MaxZoom; z > p.MinZoom; z-- {
		tlx, tly, brx, bry := pixelBox(b, z)
		if math.Ceil(brx-tlx) <= float64(w) && math.Ceil(bry-tly) <= float64(h) {
			return z
		}
	}
	return p.MinZoom
}
