// Package geo holds the small amount of spherical math needed for GPX tracks.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// LatLoner is anything with a position in degrees.
type LatLoner interface {
	LatLon() (lat, lon float64)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Haversine returns the great-circle distance in kilometres between two
// positions given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sPhi := math.Sin(dPhi / 2)
	sLambda := math.Sin(dLambda / 2)
	a := sPhi*sPhi + math.Cos(phi1)*math.Cos(phi2)*sLambda*sLambda
	// rounding can push a slightly outside [0,1] for antipodal points
	a = math.Min(1, math.Max(0, a))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CumulativeDistance sums Haversine over consecutive pairs. Fewer than two
// points yield 0.
func CumulativeDistance[P LatLoner](pts []P) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		lat1, lon1 := pts[i-1].LatLon()
		lat2, lon2 := pts[i].LatLon()
		total += Haversine(lat1, lon1, lat2, lon2)
	}
	return total
}

// PlanarDistance2 is the squared Euclidean distance in degree space. It is only
// meaningful for ranking nearby candidates.
func PlanarDistance2(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	return dLat*dLat + dLon*dLon
}

// Bounds is a lat/lon bounding box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// EmptyBounds returns an inverted box that any Extend call will replace.
func EmptyBounds() Bounds {
	return Bounds{
		MinLat: math.MaxFloat64, MaxLat: -math.MaxFloat64,
		MinLon: math.MaxFloat64, MaxLon: -math.MaxFloat64,
	}
}

// Extend grows b to include the position.
func (b *Bounds) Extend(lat, lon float64) {
	b.MinLat = math.Min(b.MinLat, lat)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLon = math.Max(b.MaxLon, lon)
}

// Valid reports whether at least one position has been added.
func (b Bounds) Valid() bool { return b.MinLat <= b.MaxLat && b.MinLon <= b.MaxLon }

// Pad widens the box by frac of its span on every side.
func (b Bounds) Pad(frac float64) Bounds {
	padLat := (b.MaxLat - b.MinLat) * frac
	padLon := (b.MaxLon - b.MinLon) * frac
	return Bounds{
		MinLat: b.MinLat - padLat, MaxLat: b.MaxLat + padLat,
		MinLon: b.MinLon - padLon, MaxLon: b.MaxLon + padLon,
	}
}

// BoundsOf returns the bounding box of pts.
func BoundsOf[P LatLoner](pts []P) Bounds {
	b := EmptyBounds()
	for _, p := range pts {
		b.Extend(p.LatLon())
	}
	return b
}
