// Package gpxdata is the in-memory GPX model: parsing, merging with
// deduplication and serialization back to GPX 1.1.
//
// Values produced by this package are never modified after construction.
// Merge of a single file returns its argument, so callers must treat results
// as shared.
package gpxdata

import (
	"time"

	"github.com/s0ultr4d3r/gpxmerge/geo"
)

// TrackPoint is a single recorded GPS sample. Time is kept as the raw text
// from the file.
type TrackPoint struct {
	Lat  float64
	Lon  float64
	Ele  *float64
	Time *string
}

// LatLon implements geo.LatLoner.
func (p TrackPoint) LatLon() (float64, float64) { return p.Lat, p.Lon }

// Waypoint is a named point of interest.
type Waypoint struct {
	Lat  float64
	Lon  float64
	Ele  *float64
	Name *string
}

// LatLon implements geo.LatLoner.
func (w Waypoint) LatLon() (float64, float64) { return w.Lat, w.Lon }

// Track is one contiguous recorded segment.
type Track struct {
	Points []TrackPoint
}

// Metadata mirrors the <metadata> block. Nil fields were absent in the source.
type Metadata struct {
	Name   *string
	Desc   *string
	Author *string
	Time   *string
}

// GPXData is one parsed or merged file.
type GPXData struct {
	Name      string
	Tracks    []Track
	Waypoints []Waypoint
	Metadata  *Metadata
}

// Empty reports whether d has neither tracks nor waypoints.
func (d *GPXData) Empty() bool {
	return len(d.Tracks) == 0 && len(d.Waypoints) == 0
}

// PointCount is the number of track points over all tracks.
func (d *GPXData) PointCount() int {
	n := 0
	for _, t := range d.Tracks {
		n += len(t.Points)
	}
	return n
}

// Points flattens all tracks into a new slice, in track order.
func (d *GPXData) Points() []TrackPoint {
	out := make([]TrackPoint, 0, d.PointCount())
	for _, t := range d.Tracks {
		out = append(out, t.Points...)
	}
	return out
}

// Summary is what a caller shows next to a loaded file.
type Summary struct {
	Tracks     int
	Waypoints  int
	Points     int
	DistanceKm float64
}

// Summary computes the display badges for d. Distance is summed per track;
// the gap between two tracks is not counted.
func (d *GPXData) Summary() Summary {
	s := Summary{
		Tracks:    len(d.Tracks),
		Waypoints: len(d.Waypoints),
		Points:    d.PointCount(),
	}
	for _, t := range d.Tracks {
		s.DistanceKm += geo.CumulativeDistance(t.Points)
	}
	return s
}

// timestampLayout matches what browsers emit for Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// now is swapped in tests.
var now = time.Now

func timestamp() string { return now().UTC().Format(timestampLayout) }

func ptr[T any](v T) *T { return &v }
