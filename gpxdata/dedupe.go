package gpxdata

import "math"

// PointKey is the identity of a track point for deduplication: coordinates to
// 6 decimals, elevation to 1 decimal and the raw timestamp.
type PointKey struct {
	Lat, Lon int64
	Ele      int64
	HasEle   bool
	Time     string
	HasTime  bool
}

// Key returns the deduplication identity of p.
func (p TrackPoint) Key() PointKey {
	k := PointKey{
		Lat: roundScaled(p.Lat, 6),
		Lon: roundScaled(p.Lon, 6),
	}
	if p.Ele != nil {
		k.Ele = roundScaled(*p.Ele, 1)
		k.HasEle = true
	}
	if p.Time != nil {
		k.Time = *p.Time
		k.HasTime = true
	}
	return k
}

// WaypointKey is the identity of a waypoint: coordinates to 5 decimals. Name
// and elevation do not take part.
type WaypointKey struct {
	Lat, Lon int64
}

// Key returns the deduplication identity of w.
func (w Waypoint) Key() WaypointKey {
	return WaypointKey{Lat: roundScaled(w.Lat, 5), Lon: roundScaled(w.Lon, 5)}
}

// roundScaled returns v*10^places rounded half away from zero.
func roundScaled(v float64, places int) int64 {
	return int64(math.Round(v * math.Pow10(places)))
}

// DedupePoints keeps the first occurrence of every PointKey, preserving order.
// The input is not modified.
func DedupePoints(in []TrackPoint) []TrackPoint {
	seen := make(map[PointKey]struct{}, len(in))
	out := make([]TrackPoint, 0, len(in))
	for _, p := range in {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

// DedupeWaypoints keeps the first occurrence of every WaypointKey, preserving
// order. The input is not modified.
func DedupeWaypoints(in []Waypoint) []Waypoint {
	seen := make(map[WaypointKey]struct{}, len(in))
	out := make([]Waypoint, 0, len(in))
	for _, w := range in {
		k := w.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, w)
	}
	return out
}
