// Package profile turns GPX data into an elevation-over-distance series with
// waypoint markers and summary statistics.
package profile

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/s0ultr4d3r/gpxmerge/geo"
	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
)

// MaxSamples bounds Profile.Samples.
const MaxSamples = 500

// Sample is one chart point.
type Sample struct {
	DistanceKm float64
	ElevationM float64
	FileIndex  int
}

// Marker is a waypoint placed on the distance axis.
type Marker struct {
	DistanceKm float64
	ElevationM float64
	Name       string
	FileIndex  int
}

// Stats summarises the full (not downsampled) sample series.
type Stats struct {
	Points          int
	TotalDistanceKm float64
	MinElevationM   float64
	MaxElevationM   float64
	MeanElevationM  float64
	GainM           float64
	LossM           float64
}

// Profile is ready to be charted. Samples is downsampled to MaxSamples;
// Stats and YRange are computed before downsampling.
type Profile struct {
	Samples []Sample
	Markers []Marker
	Stats   Stats
	YRange  [2]float64
}

// Empty reports whether there is nothing to draw.
func (p Profile) Empty() bool { return len(p.Samples) == 0 }

type anchor struct {
	lat, lon float64
	sample   Sample
}

// Build walks files, then tracks, then points. Points without elevation are
// skipped and the remaining ones are deduplicated across files by
// gpxdata.PointKey, so an overlap between two uploads is counted once.
// Distance keeps accumulating across track and file boundaries.
func Build(files []*gpxdata.GPXData) Profile {
	var (
		samples []Sample
		anchors []anchor
		seen    = map[gpxdata.PointKey]struct{}{}
		prev    *gpxdata.TrackPoint
		dist    float64
	)
	for fi, f := range files {
		for _, t := range f.Tracks {
			for i := range t.Points {
				p := &t.Points[i]
				if p.Ele == nil {
					continue
				}
				k := p.Key()
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				if prev != nil {
					dist += geo.Haversine(prev.Lat, prev.Lon, p.Lat, p.Lon)
				}
				prev = p
				s := Sample{DistanceKm: dist, ElevationM: *p.Ele, FileIndex: fi}
				samples = append(samples, s)
				anchors = append(anchors, anchor{lat: p.Lat, lon: p.Lon, sample: s})
			}
		}
	}

	markers := placeWaypoints(files, anchors)
	if len(samples) == 0 {
		for _, m := range markers {
			samples = append(samples, Sample{DistanceKm: m.DistanceKm, ElevationM: m.ElevationM, FileIndex: m.FileIndex})
		}
	}

	p := Profile{Markers: markers}
	if len(samples) == 0 {
		return p
	}
	p.Stats = Summarize(samples)
	p.YRange = YRange(p.Stats.MinElevationM, p.Stats.MaxElevationM)
	p.Samples = Downsample(samples, MaxSamples)
	return p
}

// placeWaypoints anchors each distinct waypoint at the nearest elevation
// point (planar metric, first wins on ties). Without any such point the
// waypoints are spread at x = 0, 1, 2, ...
func placeWaypoints(files []*gpxdata.GPXData, anchors []anchor) []Marker {
	type tagged struct {
		wp gpxdata.Waypoint
		fi int
	}
	var all []tagged
	seen := map[gpxdata.WaypointKey]struct{}{}
	for fi, f := range files {
		for _, w := range f.Waypoints {
			k := w.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			all = append(all, tagged{wp: w, fi: fi})
		}
	}

	markers := make([]Marker, 0, len(all))
	for i, t := range all {
		m := Marker{FileIndex: t.fi}
		if t.wp.Name != nil {
			m.Name = *t.wp.Name
		}
		if len(anchors) == 0 {
			m.DistanceKm = float64(i)
			if t.wp.Ele != nil {
				m.ElevationM = *t.wp.Ele
			}
			markers = append(markers, m)
			continue
		}
		best := nearest(anchors, t.wp.Lat, t.wp.Lon)
		m.DistanceKm = best.sample.DistanceKm
		m.ElevationM = best.sample.ElevationM
		if t.wp.Ele != nil {
			m.ElevationM = *t.wp.Ele
		}
		markers = append(markers, m)
	}
	return markers
}

func nearest(anchors []anchor, lat, lon float64) anchor {
	best := anchors[0]
	bestD := geo.PlanarDistance2(lat, lon, best.lat, best.lon)
	for _, a := range anchors[1:] {
		if d := geo.PlanarDistance2(lat, lon, a.lat, a.lon); d < bestD {
			best, bestD = a, d
		}
	}
	return best
}

// Summarize computes Stats over samples. Gain and loss sum every positive and
// negative step without any threshold.
func Summarize(samples []Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	elev := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		elev[i] = s.ElevationM
	}
	st := Stats{
		Points:          len(samples),
		TotalDistanceKm: samples[len(samples)-1].DistanceKm,
	}
	// the only error these return is for empty input
	st.MinElevationM, _ = elev.Min()
	st.MaxElevationM, _ = elev.Max()
	st.MeanElevationM, _ = elev.Mean()
	for i := 1; i < len(elev); i++ {
		d := elev[i] - elev[i-1]
		if d > 0 {
			st.GainM += d
		} else {
			st.LossM -= d
		}
	}
	return st
}

// YRange pads [lo, hi] by 15% of the span, or by 50 m for a flat series,
// and rounds outward to whole metres.
func YRange(lo, hi float64) [2]float64 {
	pad := (hi - lo) * 0.15
	if hi-lo == 0 {
		pad = 50
	}
	return [2]float64{math.Floor(lo - pad), math.Ceil(hi + pad)}
}

// Downsample keeps every ceil(n/limit)-th sample starting at index 0 when
// there are more than limit samples. The input is not modified.
func Downsample(samples []Sample, limit int) []Sample {
	if limit <= 0 || len(samples) <= limit {
		return samples
	}
	step := (len(samples) + limit - 1) / limit
	out := make([]Sample, 0, (len(samples)+step-1)/step)
	for i := 0; i < len(samples); i += step {
		out = append(out, samples[i])
	}
	return out
}
