package profile

import (
	"math"
	"testing"

	"github.com/s0ultr4d3r/gpxmerge/geo"
	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func track(pts ...gpxdata.TrackPoint) gpxdata.Track { return gpxdata.Track{Points: pts} }

func TestBuildWaypointOnlyFallback(t *testing.T) {
	d := &gpxdata.GPXData{
		Name:      "poi",
		Tracks:    []gpxdata.Track{track(gpxdata.TrackPoint{Lat: 1, Lon: 1})},
		Waypoints: []gpxdata.Waypoint{{Lat: 5, Lon: 5, Name: s("Hut")}},
	}
	p := Build([]*gpxdata.GPXData{d})
	if len(p.Samples) != 1 {
		t.Fatalf("expected one sample, got %d", len(p.Samples))
	}
	if p.Samples[0].DistanceKm != 0 || p.Samples[0].ElevationM != 0 {
		t.Fatalf("unexpected sample %+v", p.Samples[0])
	}
	if len(p.Markers) != 1 || p.Markers[0].Name != "Hut" {
		t.Fatalf("unexpected markers %+v", p.Markers)
	}
}

func TestBuildSyntheticSpread(t *testing.T) {
	a := &gpxdata.GPXData{Waypoints: []gpxdata.Waypoint{{Lat: 1, Lon: 1, Ele: f(100)}, {Lat: 2, Lon: 2}}}
	b := &gpxdata.GPXData{Waypoints: []gpxdata.Waypoint{{Lat: 1, Lon: 1, Ele: f(999)}, {Lat: 3, Lon: 3, Ele: f(300)}}}
	p := Build([]*gpxdata.GPXData{a, b})
	if len(p.Markers) != 3 {
		t.Fatalf("expected 3 distinct markers, got %d", len(p.Markers))
	}
	want := []Marker{
		{DistanceKm: 0, ElevationM: 100, FileIndex: 0},
		{DistanceKm: 1, ElevationM: 0, FileIndex: 0},
		{DistanceKm: 2, ElevationM: 300, FileIndex: 1},
	}
	for i, m := range p.Markers {
		if m != want[i] {
			t.Errorf("marker %d = %+v, want %+v", i, m, want[i])
		}
	}
	if len(p.Samples) != 3 || p.Samples[2].DistanceKm != 2 {
		t.Fatalf("samples should mirror markers: %+v", p.Samples)
	}
}

func TestBuildDistanceAcrossTracksAndFiles(t *testing.T) {
	a := &gpxdata.GPXData{Tracks: []gpxdata.Track{
		track(gpxdata.TrackPoint{Lat: 50.0, Lon: 14.0, Ele: f(200)}, gpxdata.TrackPoint{Lat: 50.05, Lon: 14.0}),
		track(gpxdata.TrackPoint{Lat: 50.1, Lon: 14.0, Ele: f(250)}),
	}}
	b := &gpxdata.GPXData{Tracks: []gpxdata.Track{
		// overlaps with a: must not be counted twice
		track(gpxdata.TrackPoint{Lat: 50.1, Lon: 14.0, Ele: f(250)}, gpxdata.TrackPoint{Lat: 50.2, Lon: 14.0, Ele: f(230)}),
	}}
	p := Build([]*gpxdata.GPXData{a, b})
	if len(p.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %+v", p.Samples)
	}
	d1 := geo.Haversine(50.0, 14.0, 50.1, 14.0)
	d2 := d1 + geo.Haversine(50.1, 14.0, 50.2, 14.0)
	if p.Samples[0].DistanceKm != 0 || math.Abs(p.Samples[1].DistanceKm-d1) > 1e-9 || math.Abs(p.Samples[2].DistanceKm-d2) > 1e-9 {
		t.Fatalf("unexpected distances %+v", p.Samples)
	}
	if p.Samples[1].FileIndex != 0 || p.Samples[2].FileIndex != 1 {
		t.Fatalf("unexpected file indexes %+v", p.Samples)
	}
	st := p.Stats
	if st.GainM != 50 || st.LossM != 20 || st.MinElevationM != 200 || st.MaxElevationM != 250 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if math.Abs(st.TotalDistanceKm-d2) > 1e-9 {
		t.Fatalf("total distance = %v, want %v", st.TotalDistanceKm, d2)
	}
	if math.Abs(st.MeanElevationM-680.0/3) > 1e-9 {
		t.Fatalf("mean = %v", st.MeanElevationM)
	}
	// 15% of 50 m = 7.5 m
	if p.YRange != [2]float64{192, 258} {
		t.Fatalf("y range = %v", p.YRange)
	}
}

func TestBuildWaypointAnchoring(t *testing.T) {
	d := &gpxdata.GPXData{
		Tracks: []gpxdata.Track{track(
			gpxdata.TrackPoint{Lat: 0, Lon: 0, Ele: f(10)},
			gpxdata.TrackPoint{Lat: 0, Lon: 0.01, Ele: f(20)},
			gpxdata.TrackPoint{Lat: 0, Lon: 0.02, Ele: f(30)},
		)},
		Waypoints: []gpxdata.Waypoint{
			{Lat: 0.001, Lon: 0.0099, Name: s("near middle")},
			{Lat: 0.001, Lon: 0.021, Ele: f(99), Name: s("near end")},
			// equidistant from first and second point, first wins
			{Lat: 0, Lon: 0.005, Name: s("tie")},
		},
	}
	p := Build([]*gpxdata.GPXData{d})
	mid := geo.Haversine(0, 0, 0, 0.01)
	end := mid + geo.Haversine(0, 0.01, 0, 0.02)

	m := p.Markers
	if len(m) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(m))
	}
	if m[0].DistanceKm != mid || m[0].ElevationM != 20 {
		t.Errorf("middle marker %+v", m[0])
	}
	if m[1].DistanceKm != end || m[1].ElevationM != 99 {
		t.Errorf("end marker %+v", m[1])
	}
	if m[2].DistanceKm != 0 || m[2].ElevationM != 10 {
		t.Errorf("tie marker %+v", m[2])
	}
}

func TestBuildEmpty(t *testing.T) {
	p := Build(nil)
	if !p.Empty() || len(p.Markers) != 0 || p.Stats != (Stats{}) {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestBuildStatsUseFullSeries(t *testing.T) {
	var pts []gpxdata.TrackPoint
	for i := 0; i < 1201; i++ {
		ele := 100.0
		if i == 1 {
			ele = 500 // dropped by downsampling, still counted
		}
		pts = append(pts, gpxdata.TrackPoint{Lat: float64(i) * 0.001, Lon: 0, Ele: f(ele)})
	}
	p := Build([]*gpxdata.GPXData{{Tracks: []gpxdata.Track{{Points: pts}}}})

	if len(p.Samples) != 401 {
		t.Fatalf("expected 401 samples after downsampling, got %d", len(p.Samples))
	}
	if p.Stats.Points != 1201 {
		t.Fatalf("stats points = %d", p.Stats.Points)
	}
	if p.Stats.MaxElevationM != 500 || p.Stats.GainM != 400 || p.Stats.LossM != 400 {
		t.Fatalf("stats must come from the full series: %+v", p.Stats)
	}
}

func TestDownsample(t *testing.T) {
	mk := func(n int) []Sample {
		out := make([]Sample, n)
		for i := range out {
			out[i].DistanceKm = float64(i)
		}
		return out
	}
	cases := []struct {
		n, limit, want, step int
	}{
		{10, 500, 10, 1},
		{500, 500, 500, 1},
		{501, 500, 251, 2},
		{1000, 500, 500, 2},
		{1001, 500, 334, 3},
	}
	for _, c := range cases {
		got := Downsample(mk(c.n), c.limit)
		if len(got) != c.want {
			t.Errorf("Downsample(%d, %d) kept %d, want %d", c.n, c.limit, len(got), c.want)
			continue
		}
		for i, smp := range got {
			if smp.DistanceKm != float64(i*c.step) {
				t.Errorf("Downsample(%d): sample %d has index %v, want %d", c.n, i, smp.DistanceKm, i*c.step)
				break
			}
		}
	}
}

func TestYRange(t *testing.T) {
	cases := []struct {
		lo, hi float64
		want   [2]float64
	}{
		{100, 100, [2]float64{50, 150}},
		{0, 100, [2]float64{-15, 115}},
		{212.3, 287.9, [2]float64{200, 300}},
	}
	for _, c := range cases {
		if got := YRange(c.lo, c.hi); got != c.want {
			t.Errorf("YRange(%v, %v) = %v, want %v", c.lo, c.hi, got, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize([]Sample{{0, 10, 0}, {1, 30, 0}, {2, 25, 0}, {3, 25, 0}, {4, 40, 0}})
	if st.GainM != 35 || st.LossM != 5 || st.MinElevationM != 10 || st.MaxElevationM != 40 || st.TotalDistanceKm != 4 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if Summarize(nil) != (Stats{}) {
		t.Fatalf("empty summarize should be zero")
	}
}
