package gpxdata

import (
	"errors"
	"strings"
	"testing"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <metadata>
    <name>Morning ride</name>
    <desc>Around the lake</desc>
    <author><name>Anna</name></author>
    <time>2024-05-01T06:00:00Z</time>
  </metadata>
  <wpt lat="50.05" lon="14.05"><ele>300</ele><name>Spring</name></wpt>
  <trk>
    <name>Day</name>
    <trkseg>
      <trkpt lat="50.0" lon="14.0"><ele>250.5</ele><time>2024-05-01T06:00:00Z</time></trkpt>
      <trkpt lat="50.1" lon="14.0"><ele>260</ele></trkpt>
    </trkseg>
    <trkseg></trkseg>
    <trkseg>
      <trkpt lat="50.2" lon="14.1"/>
    </trkseg>
  </trk>
</gpx>`

func TestParseSample(t *testing.T) {
	d, err := Parse(sampleGPX, "ride.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Name != "Morning ride" {
		t.Fatalf("name = %q", d.Name)
	}
	if d.Metadata == nil || *d.Metadata.Desc != "Around the lake" || *d.Metadata.Author != "Anna" || *d.Metadata.Time != "2024-05-01T06:00:00Z" {
		t.Fatalf("unexpected metadata %+v", d.Metadata)
	}
	if len(d.Tracks) != 2 {
		t.Fatalf("expected 2 tracks (empty segment dropped), got %d", len(d.Tracks))
	}
	first := d.Tracks[0].Points
	if len(first) != 2 {
		t.Fatalf("expected 2 points, got %d", len(first))
	}
	if first[0].Lat != 50.0 || first[0].Lon != 14.0 || *first[0].Ele != 250.5 || *first[0].Time != "2024-05-01T06:00:00Z" {
		t.Fatalf("unexpected first point %+v", first[0])
	}
	if first[1].Time != nil {
		t.Fatalf("second point should have no time")
	}
	if p := d.Tracks[1].Points[0]; p.Ele != nil || p.Time != nil {
		t.Fatalf("bare point should have no ele/time: %+v", p)
	}
	if len(d.Waypoints) != 1 || *d.Waypoints[0].Name != "Spring" || *d.Waypoints[0].Ele != 300 {
		t.Fatalf("unexpected waypoints %+v", d.Waypoints)
	}
}

func TestParseFallbackName(t *testing.T) {
	cases := []struct {
		doc, fallback, want string
	}{
		{`<gpx><wpt lat="1" lon="2"/></gpx>`, "track.gpx", "track"},
		{`<gpx><wpt lat="1" lon="2"/></gpx>`, "TRACK.GPX", "TRACK"},
		{`<gpx><wpt lat="1" lon="2"/></gpx>`, "notes.txt", "notes.txt"},
		{`<gpx><metadata><name></name></metadata></gpx>`, "a.gpx", "a"},
		{`<gpx><metadata><desc>x</desc></metadata></gpx>`, "b.Gpx", "b"},
	}
	for _, c := range cases {
		d, err := Parse(c.doc, c.fallback)
		if err != nil {
			t.Fatalf("parse %q: %v", c.doc, err)
		}
		if d.Name != c.want {
			t.Errorf("Parse(%q, %q).Name = %q, want %q", c.doc, c.fallback, d.Name, c.want)
		}
	}
}

func TestParseMetadataAbsentFields(t *testing.T) {
	d, err := Parse(`<gpx><metadata><name>n</name></metadata></gpx>`, "x.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Metadata.Desc != nil || d.Metadata.Time != nil || d.Metadata.Author != nil {
		t.Fatalf("absent fields must stay nil: %+v", d.Metadata)
	}

	d, err = Parse(`<gpx/>`, "x.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Metadata != nil {
		t.Fatalf("no metadata element should give nil metadata")
	}
	if !d.Empty() {
		t.Fatalf("expected empty result")
	}
}

func TestParseLenientNumbers(t *testing.T) {
	doc := `<gpx>
  <trk><trkseg>
    <trkpt lat="abc" lon="14.5"><ele>n/a</ele></trkpt>
    <trkpt lon=" 7.25deg"><ele> 412.5m </ele></trkpt>
    <trkpt lat="1e3" lon="-.5"><ele>1e999</ele></trkpt>
  </trkseg></trk>
</gpx>`
	d, err := Parse(doc, "n.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pts := d.Tracks[0].Points
	if pts[0].Lat != 0 || pts[0].Lon != 14.5 || pts[0].Ele != nil {
		t.Errorf("point 0: %+v", pts[0])
	}
	if pts[1].Lat != 0 || pts[1].Lon != 7.25 || pts[1].Ele == nil || *pts[1].Ele != 412.5 {
		t.Errorf("point 1: %+v", pts[1])
	}
	if pts[2].Lat != 1000 || pts[2].Lon != -0.5 || pts[2].Ele != nil {
		t.Errorf("point 2: %+v", pts[2])
	}
}

func TestParseNamespaces(t *testing.T) {
	docs := map[string]string{
		"default": `<gpx xmlns="http://www.topografix.com/GPX/1/1"><wpt lat="1.5" lon="2.5"><name>A</name></wpt></gpx>`,
		"prefixed": `<g:gpx xmlns:g="http://www.topografix.com/GPX/1/1">
  <g:wpt lat="1.5" lon="2.5"><g:name>A</g:name></g:wpt>
  <g:trk><g:trkseg><g:trkpt lat="1" lon="2"><g:ele>5</g:ele></g:trkpt></g:trkseg></g:trk>
</g:gpx>`,
		"gpx10": `<gpx version="1.0" xmlns="http://www.topografix.com/GPX/1/0"><wpt lat="1.5" lon="2.5"><name>A</name></wpt></gpx>`,
	}
	for label, doc := range docs {
		d, err := Parse(doc, "ns.gpx")
		if err != nil {
			t.Fatalf("%s: parse: %v", label, err)
		}
		if len(d.Waypoints) != 1 {
			t.Fatalf("%s: expected 1 waypoint, got %d", label, len(d.Waypoints))
		}
		w := d.Waypoints[0]
		if w.Lat != 1.5 || w.Lon != 2.5 || w.Name == nil || *w.Name != "A" {
			t.Fatalf("%s: unexpected waypoint %+v", label, w)
		}
	}

	d, _ := Parse(docs["prefixed"], "ns.gpx")
	if len(d.Tracks) != 1 || *d.Tracks[0].Points[0].Ele != 5 {
		t.Fatalf("prefixed track not parsed: %+v", d.Tracks)
	}
}

func TestParseLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<gpx><wpt lat=\"1\" lon=\"2\"><name>K\xf6ln</name></wpt></gpx>"
	d, err := Parse(doc, "koeln.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := *d.Waypoints[0].Name; got != "Köln" {
		t.Fatalf("name = %q, want Köln", got)
	}
}

func TestParseMalformed(t *testing.T) {
	docs := []string{
		"",
		"   ",
		"not xml at all",
		"<gpx><trk></gpx>",
		"<gpx><wpt lat=\"1\" lon=\"2\">",
		"<gpx></gpx><gpx></gpx>",
		"<gpx></gpx>trailing",
		"<gpx><wpt lat=1 lon=2/></gpx>",
	}
	for _, doc := range docs {
		_, err := Parse(doc, "bad.gpx")
		if err == nil {
			t.Errorf("Parse(%q) should fail", doc)
			continue
		}
		if !errors.Is(err, ErrMalformedXML) {
			t.Errorf("Parse(%q) error %v should match ErrMalformedXML", doc, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error should be *ParseError, got %T", doc, err)
		}
	}
}

func TestParseKeepsPointOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<gpx><trk><trkseg>")
	for i := 0; i < 50; i++ {
		sb.WriteString(`<trkpt lat="` + formatFloat(float64(i)/10) + `" lon="0"/>`)
	}
	sb.WriteString("</trkseg></trk></gpx>")

	d, err := Parse(sb.String(), "order.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for i, p := range d.Tracks[0].Points {
		if p.Lat != float64(i)/10 {
			t.Fatalf("point %d out of order: %v", i, p.Lat)
		}
	}
}

func TestSummary(t *testing.T) {
	d, err := Parse(sampleGPX, "ride.gpx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := d.Summary()
	if s.Tracks != 2 || s.Waypoints != 1 || s.Points != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}
	// only the first track has two points; the hop between tracks is ignored
	if s.DistanceKm < 10 || s.DistanceKm > 12 {
		t.Fatalf("distance = %v", s.DistanceKm)
	}
}
