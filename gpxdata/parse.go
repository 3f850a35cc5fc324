package gpxdata

import (
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Parse reads a GPX document. fallbackName names the result when the file has
// no metadata name; a trailing ".gpx" is removed from it.
//
// Only well-formedness is checked. Bad coordinates become 0 and a bad
// elevation is treated as missing.
func Parse(xmlText, fallbackName string) (*GPXData, error) {
	return ParseReader(strings.NewReader(xmlText), fallbackName)
}

// ParseReader is Parse for an io.Reader.
func ParseReader(r io.Reader, fallbackName string) (*GPXData, error) {
	doc, err := readTree(r)
	if err != nil {
		return nil, err
	}

	d := &GPXData{}

	if metas := doc.descendants("metadata"); len(metas) > 0 {
		d.Metadata = parseMetadata(metas[0])
	}

	for _, trk := range doc.descendants("trk") {
		for _, seg := range trk.descendants("trkseg") {
			pts := seg.descendants("trkpt")
			if len(pts) == 0 {
				continue
			}
			t := Track{Points: make([]TrackPoint, 0, len(pts))}
			for _, el := range pts {
				t.Points = append(t.Points, parseTrackPoint(el))
			}
			d.Tracks = append(d.Tracks, t)
		}
	}

	for _, el := range doc.descendants("wpt") {
		d.Waypoints = append(d.Waypoints, parseWaypoint(el))
	}

	d.Name = trimGPXSuffix(fallbackName)
	if d.Metadata != nil && d.Metadata.Name != nil && *d.Metadata.Name != "" {
		d.Name = *d.Metadata.Name
	}
	return d, nil
}

func parseMetadata(el *element) *Metadata {
	m := &Metadata{}
	if s, ok := el.childText("name"); ok {
		m.Name = ptr(s)
	}
	if s, ok := el.childText("desc"); ok {
		m.Desc = ptr(s)
	}
	if author := el.child("author"); author != nil {
		if s, ok := author.childText("name"); ok {
			m.Author = ptr(s)
		}
	}
	if s, ok := el.childText("time"); ok {
		m.Time = ptr(s)
	}
	return m
}

func parseTrackPoint(el *element) TrackPoint {
	p := TrackPoint{Lat: coordAttr(el, "lat"), Lon: coordAttr(el, "lon")}
	p.Ele = elevation(el)
	if s, ok := el.childText("time"); ok {
		p.Time = ptr(s)
	}
	return p
}

func parseWaypoint(el *element) Waypoint {
	w := Waypoint{Lat: coordAttr(el, "lat"), Lon: coordAttr(el, "lon")}
	w.Ele = elevation(el)
	if s, ok := el.childText("name"); ok {
		w.Name = ptr(s)
	}
	return w
}

func coordAttr(el *element, name string) float64 {
	s, ok := el.attr(name)
	if !ok {
		return 0
	}
	v, _ := parseNumber(s)
	return v
}

func elevation(el *element) *float64 {
	s, ok := el.childText("ele")
	if !ok {
		return nil
	}
	v, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &v
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseNumber accepts the longest decimal prefix after leading whitespace, so
// "412.5m" reads as 412.5. Non-finite values are rejected.
func parseNumber(s string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func trimGPXSuffix(name string) string {
	if hasGPXSuffix(name) {
		return name[:len(name)-len(".gpx")]
	}
	return name
}

func hasGPXSuffix(name string) bool {
	n := len(".gpx")
	return len(name) >= n && strings.EqualFold(name[len(name)-n:], ".gpx")
}
