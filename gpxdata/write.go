package gpxdata

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	gpxNamespace = "http://www.topografix.com/GPX/1/1"
	gpxCreator   = "gpxmerge"
)

type gpxDoc struct {
	XMLName   xml.Name `xml:"gpx"`
	Version   string   `xml:"version,attr"`
	Creator   string   `xml:"creator,attr"`
	XMLNS     string   `xml:"xmlns,attr"`
	Metadata  metaDoc  `xml:"metadata"`
	Waypoints []wptDoc `xml:"wpt"`
	Tracks    []trkDoc `xml:"trk"`
}

type metaDoc struct {
	Name   string     `xml:"name"`
	Desc   string     `xml:"desc"`
	Author *authorDoc `xml:"author"`
	Time   string     `xml:"time"`
}

type authorDoc struct {
	Name string `xml:"name"`
}

type wptDoc struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele"`
	Name *string `xml:"name"`
}

type trkDoc struct {
	Name string    `xml:"name"`
	Seg  trksegDoc `xml:"trkseg"`
}

type trksegDoc struct {
	Points []trkptDoc `xml:"trkpt"`
}

type trkptDoc struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele"`
	Time *string `xml:"time"`
}

// Write encodes d as an indented GPX 1.1 document. Missing metadata fields
// get defaults: the data name, an empty description and the current time.
func Write(w io.Writer, d *GPXData) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(toDoc(d)); err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ToXML returns the document Write would produce.
func ToXML(d *GPXData) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func toDoc(d *GPXData) gpxDoc {
	doc := gpxDoc{
		Version: "1.1",
		Creator: gpxCreator,
		XMLNS:   gpxNamespace,
		Metadata: metaDoc{
			Name: d.Name,
			Time: timestamp(),
		},
	}
	if m := d.Metadata; m != nil {
		if m.Name != nil && *m.Name != "" {
			doc.Metadata.Name = *m.Name
		}
		if m.Desc != nil {
			doc.Metadata.Desc = *m.Desc
		}
		if m.Author != nil {
			doc.Metadata.Author = &authorDoc{Name: *m.Author}
		}
		if m.Time != nil {
			doc.Metadata.Time = *m.Time
		}
	}

	doc.Waypoints = make([]wptDoc, 0, len(d.Waypoints))
	for _, w := range d.Waypoints {
		doc.Waypoints = append(doc.Waypoints, wptDoc{
			Lat:  formatFloat(w.Lat),
			Lon:  formatFloat(w.Lon),
			Ele:  formatOptional(w.Ele),
			Name: w.Name,
		})
	}

	doc.Tracks = make([]trkDoc, 0, len(d.Tracks))
	for i, t := range d.Tracks {
		trk := trkDoc{Name: fmt.Sprintf("Track %d", i+1)}
		trk.Seg.Points = make([]trkptDoc, 0, len(t.Points))
		for _, p := range t.Points {
			trk.Seg.Points = append(trk.Seg.Points, trkptDoc{
				Lat:  formatFloat(p.Lat),
				Lon:  formatFloat(p.Lon),
				Ele:  formatOptional(p.Ele),
				Time: p.Time,
			})
		}
		doc.Tracks = append(doc.Tracks, trk)
	}
	return doc
}

// formatFloat uses the shortest representation that parses back to v.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatOptional(v *float64) *string {
	if v == nil {
		return nil
	}
	s := formatFloat(*v)
	return &s
}
