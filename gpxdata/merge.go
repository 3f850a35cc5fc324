package gpxdata

import (
	"fmt"
	"strings"
)

// EmptyName is the name of the result of merging nothing.
const EmptyName = "empty"

// Merge combines files into one. Nothing yields an empty "empty" value and a
// single file is returned as is. With two or more, every track point of every
// file is flattened into one track and deduplicated by PointKey, waypoints
// are deduplicated by WaypointKey, and the first occurrence always wins.
func Merge(files []*GPXData) *GPXData {
	switch len(files) {
	case 0:
		return &GPXData{Name: EmptyName, Tracks: []Track{}, Waypoints: []Waypoint{}}
	case 1:
		return files[0]
	}

	var (
		points    []TrackPoint
		waypoints []Waypoint
		names     = make([]string, 0, len(files))
	)
	for _, f := range files {
		for _, t := range f.Tracks {
			points = append(points, t.Points...)
		}
		waypoints = append(waypoints, f.Waypoints...)
		names = append(names, f.Name)
	}

	out := &GPXData{
		Name:      fmt.Sprintf("merged_%d_files", len(files)),
		Tracks:    []Track{},
		Waypoints: DedupeWaypoints(waypoints),
		Metadata: &Metadata{
			Name: ptr("Merged: " + strings.Join(names, " + ")),
			Desc: ptr(fmt.Sprintf("Merged GPX file from %d files", len(files))),
			Time: ptr(timestamp()),
		},
	}
	if uniq := DedupePoints(points); len(uniq) > 0 {
		out.Tracks = append(out.Tracks, Track{Points: uniq})
	}
	return out
}
