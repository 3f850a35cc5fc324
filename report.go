package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
	"github.com/s0ultr4d3r/gpxmerge/profile"
)

// printSummaries — по строке на файл: треки, точки, путевые точки, км
func printSummaries(w io.Writer, files []*gpxdata.GPXData) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tname\ttracks\tpoints\twaypoints\tkm")
	for i, f := range files {
		s := f.Summary()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.2f\n", i+1, f.Name, s.Tracks, s.Points, s.Waypoints, s.DistanceKm)
	}
	return tw.Flush()
}

func printStats(w io.Writer, p profile.Profile) error {
	if p.Empty() {
		_, err := fmt.Fprintln(w, "профиль высот: нет данных о высоте")
		return err
	}
	s := p.Stats
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "points\t%d\n", s.Points)
	fmt.Fprintf(tw, "distance\t%.2f km\n", s.TotalDistanceKm)
	fmt.Fprintf(tw, "elevation\t%.0f..%.0f m (avg %.0f)\n", s.MinElevationM, s.MaxElevationM, s.MeanElevationM)
	fmt.Fprintf(tw, "gain / loss\t+%.0f / -%.0f m\n", s.GainM, s.LossM)
	if len(p.Markers) > 0 {
		fmt.Fprintf(tw, "markers\t%d\n", len(p.Markers))
	}
	return tw.Flush()
}
