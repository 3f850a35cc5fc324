package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
)

// loadFile открывает один путь и прогоняет его через gpxdata.Ingest
func loadFile(path string) (*gpxdata.GPXData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gpxdata.Ingest(f, filepath.Base(path))
}

// loadFiles читает все входы по порядку. Битые файлы пишутся в лог и
// пропускаются; ошибка — только если не осталось ни одного.
func loadFiles(ctx context.Context, paths []string, onFile func()) ([]*gpxdata.GPXData, error) {
	var files []*gpxdata.GPXData
	skipped := 0
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		d, err := loadFile(p)
		if onFile != nil {
			onFile()
		}
		if err != nil {
			skipped++
			log.Printf("⚠️ пропускаю %s: %s", p, describeIngestError(err))
			continue
		}
		files = append(files, d)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("нет пригодных GPX (пропущено %d)", skipped)
	}
	return files, nil
}

func describeIngestError(err error) string {
	switch {
	case errors.Is(err, gpxdata.ErrInvalidExtension):
		return "не .gpx файл"
	case errors.Is(err, gpxdata.ErrMalformedXML):
		return fmt.Sprintf("битый XML (%v)", err)
	case errors.Is(err, gpxdata.ErrEmptyResult):
		return "нет ни треков, ни путевых точек"
	default:
		return err.Error()
	}
}
