package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/s0ultr4d3r/gpxmerge/config"
	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
	"github.com/s0ultr4d3r/gpxmerge/profile"
	"github.com/s0ultr4d3r/gpxmerge/tiles"
)

type multiIn []string

func (m *multiIn) String() string     { return strings.Join(*m, ",") }
func (m *multiIn) Set(s string) error { *m = append(*m, s); return nil }

// значения по умолчанию приходят из GPXMERGE_* (см. config)
var cfg = config.Load()

var (
	inMany        multiIn
	outGPX        = flag.String("out", "", "куда сохранить объединённый GPX (по умолчанию <имя>.gpx в GPXMERGE_OUT_DIR)")
	doMerge       = flag.Bool("merge", cfg.Merge, "объединить все файлы и сохранить GPX")
	profileOut    = flag.String("profile", "", "профиль высот: .png или .gif (анимация)")
	mapOut        = flag.String("map", "", "карта маршрута: .png или .gif (анимация)")
	tilesName     = flag.String("tiles", cfg.TilePreset, "подложка карты: osm, opentopomap, esri-satellite, stamen-terrain-bg или шаблон {z}/{x}/{y}")
	width         = flag.Int("width", cfg.ChartWidth, "ширина графика")
	height        = flag.Int("height", cfg.ChartHeight, "высота графика")
	size          = flag.Int("size", cfg.MapSize, "размер карты (квадрат)")
	margin        = flag.Float64("margin", cfg.MapMargin, "поля от краёв bbox (0..0.25)")
	bgHex         = flag.String("bg", cfg.Background, "цвет фона (hex)")
	lineColorsStr = flag.String("lineColors", cfg.LineColors, "цвета файлов через запятую (hex)")
	frames        = flag.Int("frames", cfg.GIFFrames, "кадров в анимации")
	quiet         = flag.Bool("quiet", false, "без прогресс-баров")
	pprofAddr     = flag.String("pprof", cfg.PprofAddr, "включить pprof на адресе (например 127.0.0.1:6060), пусто = выключено")
	timeout       = flag.Duration("timeout", cfg.Timeout, "жёсткий таймаут всего процесса")
)

type options struct {
	inputs     []string
	outGPX     string
	merge      bool
	profileOut string
	mapOut     string
	tiles      string
	width      int
	height     int
	size       int
	margin     float64
	bg         string
	lineColors string
	frames     int
	showBars   bool
	stdout     io.Writer
}

func main() {
	flag.Var(&inMany, "in", "путь к GPX (можно указывать много раз)")
	flag.Parse()

	if *pprofAddr != "" {
		enablePPROF(*pprofAddr)
	}

	inputs := append([]string(inMany), flag.Args()...)
	if len(inputs) == 0 {
		flag.Usage()
		log.Fatalf("❌ Ошибка: не указан ни один GPX (-in)")
	}

	ctx, cancel := withTimeout(context.Background(), *timeout)
	defer cancel()

	opts := options{
		inputs:     inputs,
		outGPX:     *outGPX,
		merge:      *doMerge || *outGPX != "",
		profileOut: *profileOut,
		mapOut:     *mapOut,
		tiles:      *tilesName,
		width:      *width,
		height:     *height,
		size:       *size,
		margin:     *margin,
		bg:         *bgHex,
		lineColors: *lineColorsStr,
		frames:     *frames,
		showBars:   !*quiet,
		stdout:     os.Stdout,
	}
	if err := run(ctx, opts); err != nil {
		log.Fatalf("❌ Ошибка: %v", err)
	}
	log.Printf("✅ Готово")
}

func run(ctx context.Context, o options) error {
	if o.stdout == nil {
		o.stdout = io.Discard
	}
	bg, err := ParseHexColor(o.bg)
	if err != nil {
		return fmt.Errorf("bg color: %w", err)
	}
	fileColors, err := ParseHexColors(o.lineColors)
	if err != nil {
		return fmt.Errorf("lineColors: %w", err)
	}
	if len(fileColors) == 0 {
		return errors.New("lineColors пуст — укажите хотя бы один цвет")
	}

	bars := NewBars(len(o.inputs), o.showBars)
	defer bars.Done()

	files, err := loadFiles(ctx, o.inputs, bars.IncFile)
	if err != nil {
		return err
	}
	if err := printSummaries(o.stdout, files); err != nil {
		return err
	}

	if o.merge {
		if err := exportMerged(files, o.outGPX, o.inputs); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	prof := profile.Build(files)
	if err := printStats(o.stdout, prof); err != nil {
		return err
	}

	if o.profileOut != "" {
		if o.width < 160 || o.height < 100 {
			return fmt.Errorf("слишком маленький график: %dx%d", o.width, o.height)
		}
		st := defaultChartStyle(bg, fileColors)
		render := func(frac float64) image.Image {
			upto := len(prof.Samples)
			if frac < 1 {
				upto = int(frac * float64(upto))
			}
			return renderProfile(prof, o.width, o.height, st, upto)
		}
		if err := writeImage(ctx, o.profileOut, o.frames, render, bars); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		log.Printf("📈 профиль: %s", o.profileOut)
	}

	if o.mapOut != "" {
		rm, err := newRouteMap(files, o.size, o.margin, bg, fileColors)
		if err != nil {
			return fmt.Errorf("map: %w", err)
		}
		if o.tiles != "" {
			if err := addTiles(ctx, rm, o.tiles); err != nil {
				// без подложки карта всё равно полезна
				log.Printf("⚠️ тайлы: %v — рисую без подложки", err)
			}
		}
		render := func(frac float64) image.Image { return rm.render(frac) }
		if err := writeImage(ctx, o.mapOut, o.frames, render, bars); err != nil {
			return fmt.Errorf("map: %w", err)
		}
		log.Printf("🗺️ карта: %s", o.mapOut)
	}
	return nil
}

// exportMerged объединяет файлы и пишет результат атомарно.
// Входные файлы никогда не перезаписываются.
func exportMerged(files []*gpxdata.GPXData, out string, inputs []string) error {
	merged := gpxdata.Merge(files)
	if out == "" {
		name := safeFileName(merged.Name, fmt.Sprintf("merged_%d_files", len(files)))
		out = filepath.Join(cfg.OutDir, name+".gpx")
	}
	if in, ok := sameAsInput(out, inputs); ok {
		return fmt.Errorf("%s: %w (%s)", out, errOverwriteInput, in)
	}
	if err := writeFileAtomic(out, func(w io.Writer) error { return gpxdata.Write(w, merged) }); err != nil {
		return err
	}
	log.Printf("💾 %s: %d точек, %d путевых точек", out, merged.PointCount(), len(merged.Waypoints))
	return nil
}

func addTiles(ctx context.Context, rm *routeMap, name string) error {
	p, err := tiles.Lookup(name)
	if err != nil {
		return err
	}
	f, err := tiles.NewFetcher(cfg.TileCacheDir, cfg.TileRPS, cfg.TileBurst, 30*time.Second)
	if err != nil {
		return err
	}
	if err := rm.withTiles(ctx, f, p); err != nil {
		return err
	}
	log.Printf("🧱 подложка: %s (%s)", p.Name, p.Attribution)
	return nil
}

// writeImage: .png — один кадр целиком, .gif — анимация появления
func writeImage(ctx context.Context, path string, n int, render func(frac float64) image.Image, bars *Bars) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img := render(1)
		return writeFileAtomic(path, func(w io.Writer) error { return png.Encode(w, img) })
	case ".gif":
		bars.FramesTotal(n)
		frames, delays, err := buildReveal(ctx, n, render, bars.SetFrame)
		if err != nil {
			return err
		}
		return writeFileAtomic(path, func(w io.Writer) error { return writeGIFAll(w, frames, delays) })
	default:
		return fmt.Errorf("неизвестный формат %q (нужен .png или .gif)", path)
	}
}
