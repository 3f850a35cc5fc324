package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/s0ultr4d3r/gpxmerge/geo"
	"github.com/s0ultr4d3r/gpxmerge/gpxdata"
	"github.com/s0ultr4d3r/gpxmerge/tiles"
)

// mapView — квадратное окно в нормализованной проекции Меркатора
type mapView struct {
	x0, y0 float64
	span   float64
	size   int
}

func newMapView(b geo.Bounds, size int, margin float64) mapView {
	x0, y0 := tiles.Project(b.MaxLat, b.MinLon)
	x1, y1 := tiles.Project(b.MinLat, b.MaxLon)
	span := math.Max(x1-x0, y1-y0)
	if span <= 0 {
		// одна точка: окно ~40 м на экваторе, у полюсов меньше
		span = 1e-6
	}
	span *= 1 + 2*margin
	cx, cy := (x0+x1)/2, (y0+y1)/2
	return mapView{x0: cx - span/2, y0: cy - span/2, span: span, size: size}
}

// bounds — географический прямоугольник окна, совпадающий с ним по пикселям
func (v mapView) bounds() geo.Bounds {
	maxLat, minLon := tiles.Unproject(v.x0, v.y0)
	minLat, maxLon := tiles.Unproject(v.x0+v.span, v.y0+v.span)
	return geo.Bounds{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
}

func (v mapView) pixel(lat, lon float64) (int, int) {
	x, y := tiles.Project(lat, lon)
	s := float64(v.size - 1)
	return int(math.Round((x - v.x0) / v.span * s)), int(math.Round((y - v.y0) / v.span * s))
}

// routeBounds — общий bbox всех треков и путевых точек
func routeBounds(files []*gpxdata.GPXData) geo.Bounds {
	b := geo.EmptyBounds()
	for _, f := range files {
		for _, p := range f.Points() {
			b.Extend(p.Lat, p.Lon)
		}
		for _, w := range f.Waypoints {
			b.Extend(w.Lat, w.Lon)
		}
	}
	return b
}

type routeMap struct {
	files  []*gpxdata.GPXData
	view   mapView
	base   image.Image
	bg     color.RGBA
	colors []color.RGBA
}

func newRouteMap(files []*gpxdata.GPXData, size int, margin float64, bg color.RGBA, colors []color.RGBA) (*routeMap, error) {
	if size < 64 || size > 4096 {
		return nil, fmt.Errorf("неподходящий размер карты: %d (должен быть 64..4096)", size)
	}
	if margin < 0 || margin >= 0.25 {
		return nil, fmt.Errorf("margin должен быть в диапазоне [0..0.25), сейчас: %.3f", margin)
	}
	if len(colors) == 0 {
		return nil, errors.New("lineColors пуст — укажите хотя бы один цвет")
	}
	b := routeBounds(files)
	if !b.Valid() {
		return nil, errors.New("нет точек для карты")
	}
	return &routeMap{files: files, view: newMapView(b, size, margin), bg: bg, colors: colors}, nil
}

// withTiles подкладывает тайловую подложку под маршрут
func (m *routeMap) withTiles(ctx context.Context, f *tiles.Fetcher, p tiles.Preset) error {
	img, err := tiles.Background(ctx, f, p, m.view.bounds(), m.view.size, m.view.size)
	if err != nil {
		return err
	}
	m.base = img
	return nil
}

// render рисует карту; frac в (0..1] — доля каждого трека для анимации
func (m *routeMap) render(frac float64) *image.RGBA {
	n := m.view.size
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	if m.base != nil {
		draw.Draw(img, img.Bounds(), m.base, m.base.Bounds().Min, draw.Src)
	} else {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: m.bg}, image.Point{}, draw.Src)
	}
	width := int(math.Max(2, math.Round(float64(n)/256)))

	for fi, f := range m.files {
		col := m.colors[fi%len(m.colors)]
		for _, trk := range f.Tracks {
			pts := trk.Points
			upto := int(math.Ceil(frac * float64(len(pts))))
			if upto > len(pts) {
				upto = len(pts)
			}
			for i := 1; i < upto; i++ {
				x0, y0 := m.view.pixel(pts[i-1].Lat, pts[i-1].Lon)
				x1, y1 := m.view.pixel(pts[i].Lat, pts[i].Lon)
				drawLineRGBA(img, x0, y0, x1, y1, width, col)
			}
			if upto > 0 {
				hx, hy := m.view.pixel(pts[upto-1].Lat, pts[upto-1].Lon)
				plotSquareRGBA(img, hx, hy, width+3, col)
			}
		}
	}
	if frac >= 1 {
		for _, f := range m.files {
			for _, w := range f.Waypoints {
				x, y := m.view.pixel(w.Lat, w.Lon)
				plotSquareRGBA(img, x, y, width+4, color.RGBA{0, 0, 0, 0xff})
				plotSquareRGBA(img, x, y, width+2, color.RGBA{0xff, 0xff, 0xff, 0xff})
				if w.Name != nil && *w.Name != "" {
					drawText(img, x+width+3, y+4, *w.Name, color.RGBA{0xff, 0xff, 0xff, 0xff})
				}
			}
		}
	}
	return img
}
