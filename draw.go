package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/s0ultr4d3r/gpxmerge/profile"
)

// оформление графика высот
type chartStyle struct {
	bg         color.RGBA
	axis       color.RGBA
	grid       color.RGBA
	text       color.RGBA
	marker     color.RGBA
	fileColors []color.RGBA
}

func defaultChartStyle(bg color.RGBA, fileColors []color.RGBA) chartStyle {
	return chartStyle{
		bg:         bg,
		axis:       color.RGBA{0xb0, 0xb8, 0xc0, 0xff},
		grid:       color.RGBA{0x40, 0x48, 0x50, 0xff},
		text:       color.RGBA{0xe0, 0xe4, 0xe8, 0xff},
		marker:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		fileColors: fileColors,
	}
}

func (s chartStyle) fileColor(i int) color.RGBA {
	if len(s.fileColors) == 0 {
		return s.marker
	}
	return s.fileColors[i%len(s.fileColors)]
}

const (
	padLeft   = 56
	padRight  = 16
	padTop    = 24
	padBottom = 28
	yTicks    = 5
)

// plot — прямоугольник графика и перевод (км, м) -> пиксели
type plot struct {
	rect     image.Rectangle
	maxKm    float64
	minEle   float64
	maxEle   float64
	baseline int
}

func newPlot(p profile.Profile, w, h int) plot {
	maxKm := 0.0
	for _, s := range p.Samples {
		maxKm = math.Max(maxKm, s.DistanceKm)
	}
	for _, m := range p.Markers {
		maxKm = math.Max(maxKm, m.DistanceKm)
	}
	if maxKm <= 0 {
		maxKm = 1
	}
	r := image.Rect(padLeft, padTop, w-padRight, h-padBottom)
	return plot{rect: r, maxKm: maxKm, minEle: p.YRange[0], maxEle: p.YRange[1], baseline: r.Max.Y - 1}
}

func (pl plot) x(km float64) int {
	return pl.rect.Min.X + int(math.Round(km/pl.maxKm*float64(pl.rect.Dx()-1)))
}

func (pl plot) y(ele float64) int {
	span := pl.maxEle - pl.minEle
	f := 0.5
	if span > 0 {
		f = (ele - pl.minEle) / span
	}
	yy := pl.rect.Min.Y + int(math.Round((1-f)*float64(pl.rect.Dy()-1)))
	return clampInt(yy, pl.rect.Min.Y, pl.rect.Max.Y-1)
}

// renderProfile рисует профиль высот. upto — сколько сэмплов показать
// (для анимации); upto >= len(Samples) рисует всё.
func renderProfile(p profile.Profile, w, h int, st chartStyle, upto int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: st.bg}, image.Point{}, draw.Src)
	if p.Empty() {
		drawText(img, w/2-textWidth("no elevation data")/2, h/2, "no elevation data", st.text)
		return img
	}
	pl := newPlot(p, w, h)
	drawAxes(img, pl, st)

	if upto > len(p.Samples) {
		upto = len(p.Samples)
	}
	samples := p.Samples[:upto]

	// заливка под линией, потом сама линия
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		fill := withAlpha(st.fileColor(b.FileIndex), 0x50)
		x0, x1 := pl.x(a.DistanceKm), pl.x(b.DistanceKm)
		y0, y1 := pl.y(a.ElevationM), pl.y(b.ElevationM)
		for x := x0; x <= x1; x++ {
			y := y0
			if x1 > x0 {
				y = y0 + (y1-y0)*(x-x0)/(x1-x0)
			}
			draw.Draw(img, image.Rect(x, y, x+1, pl.baseline+1), &image.Uniform{C: fill}, image.Point{}, draw.Over)
		}
	}
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		drawLineRGBA(img, pl.x(a.DistanceKm), pl.y(a.ElevationM), pl.x(b.DistanceKm), pl.y(b.ElevationM), 2, st.fileColor(b.FileIndex))
	}
	if len(samples) == 1 {
		s := samples[0]
		plotSquareRGBA(img, pl.x(s.DistanceKm), pl.y(s.ElevationM), 3, st.fileColor(s.FileIndex))
	}

	// полный кадр показывает все маркеры, даже за последним сэмплом
	reached := math.Inf(1)
	if upto < len(p.Samples) {
		reached = 0
		if len(samples) > 0 {
			reached = samples[len(samples)-1].DistanceKm
		}
	}
	for _, m := range p.Markers {
		if m.DistanceKm > reached {
			continue
		}
		x, y := pl.x(m.DistanceKm), pl.y(m.ElevationM)
		drawLineRGBA(img, x, y, x, pl.baseline, 1, st.grid)
		plotSquareRGBA(img, x, y, 5, st.marker)
		if m.Name != "" {
			tx := clampInt(x-textWidth(m.Name)/2, 0, w-textWidth(m.Name))
			drawText(img, tx, clampInt(y-6, 12, h), m.Name, st.text)
		}
	}

	s := p.Stats
	summary := fmt.Sprintf("%.2f km  +%.0f m  -%.0f m  %.0f..%.0f m", s.TotalDistanceKm, s.GainM, s.LossM, s.MinElevationM, s.MaxElevationM)
	drawText(img, w-padRight-textWidth(summary), 16, summary, st.text)
	return img
}

func drawAxes(img *image.RGBA, pl plot, st chartStyle) {
	r := pl.rect
	for i := 0; i <= yTicks; i++ {
		ele := pl.minEle + (pl.maxEle-pl.minEle)*float64(i)/yTicks
		y := pl.y(ele)
		drawLineRGBA(img, r.Min.X, y, r.Max.X-1, y, 1, st.grid)
		label := fmt.Sprintf("%.0f m", ele)
		drawText(img, r.Min.X-6-textWidth(label), y+4, label, st.text)
	}
	for i := 0; i <= yTicks; i++ {
		km := pl.maxKm * float64(i) / yTicks
		x := pl.x(km)
		label := fmt.Sprintf("%.1f km", km)
		tx := clampInt(x-textWidth(label)/2, 0, img.Bounds().Dx()-textWidth(label))
		drawText(img, tx, r.Max.Y+16, label, st.text)
	}
	drawLineRGBA(img, r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, 1, st.axis)
	drawLineRGBA(img, r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, 1, st.axis)
}

func drawText(img draw.Image, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int { return font.MeasureString(basicfont.Face7x13, s).Ceil() }

// Брезенхем с квадратной кистью
func drawLineRGBA(img *image.RGBA, x0, y0, x1, y1, width int, c color.Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plotSquareRGBA(img, x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func plotSquareRGBA(img *image.RGBA, cx, cy, w int, c color.Color) {
	if w <= 1 {
		if image.Pt(cx, cy).In(img.Rect) {
			img.Set(cx, cy, c)
		}
		return
	}
	r := (w - 1) / 2
	sq := image.Rect(cx-r, cy-r, cx-r+w, cy-r+w).Intersect(img.Rect)
	draw.Draw(img, sq, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
