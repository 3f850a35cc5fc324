package main

import (
	"context"
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// задержки кадров, в сотых долях секунды
const (
	frameDelay = 4
	finalHold  = 150
)

type PalFrame struct {
	Img *image.Paletted
}

func palettize(src image.Image) *PalFrame {
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, b.Min)
	return &PalFrame{Img: dst}
}

// buildReveal рендерит n кадров постепенного появления: render(frac),
// frac от 1/n до 1. Последний кадр держится дольше.
func buildReveal(ctx context.Context, n int, render func(frac float64) image.Image, onFrame func(i int)) ([]*PalFrame, []int, error) {
	if n < 1 {
		return nil, nil, errors.New("нужно хотя бы 1 кадр")
	}
	frames := make([]*PalFrame, 0, n)
	delays := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}
		frames = append(frames, palettize(render(float64(i)/float64(n))))
		if i == n {
			delays = append(delays, finalHold)
		} else {
			delays = append(delays, frameDelay)
		}
		if onFrame != nil {
			onFrame(i)
		}
	}
	return frames, delays, nil
}

func writeGIFAll(w io.Writer, frames []*PalFrame, delays []int) error {
	if len(frames) == 0 {
		return errors.New("нет кадров")
	}
	if len(delays) != len(frames) {
		return errors.New("len(delays) != len(frames)")
	}
	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}
	for i, pf := range frames {
		g.Image[i] = pf.Img
		g.Delay[i] = delays[i]
	}
	return gif.EncodeAll(w, g)
}
