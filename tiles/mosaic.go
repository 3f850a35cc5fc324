package tiles

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/s0ultr4d3r/gpxmerge/geo"
)

// Background renders the map area b as a w x h image. The result lines up
// with Project: the top-left pixel is (b.MinLon, b.MaxLat) and the
// bottom-right is (b.MaxLon, b.MinLat).
func Background(ctx context.Context, f *Fetcher, p Preset, b geo.Bounds, w, h int) (*image.RGBA, error) {
	z := p.ClampZoom(FitZoom(b, w, h, p))

	tlx, tly, brx, bry := pixelBox(b, z)
	if brx-tlx < 1 || bry-tly < 1 {
		return nil, fmt.Errorf("map area too small at zoom %d", z)
	}

	minTX, minTY, maxTX, maxTY := CoveringTiles(b, z)
	canvas := image.NewRGBA(image.Rect(0, 0, (maxTX-minTX+1)*TileSize, (maxTY-minTY+1)*TileSize))

	n := 1 << z
	for ty := minTY; ty <= maxTY; ty++ {
		if ty < 0 || ty >= n {
			continue
		}
		for tx := minTX; tx <= maxTX; tx++ {
			u, err := p.FillURL(z, ((tx%n)+n)%n, ty)
			if err != nil {
				return nil, err
			}
			data, err := f.Get(ctx, u, p.Headers)
			if err != nil {
				return nil, fmt.Errorf("get tile %d/%d/%d: %w", z, tx, ty, err)
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode tile %d/%d/%d: %w", z, tx, ty, err)
			}
			off := image.Pt((tx-minTX)*TileSize, (ty-minTY)*TileSize)
			draw.Draw(canvas, image.Rectangle{Min: off, Max: off.Add(image.Pt(TileSize, TileSize))}, img, img.Bounds().Min, draw.Src)
		}
	}

	ox := float64(minTX * TileSize)
	oy := float64(minTY * TileSize)
	crop := image.Rect(
		int(math.Floor(tlx-ox)), int(math.Floor(tly-oy)),
		int(math.Ceil(brx-ox)), int(math.Ceil(bry-oy)),
	).Intersect(canvas.Bounds())

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), canvas, crop, draw.Src, nil)
	return out, nil
}
