package main

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// один цвет: #RGB, #RRGGBB или #AARRGGBB
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("цвет %q должен начинаться с #", s)
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, errors.New("формат цвета: #RGB, #RRGGBB или #AARRGGBB")
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("цвет %q: %w", s, err)
	}
	a := uint8(0xFF)
	if len(h) == 8 {
		a = uint8(v >> 24)
	}
	c := color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// список цветов через запятую
func ParseHexColors(csv string) ([]color.RGBA, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]color.RGBA, 0, len(parts))
	for _, p := range parts {
		c, err := ParseHexColor(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// withAlpha — полупрозрачная версия цвета для заливки под графиком
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}
