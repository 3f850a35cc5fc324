package tiles

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
)

type Preset struct {
	Name        string
	URLTmpl     string // {z}/{x}/{y} plus optional ${ENV_VAR} for API keys
	Attribution string
	MinZoom     int
	MaxZoom     int
	Headers     map[string]string
}

var Presets = map[string]Preset{
	"osm": {
		Name:        "OpenStreetMap",
		URLTmpl:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		MinZoom:     0, MaxZoom: 19,
	},
	"opentopomap": {
		Name:        "OpenTopoMap",
		URLTmpl:     "https://tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenTopoMap (CC-BY-SA), © OpenStreetMap contributors",
		MinZoom:     0, MaxZoom: 17,
	},
	"esri-satellite": {
		Name:        "ESRI World Imagery",
		URLTmpl:     "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "© Esri, Maxar, Earthstar Geographics",
		MinZoom:     0, MaxZoom: 20,
	},
	"stamen-terrain-bg": {
		Name:        "Stadia Stamen Terrain BG",
		URLTmpl:     "https://tiles.stadiamaps.com/tiles/stamen_terrain_background/{z}/{x}/{y}.png?api_key=${STADIA_KEY}",
		Attribution: "© Stadia Maps, © Stamen Design, © OpenStreetMap contributors",
		MinZoom:     0, MaxZoom: 18,
	},
}

// Lookup returns a named preset, or a custom one when name is itself a URL
// template containing {z}, {x} and {y}.
func Lookup(name string) (Preset, error) {
	if p, ok := Presets[name]; ok {
		return p, nil
	}
	if strings.Contains(name, "{z}") && strings.Contains(name, "{x}") && strings.Contains(name, "{y}") {
		return Preset{Name: "custom", URLTmpl: name, MinZoom: 0, MaxZoom: 20}, nil
	}
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return Preset{}, fmt.Errorf("unknown tile preset %q (known: %s)", name, strings.Join(names, ", "))
}

// FillURL expands the tile coordinates and any ${VAR} from the environment.
func (p Preset) FillURL(z, x, y int) (string, error) {
	u := os.ExpandEnv(p.URLTmpl)
	u = strings.NewReplacer(
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	).Replace(u)
	if _, err := url.Parse(u); err != nil {
		return "", fmt.Errorf("tile url: %w", err)
	}
	return u, nil
}

func (p Preset) ClampZoom(z int) int {
	if z < p.MinZoom {
		return p.MinZoom
	}
	if z > p.MaxZoom {
		return p.MaxZoom
	}
	return z
}
