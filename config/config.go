package config

import (
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when looking up the environment.
const EnvPrefix = "GPXMERGE"

type Config struct {
	OutDir       string        `mapstructure:"OUT_DIR"`
	Merge        bool          `mapstructure:"MERGE"`
	ChartWidth   int           `mapstructure:"CHART_WIDTH"`
	ChartHeight  int           `mapstructure:"CHART_HEIGHT"`
	MapSize      int           `mapstructure:"MAP_SIZE"`
	MapMargin    float64       `mapstructure:"MAP_MARGIN"`
	GIFFrames    int           `mapstructure:"GIF_FRAMES"`
	Background   string        `mapstructure:"BACKGROUND"`
	LineColors   string        `mapstructure:"LINE_COLORS"`
	TilePreset   string        `mapstructure:"TILE_PRESET"`
	TileCacheDir string        `mapstructure:"TILE_CACHE_DIR"`
	TileRPS      float64       `mapstructure:"TILE_RPS"`
	TileBurst    int           `mapstructure:"TILE_BURST"`
	Timeout      time.Duration `mapstructure:"TIMEOUT"`
	PprofAddr    string        `mapstructure:"PPROF_ADDR"`
}

// Load reads GPXMERGE_* environment variables over built-in defaults.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("OUT_DIR", ".")
	v.SetDefault("MERGE", false)
	v.SetDefault("CHART_WIDTH", 960)
	v.SetDefault("CHART_HEIGHT", 320)
	v.SetDefault("MAP_SIZE", 512)
	v.SetDefault("MAP_MARGIN", 0.05)
	v.SetDefault("GIF_FRAMES", 48)
	v.SetDefault("BACKGROUND", "#101418")
	v.SetDefault("LINE_COLORS", "#ff3b30,#34c759,#007aff,#ffcc00,#af52de,#ffffff")
	v.SetDefault("TILE_PRESET", "")
	v.SetDefault("TILE_CACHE_DIR", ".tile-cache")
	v.SetDefault("TILE_RPS", 2.0)
	v.SetDefault("TILE_BURST", 4)
	v.SetDefault("TIMEOUT", "2m")
	v.SetDefault("PPROF_ADDR", "")

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
