package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	ThemePath      string `envconfig:"THEME_PATH" default:""`

	// Interaction tuning. The click tolerance is the pixel distance within
	// which a keyframe or clip edge counts as hit; the glyph size is the
	// on-screen keyframe icon edge in pixels.
	ClickTolerancePx int `envconfig:"CLICK_TOLERANCE_PX" default:"5"`
	KeyframeGlyphPx  int `envconfig:"KEYFRAME_GLYPH_PX" default:"14"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
