package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme holds the drawing colors the rendering frontend uses. Colors are hex
// strings ("#rrggbb"); they ship to the frontend verbatim.
type Theme struct {
	ClipFill         string `yaml:"clipFill"`
	ClipOutline      string `yaml:"clipOutline"`
	Keyframe         string `yaml:"keyframe"`
	SelectedKeyframe string `yaml:"selectedKeyframe"`
	SelectionRect    string `yaml:"selectionRect"`
	SelectionBBox    string `yaml:"selectionBBox"`
	FrameIndicator   string `yaml:"frameIndicator"`
	Background       string `yaml:"background"`
}

// DefaultTheme mirrors the stock editor palette.
func DefaultTheme() Theme {
	return Theme{
		ClipFill:         "#000000",
		ClipOutline:      "#398de0",
		Keyframe:         "#398de0",
		SelectedKeyframe: "#ffffff",
		SelectionRect:    "#8a8a8a",
		SelectionBBox:    "#8a8a8a",
		FrameIndicator:   "#cf3434",
		Background:       "#27282c",
	}
}

// LoadTheme reads a YAML theme file, filling unset fields from the default
// palette. An empty path yields the default palette.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return theme, fmt.Errorf("read theme: %w", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return theme, fmt.Errorf("parse theme: %w", err)
	}
	return theme, nil
}
