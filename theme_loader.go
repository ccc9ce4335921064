package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLTheme represents the structure of theme YAML files
// These come from terminal color schemes with 16 ANSI colors
type YAMLTheme struct {
	Name       string `yaml:"name"`
	Author     string `yaml:"author"`
	Variant    string `yaml:"variant"` // dark or light
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`

	Color01 string `yaml:"color_01"` // Black
	Color02 string `yaml:"color_02"` // Red
	Color03 string `yaml:"color_03"` // Green
	Color04 string `yaml:"color_04"` // Yellow
	Color05 string `yaml:"color_05"` // Blue
	Color10 string `yaml:"color_10"` // Bright Red
	Color11 string `yaml:"color_11"` // Bright Green
	Color13 string `yaml:"color_13"` // Bright Blue

	// Levels overrides the generated gradient when it lists five colors.
	Levels []string `yaml:"levels"`
}

// Palette converts the scheme into contribution level colors. Bright green
// is preferred, falling back to green.
func (yt *YAMLTheme) Palette() (Palette, error) {
	if len(yt.Levels) > 0 {
		if len(yt.Levels) != levelCount {
			return Palette{}, fmt.Errorf("theme %q: levels must list %d colors, got %d", yt.Name, levelCount, len(yt.Levels))
		}
		var p Palette
		for i, c := range yt.Levels {
			if !isHexColor(c) {
				return Palette{}, fmt.Errorf("theme %q: level %d: invalid color %q", yt.Name, i, c)
			}
			p[i] = c
		}
		return p, nil
	}

	green := firstNonEmpty(yt.Color11, yt.Color03)
	if !isHexColor(yt.Background) || !isHexColor(green) {
		return Palette{}, fmt.Errorf("theme %q: background and color_11 (or color_03) must be #rrggbb colors", yt.Name)
	}

	return paletteFromColors(themeColors{
		Background: yt.Background,
		Foreground: yt.Foreground,
		Red:        firstNonEmpty(yt.Color10, yt.Color02),
		Green:      green,
		Blue:       firstNonEmpty(yt.Color13, yt.Color05),
	}), nil
}

// LoadThemeFromYAML loads a single YAML theme file
func LoadThemeFromYAML(filePath string) (*YAMLTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var yamlTheme YAMLTheme
	if err := yaml.Unmarshal(data, &yamlTheme); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &yamlTheme, nil
}

// LoadPaletteFile reads a YAML theme file and returns its palette.
func LoadPaletteFile(filePath string) (Palette, error) {
	yamlTheme, err := LoadThemeFromYAML(filePath)
	if err != nil {
		return Palette{}, &ConfigError{Parameter: "theme-file", Value: filePath, Err: err}
	}
	p, err := yamlTheme.Palette()
	if err != nil {
		return Palette{}, &ConfigError{Parameter: "theme-file", Value: filePath, Err: err}
	}
	return p, nil
}

func isHexColor(s string) bool {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 || hex == s {
		return false
	}
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
