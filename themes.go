package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	goghthemes "github.com/willyv3/gogh-themes"
)

// DefaultThemeName selects the GitHub-style green palette.
const DefaultThemeName = "github"

// Palette holds the fill color of each contribution level, 0 through 4.
type Palette [levelCount]string

// githubPalette is the classic light GitHub contribution scale.
var githubPalette = Palette{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// Color returns the fill for a level, clamping out-of-range levels.
func (p Palette) Color(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= len(p) {
		level = len(p) - 1
	}
	return p[level]
}

// themeColors is the subset of a terminal color scheme a palette is built from.
type themeColors struct {
	Background string
	Foreground string
	Red        string
	Green      string
	Blue       string
}

// paletteFromColors builds a contribution gradient from a scheme's green,
// with the background as the empty level.
func paletteFromColors(c themeColors) Palette {
	return Palette{
		c.Background,
		generateShade(c.Green, 0.3),
		generateShade(c.Green, 0.5),
		generateShade(c.Green, 0.7),
		c.Green,
	}
}

var (
	goghOnce    sync.Once
	goghThemes  map[string]themeColors
	themeOrder  []string
	themeByFold map[string]string
)

// loadAllThemes loads all themes from gogh-themes package
func loadAllThemes() {
	goghOnce.Do(func() {
		all := goghthemes.All()
		goghThemes = make(map[string]themeColors, len(all))
		themeByFold = make(map[string]string, len(all))

		for name, goghTheme := range all {
			goghThemes[name] = themeColors{
				Background: goghTheme.Background,
				Foreground: goghTheme.Foreground,
				Red:        goghTheme.Red,
				Green:      goghTheme.Green,
				Blue:       goghTheme.Blue,
			}
			themeByFold[strings.ToLower(name)] = name
		}

		themeOrder = make([]string, 0, len(goghThemes))
		for name := range goghThemes {
			themeOrder = append(themeOrder, name)
		}
		sort.Strings(themeOrder)
	})
}

// ThemeNames returns every selectable theme name: the default first, then
// the gogh themes alphabetically.
func ThemeNames() []string {
	loadAllThemes()
	names := make([]string, 0, len(themeOrder)+1)
	names = append(names, DefaultThemeName)
	return append(names, themeOrder...)
}

// LookupPalette resolves a theme name to a palette. Names match
// case-insensitively; an empty name selects the default.
func LookupPalette(name string) (Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, DefaultThemeName) {
		return githubPalette, nil
	}

	loadAllThemes()
	if canonical, ok := themeByFold[strings.ToLower(name)]; ok {
		return paletteFromColors(goghThemes[canonical]), nil
	}

	return Palette{}, &ConfigError{
		Parameter: "theme",
		Value:     name,
		Err:       fmt.Errorf("unknown theme (run 'githeat themes' to list %d themes)", len(themeOrder)+1),
	}
}

// generateShade adjusts the brightness of a color
// factor < 1.0 darkens, factor > 1.0 brightens, factor = 1.0 returns original
func generateShade(hexColor string, factor float64) string {
	hex := strings.TrimPrefix(hexColor, "#")
	if len(hex) != 6 {
		return hexColor // Return original if invalid
	}

	r, errR := strconv.ParseInt(hex[0:2], 16, 64)
	g, errG := strconv.ParseInt(hex[2:4], 16, 64)
	b, errB := strconv.ParseInt(hex[4:6], 16, 64)
	if errR != nil || errG != nil || errB != nil {
		return hexColor
	}

	return fmt.Sprintf("#%02x%02x%02x", scaleChannel(r, factor), scaleChannel(g, factor), scaleChannel(b, factor))
}

// scaleChannel multiplies a color channel and clamps it to 0-255.
func scaleChannel(v int64, factor float64) int64 {
	v = int64(float64(v) * factor)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
