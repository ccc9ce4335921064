package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateShade(t *testing.T) {
	tests := []struct {
		color  string
		factor float64
		want   string
	}{
		{"#40c463", 1.0, "#40c463"},
		{"#808080", 0.5, "#404040"},
		{"#808080", 3.0, "#ffffff"},
		{"#000000", 0.3, "#000000"},
		{"40c463", 1.0, "#40c463"},
		{"#abc", 0.5, "#abc"},     // invalid, returned unchanged
		{"#zzzzzz", 0.5, "#zzzzzz"},
	}

	for _, tt := range tests {
		got := generateShade(tt.color, tt.factor)
		if got != tt.want {
			t.Errorf("generateShade(%q, %v) = %s, want %s", tt.color, tt.factor, got, tt.want)
		}
	}
}

func TestPaletteColor(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{-1, "#ebedf0"},
		{0, "#ebedf0"},
		{2, "#40c463"},
		{4, "#216e39"},
		{9, "#216e39"},
	}

	for _, tt := range tests {
		if got := githubPalette.Color(tt.level); got != tt.want {
			t.Errorf("Color(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestLookupPaletteDefault(t *testing.T) {
	for _, name := range []string{"", "github", "GitHub"} {
		p, err := LookupPalette(name)
		if err != nil {
			t.Fatalf("LookupPalette(%q) error = %v", name, err)
		}
		if p != githubPalette {
			t.Errorf("LookupPalette(%q) = %v, want github palette", name, p)
		}
	}
}

func TestLookupPaletteGogh(t *testing.T) {
	names := ThemeNames()
	if len(names) < 2 {
		t.Fatalf("ThemeNames() returned %d names, want gogh themes too", len(names))
	}
	if names[0] != DefaultThemeName {
		t.Errorf("ThemeNames()[0] = %s, want %s", names[0], DefaultThemeName)
	}

	p, err := LookupPalette(names[1])
	if err != nil {
		t.Fatalf("LookupPalette(%q) error = %v", names[1], err)
	}
	for level, c := range p {
		if c == "" {
			t.Errorf("LookupPalette(%q) level %d is empty", names[1], level)
		}
	}
}

func TestLookupPaletteUnknown(t *testing.T) {
	_, err := LookupPalette("no-such-theme-anywhere")
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("LookupPalette(unknown) error = %v, want ErrConfiguration", err)
	}
}

func TestLoadPaletteFile(t *testing.T) {
	dir := t.TempDir()

	scheme := filepath.Join(dir, "scheme.yml")
	writeFile(t, scheme, `name: Test Scheme
variant: dark
background: "#101010"
foreground: "#f0f0f0"
color_03: "#008000"
color_11: "#00ff00"
`)

	levels := filepath.Join(dir, "levels.yml")
	writeFile(t, levels, `name: Explicit
levels: ["#000001", "#000002", "#000003", "#000004", "#000005"]
`)

	broken := filepath.Join(dir, "broken.yml")
	writeFile(t, broken, `name: Broken
levels: ["#000001"]
`)

	got, err := LoadPaletteFile(scheme)
	if err != nil {
		t.Fatalf("LoadPaletteFile(scheme) error = %v", err)
	}
	want := Palette{"#101010", "#004c00", "#007f00", "#00b200", "#00ff00"}
	if got != want {
		t.Errorf("LoadPaletteFile(scheme) = %v, want %v", got, want)
	}

	got, err = LoadPaletteFile(levels)
	if err != nil {
		t.Fatalf("LoadPaletteFile(levels) error = %v", err)
	}
	if got[4] != "#000005" {
		t.Errorf("LoadPaletteFile(levels)[4] = %s, want #000005", got[4])
	}

	if _, err := LoadPaletteFile(broken); !errors.Is(err, ErrConfiguration) {
		t.Errorf("LoadPaletteFile(broken) error = %v, want ErrConfiguration", err)
	}
	if _, err := LoadPaletteFile(filepath.Join(dir, "missing.yml")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("LoadPaletteFile(missing) error = %v, want ErrConfiguration", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
