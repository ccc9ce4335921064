package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kevin-cantwell/dotmatrix"
)

// avatarSize is the largest edge of the avatar in pixels. Each braille
// character covers 2x4 pixels.
const avatarSize = 32

// FetchAvatar downloads and decodes a user's avatar. Relative URLs are
// resolved against the instance.
func (c *GiteaClient) FetchAvatar(ctx context.Context, avatarURL string) (image.Image, error) {
	if avatarURL == "" {
		return nil, errors.New("user has no avatar")
	}
	if strings.HasPrefix(avatarURL, "/") {
		avatarURL = c.baseURL + avatarURL
	}

	resp, err := c.rest.RequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return nil, classifyError(avatarURL, err)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar: %w", err)
	}
	return img, nil
}

// resizeImage scales img down to fit within maxSize, keeping its aspect ratio.
func resizeImage(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxSize && height <= maxSize {
		return img
	}

	newWidth, newHeight := maxSize, maxSize
	if width > height {
		newHeight = max(1, height*maxSize/width)
	} else {
		newWidth = max(1, width*maxSize/height)
	}

	// Nearest-neighbor is enough at braille resolution.
	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			resized.Set(x, y, img.At(bounds.Min.X+x*width/newWidth, bounds.Min.Y+y*height/newHeight))
		}
	}
	return resized
}

// contrastFilter stretches luminance around mid-gray before dithering.
type contrastFilter struct {
	Factor float64
}

// Filter implements dotmatrix.Filter.
func (f contrastFilter) Filter(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := (float64(luminance(img.At(x, y)))-128)*f.Factor + 128
			out.SetGray(x, y, color.Gray{Y: uint8(min(255, max(0, v)))})
		}
	}
	return out
}

// luminance returns the perceived brightness of c in 0-255, treating
// transparent pixels as black.
func luminance(c color.Color) int {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return 0
	}
	return int((299*r + 587*g + 114*b) / 1000 >> 8)
}

// RenderAvatar draws img as braille art tinted with the heatmap palette:
// each character gets the level matching the brightness of its pixels.
func RenderAvatar(img image.Image, palette Palette) string {
	img = resizeImage(img, avatarSize)

	var buf bytes.Buffer
	printer := dotmatrix.NewPrinter(&buf, &dotmatrix.Config{
		Filter: contrastFilter{Factor: 1.4},
		Drawer: draw.FloydSteinberg,
	})
	if err := printer.Print(img); err != nil {
		return ""
	}

	styles := make([]lipgloss.Style, levelCount)
	for level := range styles {
		styles[level] = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Color(level)))
	}

	var out strings.Builder
	for row, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		col := 0
		for _, char := range line {
			if char == ' ' || char == '⠀' {
				out.WriteRune(' ')
			} else {
				out.WriteString(styles[blockLevel(img, col*2, row*4)].Render(string(char)))
			}
			col++
		}
		out.WriteString("\n")
	}
	return out.String()
}

// blockLevel maps the mean luminance of the 2x4 block at (x0, y0) to a
// palette level from 1 to 4.
func blockLevel(img image.Image, x0, y0 int) int {
	bounds := img.Bounds()
	sum, n := 0, 0
	for y := bounds.Min.Y + y0; y < bounds.Min.Y+y0+4 && y < bounds.Max.Y; y++ {
		for x := bounds.Min.X + x0; x < bounds.Min.X+x0+2 && x < bounds.Max.X; x++ {
			sum += luminance(img.At(x, y))
			n++
		}
	}
	if n == 0 {
		return levelCount - 1
	}
	return 1 + min(levelCount-2, (sum/n)*(levelCount-1)/256)
}
