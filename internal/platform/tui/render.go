package tui

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// upperHalf paints the top pixel in the foreground and the bottom pixel in
// the background color.
const upperHalf = "▀"

// Screen is the pixel buffer a Model presents the stage into.
// It is sized in terminal cells; each cell holds two pixels.
type Screen struct {
	cols, rows int
	img        *image.RGBA
}

// NewScreen creates a screen of cols x rows cells.
func NewScreen(cols, rows int) *Screen {
	s := &Screen{}
	s.Resize(cols, rows)
	return s
}

// Cols returns the width in cells.
func (s *Screen) Cols() int {
	return s.cols
}

// Rows returns the height in cells.
func (s *Screen) Rows() int {
	return s.rows
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if s.img != nil && cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.img = image.NewRGBA(image.Rect(0, 0, cols, rows*pixelsPerRow))
}

// Image returns the pixel buffer.
func (s *Screen) Image() draw.Image {
	return s.img
}

type cell struct {
	top, bottom color.RGBA
}

// Render converts the screen to half-block cells styled with r.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (s *Screen) Render(r *lipgloss.Renderer) string {
	return RenderHalfBlocks(r, s.img)
}

// RenderHalfBlocks renders img two pixel rows per line. A missing bottom row
// is rendered black.
func RenderHalfBlocks(r *lipgloss.Renderer, img *image.RGBA) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	b := img.Bounds()
	styles := make(map[cell]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(b.Dx()*b.Dy()*4 + b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y += pixelsPerRow {
		if y > b.Min.Y {
			sb.WriteRune('\n')
		}

		x := b.Min.X
		for x < b.Max.X {
			start := cellAt(img, x, y)
			n := 0
			for x < b.Max.X && cellAt(img, x, y) == start {
				n++
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = r.NewStyle().
					Foreground(lipgloss.Color(hex(start.top))).
					Background(lipgloss.Color(hex(start.bottom)))
				styles[start] = style
			}
			sb.WriteString(style.Render(strings.Repeat(upperHalf, n)))
		}
	}
	return sb.String()
}

func cellAt(img *image.RGBA, x, y int) cell {
	c := cell{top: img.RGBAAt(x, y)}
	if y+1 < img.Bounds().Max.Y {
		c.bottom = img.RGBAAt(x, y+1)
	}
	return c
}

// hex formats c as #rrggbb, ignoring alpha.
func hex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
