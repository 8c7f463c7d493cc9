package termcore

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how the visible viewport is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// CursorColor is the cursor color. If nil, uses inverted colors.
	CursorColor *color.RGBA

	// ShowCursor controls whether to render the cursor. Default true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the visible viewport to an RGBA image using default
// settings (basicfont, the terminal's color table).
func (t *Terminal) Screenshot() *image.RGBA {
	return t.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the visible viewport to an RGBA image.
// When the user has scrolled back, the image shows the scrolled-to region,
// exactly what a connected renderer would present.
func (t *Terminal) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	if cellHeight == 0 {
		cellHeight = face.Metrics().Height.Ceil()
	}

	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	visible := t.visibleViewportLocked()
	cols := visible.Width()
	rows := visible.Height()

	imgWidth := cols * cellWidth
	imgHeight := rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.SetRGBA(x, y, t.defaultBg)
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := t.grid.Cell(visible.Top()+row, col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}

			x := col * cellWidth
			y := row * cellHeight

			fg := resolveColor(cell.Fg, true, &t.colorTable, t.defaultFg, t.defaultBg)
			bg := resolveColor(cell.Bg, false, &t.colorTable, t.defaultFg, t.defaultBg)

			if cell.HasFlag(CellFlagReverse) {
				fg, bg = bg, fg
			}

			if cell.HasFlag(CellFlagDim) {
				fg = color.RGBA{
					R: uint8(float64(fg.R) * 0.66),
					G: uint8(float64(fg.G) * 0.66),
					B: uint8(float64(fg.B) * 0.66),
					A: fg.A,
				}
			}

			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					img.SetRGBA(x+px, y+py, bg)
				}
			}

			ch := cell.Char
			if ch == 0 || ch == ' ' {
				continue
			}

			baseline := y + face.Metrics().Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(ch))

			if cell.HasFlag(CellFlagUnderline) {
				underlineY := baseline + 2
				for px := 0; px < cellWidth; px++ {
					if underlineY < imgHeight {
						img.SetRGBA(x+px, underlineY, fg)
					}
				}
			}

			if cell.HasFlag(CellFlagStrike) {
				strikeY := y + cellHeight/2
				for px := 0; px < cellWidth; px++ {
					img.SetRGBA(x+px, strikeY, fg)
				}
			}
		}
	}

	// The cursor lives at a buffer-absolute position; it only appears when
	// the visible viewport contains it.
	cursor := t.grid.Cursor()
	if showCursor && cursor.Visible && visible.Contains(cursor.Position()) {
		cursorX := cursor.Col * cellWidth
		cursorY := (cursor.Row - visible.Top()) * cellHeight

		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				cx, cy := cursorX+px, cursorY+py
				if cx >= imgWidth || cy >= imgHeight {
					continue
				}
				if cfg.CursorColor != nil {
					img.SetRGBA(cx, cy, *cfg.CursorColor)
				} else {
					existing := img.RGBAAt(cx, cy)
					img.SetRGBA(cx, cy, color.RGBA{
						R: 255 - existing.R,
						G: 255 - existing.G,
						B: 255 - existing.B,
						A: 255,
					})
				}
			}
		}
	}

	return img
}
