package termcore

import "image/color"

// CampbellPalette holds the 16 named ANSI colors of the Campbell scheme,
// used to overwrite the first 16 entries of the default 256-color ramp.
var CampbellPalette = [16]color.RGBA{
	{12, 12, 12, 255},    // Black
	{197, 15, 31, 255},   // Red
	{19, 161, 14, 255},   // Green
	{193, 156, 0, 255},   // Yellow
	{0, 55, 218, 255},    // Blue
	{136, 23, 152, 255},  // Magenta
	{58, 150, 221, 255},  // Cyan
	{204, 204, 204, 255}, // White
	{118, 118, 118, 255}, // Bright Black
	{231, 72, 86, 255},   // Bright Red
	{22, 198, 12, 255},   // Bright Green
	{249, 241, 165, 255}, // Bright Yellow
	{59, 120, 255, 255},  // Bright Blue
	{180, 0, 158, 255},   // Bright Magenta
	{97, 214, 214, 255},  // Bright Cyan
	{242, 242, 242, 255}, // Bright White
}

// DefaultForeground is the default text color.
var DefaultForeground = color.RGBA{255, 255, 255, 255}

// DefaultBackground is the default background color.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// Named color indices for semantic colors (used with NamedColor).
const (
	NamedColorForeground = 256 // Default foreground text color
	NamedColorBackground = 257 // Default background color
	NamedColorCursor     = 258 // Cursor color
)

// IndexedColor references a color by palette index (0-255).
// Resolution to actual RGBA happens at render time using the color table.
type IndexedColor struct {
	Index int
}

// RGBA implements color.Color, returning a placeholder (actual resolution happens at render time).
func (c *IndexedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// NamedColor references a color by semantic name (foreground, background, cursor).
// Resolution to actual RGBA happens at render time using the color table and defaults.
type NamedColor struct {
	Name int
}

// RGBA implements color.Color, returning a placeholder (actual resolution happens at render time).
func (c *NamedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// buildColorTable seeds a 256-entry table: first the 6x6x6 color cube and
// grayscale ramp, then the first 16 entries overwritten by the given named
// palette, then every entry forced to full alpha. Built once at construction;
// the table is immutable afterwards.
func buildColorTable(named [16]color.RGBA) [256]color.RGBA {
	var table [256]color.RGBA

	// 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				table[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	// Grayscale ramp (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		table[232+j] = color.RGBA{gray, gray, gray, 255}
	}

	// Named palette for the first 16 entries
	copy(table[:16], named[:])

	// Normalize alpha
	for k := range table {
		table[k].A = 0xff
	}

	return table
}

// resolveColor converts a cell color to RGBA using the given table and defaults.
// If c is nil, returns the default foreground or background based on fg.
func resolveColor(c color.Color, fg bool, table *[256]color.RGBA, defFg, defBg color.RGBA) color.RGBA {
	if c == nil {
		if fg {
			return defFg
		}
		return defBg
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return table[v.Index]
		}
		if fg {
			return defFg
		}
		return defBg
	case *NamedColor:
		switch {
		case v.Name >= 0 && v.Name < 256:
			return table[v.Name]
		case v.Name == NamedColorBackground:
			return defBg
		default:
			return defFg
		}
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
}
