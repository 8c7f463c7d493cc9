package termcore

import (
	"image/color"
	"testing"
)

func TestScreenshotDimensions(t *testing.T) {
	term := New(WithSize(2, 3))

	img := term.Screenshot()

	// basicfont cells are 7x13.
	bounds := img.Bounds()
	if bounds.Dx() != 3*7 || bounds.Dy() != 2*13 {
		t.Errorf("expected 21x26, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestScreenshotBackground(t *testing.T) {
	term := New(WithSize(2, 10))

	show := false
	img := term.ScreenshotWithConfig(&ScreenshotConfig{ShowCursor: &show})

	if got := img.RGBAAt(3, 3); got != DefaultBackground {
		t.Errorf("expected default background, got %v", got)
	}
}

func TestScreenshotCursorInverts(t *testing.T) {
	term := New(WithSize(2, 10))

	img := term.Screenshot()

	// The cursor sits at (0, 0); inverting black gives white.
	want := color.RGBA{255, 255, 255, 255}
	if got := img.RGBAAt(0, 0); got != want {
		t.Errorf("expected inverted cursor pixel %v, got %v", want, got)
	}
}

func TestScreenshotCursorColor(t *testing.T) {
	term := New(WithSize(2, 10))

	cursor := color.RGBA{10, 200, 10, 255}
	img := term.ScreenshotWithConfig(&ScreenshotConfig{CursorColor: &cursor})

	if got := img.RGBAAt(0, 0); got != cursor {
		t.Errorf("expected cursor color %v, got %v", cursor, got)
	}
}

func TestScreenshotShowsScrolledRegion(t *testing.T) {
	term := New(WithSize(2, 10), WithScrollback(5))

	term.WriteString("aaa\r\nbbb\r\nccc\r\nddd")
	term.UserScrollViewport(0)

	show := false
	img := term.ScreenshotWithConfig(&ScreenshotConfig{ShowCursor: &show})

	// Scrolled to the top: the image covers rows 0-1, and the cursor (on the
	// live bottom row) is out of frame, so nothing inverted the background.
	if bounds := img.Bounds(); bounds.Dy() != 2*13 {
		t.Errorf("expected 2 rows of pixels, got %d", bounds.Dy())
	}
}
