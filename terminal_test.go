package termcore

import (
	"errors"
	"fmt"
	"image/color"
	"testing"
)

type scrollCall struct {
	visibleTop   int
	viewHeight   int
	bufferHeight int
}

// scrollRecorder captures scroll-position notifications for assertions.
type scrollRecorder struct {
	calls []scrollCall
}

func (r *scrollRecorder) ScrollPositionChanged(visibleTop, viewHeight, bufferHeight int) {
	r.calls = append(r.calls, scrollCall{visibleTop, viewHeight, bufferHeight})
}

type titleRecorder struct {
	titles []string
}

func (r *titleRecorder) TitleChanged(title string) {
	r.titles = append(r.titles, title)
}

func TestNewTerminal(t *testing.T) {
	term := New()

	if term.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", term.Rows())
	}
	if term.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", term.Cols())
	}
	if term.BufferHeight() != 24 {
		t.Errorf("expected buffer height 24 before scrolling, got %d", term.BufferHeight())
	}
	if term.ScrollOffset() != 0 {
		t.Errorf("expected scroll offset 0, got %d", term.ScrollOffset())
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(40, 120))

	if term.Rows() != 40 {
		t.Errorf("expected 40 rows, got %d", term.Rows())
	}
	if term.Cols() != 120 {
		t.Errorf("expected 120 cols, got %d", term.Cols())
	}
}

func TestTerminalWithSizeInvalidUsesDefaults(t *testing.T) {
	term := New(WithSize(0, -3))

	if term.Rows() != DEFAULT_ROWS {
		t.Errorf("expected %d rows, got %d", DEFAULT_ROWS, term.Rows())
	}
	if term.Cols() != DEFAULT_COLS {
		t.Errorf("expected %d cols, got %d", DEFAULT_COLS, term.Cols())
	}
}

func TestNewFromSettings(t *testing.T) {
	s := DefaultSettings()
	s.InitialRows = 10
	s.InitialCols = 40
	s.HistorySize = 7

	term := NewFromSettings(s)

	if term.Rows() != 10 || term.Cols() != 40 {
		t.Errorf("expected 10x40, got %dx%d", term.Rows(), term.Cols())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")

	if got := term.LineContent(0); got != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", got)
	}
}

func TestTerminalWriteIOWriter(t *testing.T) {
	term := New(WithSize(24, 80))

	n, err := fmt.Fprintf(term, "Hello %s", "World")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len("Hello World") {
		t.Errorf("expected %d bytes, got %d", len("Hello World"), n)
	}
	if got := term.LineContent(0); got != "Hello World" {
		t.Errorf("expected 'Hello World', got '%s'", got)
	}
}

func TestTerminalString(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("one\r\ntwo")

	if got := term.String(); got != "one\ntwo" {
		t.Errorf("expected 'one\\ntwo', got %q", got)
	}
}

func TestTerminalTitle(t *testing.T) {
	rec := &titleRecorder{}
	term := New(WithTitle(rec))

	term.SetTitle("session 1")

	if got := term.Title(); got != "session 1" {
		t.Errorf("expected 'session 1', got '%s'", got)
	}
	if len(rec.titles) != 1 || rec.titles[0] != "session 1" {
		t.Errorf("expected one notification with 'session 1', got %v", rec.titles)
	}
}

func TestTerminalResize(t *testing.T) {
	rec := &scrollRecorder{}
	term := New(WithSize(24, 80), WithScrollback(10), WithScrollPosition(rec))

	changed, err := term.Resize(30, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected resize to report a change")
	}
	if term.Rows() != 30 || term.Cols() != 100 {
		t.Errorf("expected 30x100, got %dx%d", term.Rows(), term.Cols())
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 scroll notification, got %d", len(rec.calls))
	}
	if rec.calls[0].viewHeight != 30 {
		t.Errorf("expected notified view height 30, got %d", rec.calls[0].viewHeight)
	}
}

func TestTerminalResizeSameSizeIsNoop(t *testing.T) {
	rec := &scrollRecorder{}
	term := New(WithSize(24, 80), WithScrollPosition(rec))

	changed, err := term.Resize(24, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected same-size resize to report no change")
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no scroll notification, got %d", len(rec.calls))
	}
}

func TestTerminalResizeInvalid(t *testing.T) {
	term := New(WithSize(24, 80))

	if _, err := term.Resize(0, 80); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := term.Resize(24, -1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}

	// Failed resize must leave dimensions untouched.
	if term.Rows() != 24 || term.Cols() != 80 {
		t.Errorf("expected 24x80 after failed resize, got %dx%d", term.Rows(), term.Cols())
	}
}

func TestTerminalResizePreservesContent(t *testing.T) {
	term := New(WithSize(5, 20), WithScrollback(0))

	term.WriteString("keep me")

	if _, err := term.Resize(10, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := term.LineContent(0); got != "keep me" {
		t.Errorf("expected 'keep me' after grow, got '%s'", got)
	}
}

func TestUserScrollViewport(t *testing.T) {
	term := New(WithSize(3, 10), WithScrollback(5))

	// Six lines push the mutable viewport down to top row 3.
	term.WriteString("a\r\nb\r\nc\r\nd\r\ne\r\nf")

	if got := term.AbsoluteTop(); got != 3 {
		t.Fatalf("expected absolute top 3, got %d", got)
	}

	term.UserScrollViewport(1)
	if got := term.ScrollOffset(); got != 2 {
		t.Errorf("expected scroll offset 2, got %d", got)
	}
	if got := term.VisibleTop(); got != 1 {
		t.Errorf("expected visible top 1, got %d", got)
	}
}

func TestUserScrollViewportClampsNegative(t *testing.T) {
	term := New(WithSize(3, 10), WithScrollback(5))

	term.WriteString("a\r\nb\r\nc\r\nd\r\ne\r\nf")

	term.UserScrollViewport(-10)
	if got := term.VisibleTop(); got != 0 {
		t.Errorf("expected visible top 0, got %d", got)
	}
	if got := term.ScrollOffset(); got != 3 {
		t.Errorf("expected scroll offset 3, got %d", got)
	}
}

func TestUserScrollViewportBelowLivePins(t *testing.T) {
	term := New(WithSize(3, 10), WithScrollback(5))

	term.WriteString("a\r\nb\r\nc\r\nd\r\ne\r\nf")

	term.UserScrollViewport(100)
	if got := term.ScrollOffset(); got != 0 {
		t.Errorf("expected scroll offset 0 when scrolling below live output, got %d", got)
	}
	if got := term.VisibleTop(); got != term.AbsoluteTop() {
		t.Errorf("expected visible top pinned to %d, got %d", term.AbsoluteTop(), got)
	}
}

func TestUserScrollViewportNotifies(t *testing.T) {
	rec := &scrollRecorder{}
	term := New(WithSize(3, 10), WithScrollback(5), WithScrollPosition(rec))

	term.UserScrollViewport(0)

	if len(rec.calls) == 0 {
		t.Fatal("expected a scroll notification")
	}
	last := rec.calls[len(rec.calls)-1]
	if last.viewHeight != 3 {
		t.Errorf("expected view height 3, got %d", last.viewHeight)
	}
}

func TestVisibleTopFollowsOffset(t *testing.T) {
	term := New(WithSize(3, 10), WithScrollback(5))

	term.WriteString("a\r\nb\r\nc\r\nd\r\ne\r\nf")

	// visibleTop is always absoluteTop - offset, floored at zero.
	for _, want := range []struct{ viewTop, visibleTop int }{
		{3, 3}, {2, 2}, {0, 0},
	} {
		term.UserScrollViewport(want.viewTop)
		if got := term.VisibleTop(); got != want.visibleTop {
			t.Errorf("scroll to %d: expected visible top %d, got %d", want.viewTop, want.visibleTop, got)
		}
	}
}

func TestTerminalLineContentOutOfRange(t *testing.T) {
	term := New(WithSize(5, 10), WithScrollback(0))

	if got := term.LineContent(-1); got != "" {
		t.Errorf("expected empty string for negative row, got '%s'", got)
	}
	if got := term.LineContent(99); got != "" {
		t.Errorf("expected empty string past the buffer, got '%s'", got)
	}
}

func TestTerminalCellAccess(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("Q")

	cell := term.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected a cell at (0, 0)")
	}
	if cell.Char != 'Q' {
		t.Errorf("expected 'Q', got %q", cell.Char)
	}
	if term.Cell(-1, 0) != nil {
		t.Error("expected nil for out-of-bounds cell")
	}
}

func TestTerminalColorTableEntry(t *testing.T) {
	term := New()

	c, ok := term.ColorTableEntry(1)
	if !ok {
		t.Fatal("expected index 1 to resolve")
	}
	if c != CampbellPalette[1] {
		t.Errorf("expected %v, got %v", CampbellPalette[1], c)
	}

	if _, ok := term.ColorTableEntry(256); ok {
		t.Error("expected index 256 to be rejected")
	}
}

func TestTerminalWithColors(t *testing.T) {
	fg := color.RGBA{1, 2, 3, 255}
	bg := color.RGBA{4, 5, 6, 255}
	term := New(WithColors(fg, bg))

	if term.defaultFg != fg {
		t.Errorf("expected foreground %v, got %v", fg, term.defaultFg)
	}
	if term.defaultBg != bg {
		t.Errorf("expected background %v, got %v", bg, term.defaultBg)
	}
}

func TestSetProvidersNilResetsToNoop(t *testing.T) {
	term := New()

	term.SetScrollPositionProvider(nil)
	term.SetTitleProvider(nil)
	term.SetInputProvider(nil)
	term.SetRenderTarget(nil)

	// Must not panic.
	term.SetTitle("x")
	term.UserScrollViewport(0)
	term.SendKeyEvent('a', 0)
}
