package termcore

import (
	"image/color"
	"testing"

	"github.com/danielgatis/go-ansicode"
)

func TestDispatcherPlainText(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	if _, err := d.Write([]byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := term.LineContent(0); got != "hello" {
		t.Errorf("expected 'hello', got '%s'", got)
	}
}

func TestDispatcherControls(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	d.WriteString("Line1\r\nLine2")

	if got := term.LineContent(0); got != "Line1" {
		t.Errorf("expected 'Line1', got '%s'", got)
	}
	if got := term.LineContent(1); got != "Line2" {
		t.Errorf("expected 'Line2', got '%s'", got)
	}
}

func TestDispatcherChunkedInput(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	// A multi-byte glyph split across writes must survive decoding.
	raw := []byte("héllo")
	d.Write(raw[:2])
	d.Write(raw[2:])

	if got := term.LineContent(0); got != "héllo" {
		t.Errorf("expected 'héllo', got '%s'", got)
	}
}

func TestDispatcherSetTitle(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	d.WriteString("before\x1b]0;my title\x07after")

	if got := term.Title(); got != "my title" {
		t.Errorf("expected 'my title', got '%s'", got)
	}
	if got := term.LineContent(0); got != "beforeafter" {
		t.Errorf("expected 'beforeafter', got '%s'", got)
	}
}

func TestDispatcherBoldAttribute(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	d.WriteString("a\x1b[1mb\x1b[0mc")

	if term.Cell(0, 0).HasFlag(CellFlagBold) {
		t.Error("expected 'a' without bold")
	}
	if !term.Cell(0, 1).HasFlag(CellFlagBold) {
		t.Error("expected 'b' bold")
	}
	if term.Cell(0, 2).HasFlag(CellFlagBold) {
		t.Error("expected 'c' reset")
	}
}

func TestDispatcherTrueColorForeground(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	d.WriteString("\x1b[38;2;10;20;30mX")

	want := color.RGBA{10, 20, 30, 255}
	if got := term.Cell(0, 0).Fg; got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDispatcherIndexedBackground(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	d.WriteString("\x1b[48;5;196mX")

	bg, ok := term.Cell(0, 0).Bg.(*IndexedColor)
	if !ok {
		t.Fatalf("expected an indexed color, got %T", term.Cell(0, 0).Bg)
	}
	if bg.Index != 196 {
		t.Errorf("expected index 196, got %d", bg.Index)
	}
}

func TestDispatcherUnderlineVariantsCollapse(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	// Curly underline (4:3) renders as plain underline here.
	d.WriteString("\x1b[4:3mX")

	if !term.Cell(0, 0).HasFlag(CellFlagUnderline) {
		t.Error("expected the underline flag")
	}
}

func TestDispatcherIgnoresCursorAddressing(t *testing.T) {
	term := New(WithSize(24, 80))
	d := NewDispatcher(term)

	// CUP is outside the core's contract and is dropped; the surrounding
	// text must still land in stream order.
	d.WriteString("ab\x1b[10;10Hcd")

	if got := term.LineContent(0); got != "abcd" {
		t.Errorf("expected 'abcd', got '%s'", got)
	}
}

func TestDispatcherFlushOrdering(t *testing.T) {
	rec := &titleRecorder{}
	term := New(WithSize(24, 80), WithTitle(rec))
	d := NewDispatcher(term)

	// The title change must not reorder ahead of the pending text.
	d.WriteString("xy\x1b]2;t\x07")

	if got := term.LineContent(0); got != "xy" {
		t.Errorf("expected 'xy' flushed before the title, got '%s'", got)
	}
	if len(rec.titles) != 1 || rec.titles[0] != "t" {
		t.Errorf("expected title 't', got %v", rec.titles)
	}
}

func TestApplyCharAttributeCancel(t *testing.T) {
	tmpl := NewCellTemplate()
	tmpl.SetFlag(CellFlagBold | CellFlagDim | CellFlagStrike)

	applyCharAttribute(&tmpl, ansicode.TerminalCharAttribute{Attr: ansicode.CharAttributeCancelBoldDim})

	if tmpl.HasFlag(CellFlagBold) || tmpl.HasFlag(CellFlagDim) {
		t.Error("expected bold and dim cleared")
	}
	if !tmpl.HasFlag(CellFlagStrike) {
		t.Error("expected strike kept")
	}
}
