package termcore

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// Ensure Dispatcher implements ansicode.Handler
var _ ansicode.Handler = (*Dispatcher)(nil)

// Dispatcher adapts a raw pty byte stream to the terminal core. It runs the
// bytes through an ANSI decoder and forwards the committed effects the core
// understands: text runs, the raw line-feed/carriage-return/backspace
// controls, window titles, and SGR attribute changes. Everything else the
// control-sequence language can express is accepted and discarded.
//
// Consecutive printable characters are batched into a single core write so
// the lock is taken once per run instead of once per rune. Any non-text
// effect flushes the pending run first, preserving stream order.
//
// A Dispatcher is not safe for concurrent use; feed it from one goroutine.
type Dispatcher struct {
	term    *Terminal
	decoder *ansicode.Decoder
	pending []rune
}

// NewDispatcher creates a dispatcher that feeds the given terminal.
func NewDispatcher(term *Terminal) *Dispatcher {
	d := &Dispatcher{term: term}
	d.decoder = ansicode.NewDecoder(d)
	return d
}

// Write decodes raw bytes and applies their effects to the terminal.
// Implements io.Writer.
func (d *Dispatcher) Write(data []byte) (int, error) {
	n, err := d.decoder.Write(data)
	d.flush()
	return n, err
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (d *Dispatcher) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

func (d *Dispatcher) flush() {
	if len(d.pending) == 0 {
		return
	}
	d.term.WriteString(string(d.pending))
	d.pending = d.pending[:0]
}

// Input buffers a printable character for the next flush.
func (d *Dispatcher) Input(r rune) {
	d.pending = append(d.pending, r)
}

// LineFeed forwards a line feed to the core.
func (d *Dispatcher) LineFeed() {
	d.pending = append(d.pending, '\n')
}

// CarriageReturn forwards a carriage return to the core.
func (d *Dispatcher) CarriageReturn() {
	d.pending = append(d.pending, '\r')
}

// Backspace forwards a backspace to the core.
func (d *Dispatcher) Backspace() {
	d.pending = append(d.pending, '\b')
}

// Tab is approximated with a single space; the core has no tab stops.
func (d *Dispatcher) Tab(n int) {
	for i := 0; i < n; i++ {
		d.pending = append(d.pending, ' ')
	}
}

// SetTitle updates the terminal title.
func (d *Dispatcher) SetTitle(title string) {
	d.flush()
	d.term.SetTitle(title)
}

// SetTerminalCharAttribute applies an SGR effect to the attribute template
// stamped onto subsequent text.
func (d *Dispatcher) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	d.flush()
	d.term.withAttributes(func(tmpl *CellTemplate) {
		applyCharAttribute(tmpl, attr)
	})
}

func applyCharAttribute(tmpl *CellTemplate, attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		*tmpl = NewCellTemplate()
	case ansicode.CharAttributeBold:
		tmpl.SetFlag(CellFlagBold)
	case ansicode.CharAttributeDim:
		tmpl.SetFlag(CellFlagDim)
	case ansicode.CharAttributeItalic:
		tmpl.SetFlag(CellFlagItalic)
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		tmpl.SetFlag(CellFlagUnderline)
	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		tmpl.SetFlag(CellFlagBlink)
	case ansicode.CharAttributeReverse:
		tmpl.SetFlag(CellFlagReverse)
	case ansicode.CharAttributeHidden:
		tmpl.SetFlag(CellFlagHidden)
	case ansicode.CharAttributeStrike:
		tmpl.SetFlag(CellFlagStrike)
	case ansicode.CharAttributeCancelBold:
		tmpl.ClearFlag(CellFlagBold)
	case ansicode.CharAttributeCancelBoldDim:
		tmpl.ClearFlag(CellFlagBold | CellFlagDim)
	case ansicode.CharAttributeCancelItalic:
		tmpl.ClearFlag(CellFlagItalic)
	case ansicode.CharAttributeCancelUnderline:
		tmpl.ClearFlag(CellFlagUnderline)
	case ansicode.CharAttributeCancelBlink:
		tmpl.ClearFlag(CellFlagBlink)
	case ansicode.CharAttributeCancelReverse:
		tmpl.ClearFlag(CellFlagReverse)
	case ansicode.CharAttributeCancelHidden:
		tmpl.ClearFlag(CellFlagHidden)
	case ansicode.CharAttributeCancelStrike:
		tmpl.ClearFlag(CellFlagStrike)
	case ansicode.CharAttributeForeground:
		tmpl.Fg = attributeColor(attr, NamedColorForeground)
	case ansicode.CharAttributeBackground:
		tmpl.Bg = attributeColor(attr, NamedColorBackground)
	}
}

func attributeColor(attr ansicode.TerminalCharAttribute, fallback int) color.Color {
	if attr.RGBColor != nil {
		return color.RGBA{
			R: attr.RGBColor.R,
			G: attr.RGBColor.G,
			B: attr.RGBColor.B,
			A: 255,
		}
	}

	if attr.IndexedColor != nil {
		return &IndexedColor{Index: int(attr.IndexedColor.Index)}
	}

	if attr.NamedColor != nil {
		return &NamedColor{Name: int(*attr.NamedColor)}
	}

	return &NamedColor{Name: fallback}
}

// The remaining handler effects are outside the core's contract: cursor
// addressing, erase/insert/delete, modes, charsets, device queries, and
// graphics all belong to a full dispatcher. They flush pending text so
// surrounding output stays ordered, and are otherwise discarded.

func (d *Dispatcher) ApplicationCommandReceived(data []byte) { d.flush() }

func (d *Dispatcher) Bell() { d.flush() }

func (d *Dispatcher) ClearLine(mode ansicode.LineClearMode) { d.flush() }

func (d *Dispatcher) ClearScreen(mode ansicode.ClearMode) { d.flush() }

func (d *Dispatcher) ClearTabs(mode ansicode.TabulationClearMode) { d.flush() }

func (d *Dispatcher) ClipboardLoad(clipboard byte, terminator string) { d.flush() }

func (d *Dispatcher) ClipboardStore(clipboard byte, data []byte) { d.flush() }

func (d *Dispatcher) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	d.flush()
}

func (d *Dispatcher) Decaln() { d.flush() }

func (d *Dispatcher) DeleteChars(n int) { d.flush() }

func (d *Dispatcher) DeleteLines(n int) { d.flush() }

func (d *Dispatcher) DeviceStatus(n int) { d.flush() }

func (d *Dispatcher) EraseChars(n int) { d.flush() }

func (d *Dispatcher) Goto(row, col int) { d.flush() }

func (d *Dispatcher) GotoCol(col int) { d.flush() }

func (d *Dispatcher) GotoLine(row int) { d.flush() }

func (d *Dispatcher) HorizontalTabSet() { d.flush() }

func (d *Dispatcher) IdentifyTerminal(b byte) { d.flush() }

func (d *Dispatcher) InsertBlank(n int) { d.flush() }

func (d *Dispatcher) InsertBlankLines(n int) { d.flush() }

func (d *Dispatcher) MoveBackward(n int) { d.flush() }

func (d *Dispatcher) MoveBackwardTabs(n int) { d.flush() }

func (d *Dispatcher) MoveDown(n int) { d.flush() }

func (d *Dispatcher) MoveDownCr(n int) { d.flush() }

func (d *Dispatcher) MoveForward(n int) { d.flush() }

func (d *Dispatcher) MoveForwardTabs(n int) { d.flush() }

func (d *Dispatcher) MoveUp(n int) { d.flush() }

func (d *Dispatcher) MoveUpCr(n int) { d.flush() }

func (d *Dispatcher) PopKeyboardMode(n int) { d.flush() }

func (d *Dispatcher) PopTitle() { d.flush() }

func (d *Dispatcher) PrivacyMessageReceived(data []byte) { d.flush() }

func (d *Dispatcher) PushKeyboardMode(mode ansicode.KeyboardMode) { d.flush() }

func (d *Dispatcher) PushTitle() { d.flush() }

func (d *Dispatcher) ReportKeyboardMode() { d.flush() }

func (d *Dispatcher) ReportModifyOtherKeys() { d.flush() }

func (d *Dispatcher) ResetColor(i int) { d.flush() }

func (d *Dispatcher) ResetState() { d.flush() }

func (d *Dispatcher) RestoreCursorPosition() { d.flush() }

func (d *Dispatcher) ReverseIndex() { d.flush() }

func (d *Dispatcher) SaveCursorPosition() { d.flush() }

func (d *Dispatcher) ScrollDown(n int) { d.flush() }

func (d *Dispatcher) ScrollUp(n int) { d.flush() }

func (d *Dispatcher) SetActiveCharset(n int) { d.flush() }

func (d *Dispatcher) SetColor(index int, c color.Color) { d.flush() }

func (d *Dispatcher) SetCursorStyle(style ansicode.CursorStyle) { d.flush() }

func (d *Dispatcher) SetDynamicColor(prefix string, index int, terminator string) { d.flush() }

func (d *Dispatcher) SetHyperlink(hyperlink *ansicode.Hyperlink) { d.flush() }

func (d *Dispatcher) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
	d.flush()
}

func (d *Dispatcher) SetKeypadApplicationMode() { d.flush() }

func (d *Dispatcher) SetMode(mode ansicode.TerminalMode) { d.flush() }

func (d *Dispatcher) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) { d.flush() }

func (d *Dispatcher) SetScrollingRegion(top, bottom int) { d.flush() }

func (d *Dispatcher) SetWorkingDirectory(uri string) { d.flush() }

func (d *Dispatcher) SixelReceived(params [][]uint16, data []byte) { d.flush() }

func (d *Dispatcher) StartOfStringReceived(data []byte) { d.flush() }

func (d *Dispatcher) Substitute() { d.flush() }

func (d *Dispatcher) TextAreaSizeChars() { d.flush() }

func (d *Dispatcher) TextAreaSizePixels() { d.flush() }

func (d *Dispatcher) UnsetKeypadApplicationMode() { d.flush() }

func (d *Dispatcher) UnsetMode(mode ansicode.TerminalMode) { d.flush() }
