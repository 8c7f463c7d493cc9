package termcore

import (
	"fmt"
	"image/color"
	"sync"
	"unicode/utf16"
)

const (
	// DEFAULT_ROWS is the default viewport height.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default viewport width.
	DEFAULT_COLS = 80
	// DEFAULT_SCROLLBACK is the default number of scrollback rows.
	DEFAULT_SCROLLBACK = 100
)

// Terminal is the screen/state core of a terminal emulator: it owns the
// logical notion of what the terminal currently shows, independent of how
// bytes were parsed and independent of how pixels get drawn. It positions
// the cursor as committed text arrives, scrolls the circular cell grid,
// maintains the viewport window into the buffer, tracks a user selection,
// and serializes all of it behind a single reader/writer lock.
//
// Escape-sequence parsing is not done here; see Dispatcher for the adapter
// that feeds decoded effects into this core.
type Terminal struct {
	mu sync.RWMutex

	// Cell storage
	grid CellGrid

	// Viewport and scrollback
	mutableViewport Viewport
	scrollbackRows  int
	scrollOffset    int

	// Stream writer state. The latch persists across Write calls so
	// line-feed suppression works on chunked input.
	skipNewline bool

	// Input behavior
	snapOnInput bool

	// Title
	title string

	// Colors
	colorTable [256]color.RGBA
	defaultFg  color.RGBA
	defaultBg  color.RGBA

	// Selection, in buffer-absolute rows
	selectionAnchor Position
	selectionEnd    Position
	boxSelection    bool
	renderSelection bool

	// Providers
	scrollProvider ScrollPositionProvider
	titleProvider  TitleProvider
	inputProvider  InputProvider
}

// Settings is the flat configuration record consumed at construction.
type Settings struct {
	// InitialRows and InitialCols give the viewport size.
	InitialRows int
	InitialCols int

	// HistorySize is the number of scrollback rows kept above the viewport.
	HistorySize int

	// DefaultForeground and DefaultBackground are the colors used when a
	// cell carries no explicit color.
	DefaultForeground color.RGBA
	DefaultBackground color.RGBA

	// ColorTable overrides the first 16 entries of the 256-color table.
	ColorTable [16]color.RGBA

	// SnapOnInput resets the scroll offset to the live output whenever a
	// key event is sent.
	SnapOnInput bool
}

// DefaultSettings returns the baseline configuration: 24x80, 100 rows of
// scrollback, the Campbell palette, and snap-on-input enabled.
func DefaultSettings() Settings {
	return Settings{
		InitialRows:       DEFAULT_ROWS,
		InitialCols:       DEFAULT_COLS,
		HistorySize:       DEFAULT_SCROLLBACK,
		DefaultForeground: DefaultForeground,
		DefaultBackground: DefaultBackground,
		ColorTable:        CampbellPalette,
		SnapOnInput:       true,
	}
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the viewport dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}

	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(t *Terminal) {
		t.mutableViewport = ViewportFromDimensions(0, cols, rows)
	}
}

// WithScrollback sets the number of scrollback rows kept above the viewport.
// Negative values are treated as zero.
func WithScrollback(rows int) Option {
	if rows < 0 {
		rows = 0
	}

	return func(t *Terminal) {
		t.scrollbackRows = rows
	}
}

// WithSnapOnInput controls whether sending a key event snaps the view back
// to the live output. Default is true.
func WithSnapOnInput(snap bool) Option {
	return func(t *Terminal) {
		t.snapOnInput = snap
	}
}

// WithColors sets the default foreground and background colors.
func WithColors(fg, bg color.RGBA) Option {
	return func(t *Terminal) {
		t.defaultFg = fg
		t.defaultBg = bg
	}
}

// WithPalette overrides the first 16 entries of the color table.
// Defaults to the Campbell scheme.
func WithPalette(named [16]color.RGBA) Option {
	return func(t *Terminal) {
		t.colorTable = buildColorTable(named)
	}
}

// WithGrid sets a custom cell grid implementation. The grid must already be
// sized to (cols, rows+scrollback); the terminal does not resize it at
// construction. Defaults to an in-memory grid.
func WithGrid(g CellGrid) Option {
	return func(t *Terminal) {
		t.grid = g
	}
}

// WithScrollPosition sets the handler for scroll-position change events.
// Defaults to a no-op if not set.
func WithScrollPosition(p ScrollPositionProvider) Option {
	return func(t *Terminal) {
		t.scrollProvider = p
	}
}

// WithTitle sets the handler for window title changes.
// Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithInput sets the handler for outbound input text (encoded key events).
// Defaults to a no-op if not set.
func WithInput(p InputProvider) Option {
	return func(t *Terminal) {
		t.inputProvider = p
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80 with 100 rows of scrollback, the Campbell palette, and
// snap-on-input enabled.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		mutableViewport: ViewportFromDimensions(0, DEFAULT_COLS, DEFAULT_ROWS),
		scrollbackRows:  DEFAULT_SCROLLBACK,
		snapOnInput:     true,
		colorTable:      buildColorTable(CampbellPalette),
		defaultFg:       DefaultForeground,
		defaultBg:       DefaultBackground,
		scrollProvider:  NoopScrollPosition{},
		titleProvider:   NoopTitle{},
		inputProvider:   NoopInput{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.grid == nil {
		t.grid = NewMemGrid(t.mutableViewport.Width(), t.mutableViewport.Height()+t.scrollbackRows)
	}

	return t
}

// NewFromSettings creates a terminal from a flat settings record, plus any
// further options.
func NewFromSettings(s Settings, opts ...Option) *Terminal {
	base := []Option{
		WithSize(s.InitialRows, s.InitialCols),
		WithScrollback(s.HistorySize),
		WithSnapOnInput(s.SnapOnInput),
		WithColors(s.DefaultForeground, s.DefaultBackground),
		WithPalette(s.ColorTable),
	}
	return New(append(base, opts...)...)
}

// Rows returns the viewport height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mutableViewport.Height()
}

// Cols returns the viewport width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mutableViewport.Width()
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// SetTitle updates the window title and notifies the title provider.
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title = title
	t.titleProvider.TitleChanged(title)
}

// ColorTableEntry returns the color at the given table index (0-255).
// The table is fixed after construction.
func (t *Terminal) ColorTableEntry(index int) (color.RGBA, bool) {
	if index < 0 || index >= len(t.colorTable) {
		return color.RGBA{}, false
	}
	return t.colorTable[index], true
}

// AbsoluteTop returns the top row of the mutable viewport in buffer-absolute
// coordinates. By definition this also equals the current scrollback length.
func (t *Terminal) AbsoluteTop() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mutableViewport.Top()
}

// ScrollOffset returns the number of rows the view is scrolled back from the
// live output. Zero means pinned to live output.
func (t *Terminal) ScrollOffset() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollOffset
}

// VisibleTop returns the first visible row of the buffer:
// AbsoluteTop minus the scroll offset, clamped at row 0.
func (t *Terminal) VisibleTop() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleTopLocked()
}

func (t *Terminal) visibleTopLocked() int {
	return max(0, t.mutableViewport.Top()-t.scrollOffset)
}

// VisibleViewport returns the viewport shifted up by the current scroll
// offset. This is what rendering reads.
func (t *Terminal) VisibleViewport() Viewport {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleViewportLocked()
}

func (t *Terminal) visibleViewportLocked() Viewport {
	return ViewportFromDimensions(t.visibleTopLocked(), t.mutableViewport.Width(), t.mutableViewport.Height())
}

// BufferHeight returns the total height of the written buffer region:
// the row just past the mutable viewport.
func (t *Terminal) BufferHeight() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mutableViewport.BottomExclusive()
}

// CursorPos returns the current cursor position in buffer-absolute
// coordinates (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.grid.Cursor()
	return c.Row, c.Col
}

// Cell returns the cell at (row, col) in buffer-absolute coordinates.
// Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Cell(row, col)
}

// Resize changes the viewport dimensions as the result of user interaction.
// Returns false with a nil error when the size is unchanged (nothing is
// mutated and no notification fires). On success the grid is resized to
// (cols, rows+scrollback), the viewport is recomputed at origin 0, and the
// scroll-position provider is notified. If the grid resize fails, neither
// the grid nor the viewport is changed.
func (t *Terminal) Resize(rows, cols int) (bool, error) {
	if rows <= 0 || cols <= 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if rows == t.mutableViewport.Height() && cols == t.mutableViewport.Width() {
		return false, nil
	}

	// Grid first: a failed grid resize must leave the viewport untouched.
	if err := t.grid.ResizeTraditional(cols, rows+t.scrollbackRows); err != nil {
		return false, err
	}

	t.mutableViewport = ViewportFromDimensions(0, cols, rows)
	t.notifyScrollLocked()

	return true, nil
}

// UserScrollViewport applies a user scrollback request: the requested top row
// is clamped at 0, converted to an offset from the live output, and the whole
// view is invalidated. Requests below the live output pin the view to it.
// The live output position itself never moves.
func (t *Terminal) UserScrollViewport(viewTop int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	clampedTop := max(0, viewTop)
	t.scrollOffset = max(0, t.mutableViewport.Top()-clampedTop)
	t.grid.RenderTarget().TriggerRedrawAll()
	t.notifyScrollLocked()
}

// Write processes committed text: printable characters plus the raw
// line-feed, carriage-return, and backspace controls. Escape sequences are
// not interpreted here; feed raw pty output through a Dispatcher instead.
// Implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) {
	t.WriteString(string(p))
	return len(p), nil
}

// WriteString is a convenience method that converts the string to UTF-16
// code units and calls WriteUnits.
func (t *Terminal) WriteString(s string) {
	t.WriteUnits(utf16.Encode([]rune(s)))
}

// WriteUnits processes a sequence of UTF-16 code units under the exclusive
// lock. This is the sole mutation entry point for committed text.
func (t *Terminal) WriteUnits(units []uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeBuffer(units)
}

// withAttributes mutates the attribute template stamped onto subsequent
// text, under the exclusive lock.
func (t *Terminal) withAttributes(f func(*CellTemplate)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tmpl := t.grid.CurrentAttributes()
	f(&tmpl)
	t.grid.SetCurrentAttributes(tmpl)
}

// notifyScrollLocked fires the scroll-position provider with the current
// visible viewport. Callers must hold the exclusive lock.
func (t *Terminal) notifyScrollLocked() {
	visible := t.visibleViewportLocked()
	t.scrollProvider.ScrollPositionChanged(visible.Top(), visible.Height(), t.mutableViewport.BottomExclusive())
}

// LineContent returns the text content of a buffer-absolute row, trimming
// trailing spaces. Wide character spacers are skipped.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lineContentLocked(row)
}

func (t *Terminal) lineContentLocked(row int) string {
	cols, rows := t.grid.Size()
	if row < 0 || row >= rows {
		return ""
	}

	lastNonSpace := -1
	for col := cols - 1; col >= 0; col-- {
		cell := t.grid.Cell(row, col)
		if cell != nil && cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := 0; col <= lastNonSpace; col++ {
		cell := t.grid.Cell(row, col)
		if cell == nil || cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}

	return string(runes)
}

// String returns the visible viewport content as a newline-separated string.
// Trailing empty lines are omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	visible := t.visibleViewportLocked()

	var lines []string
	lastNonEmpty := -1

	for row := visible.Top(); row < visible.BottomExclusive(); row++ {
		line := t.lineContentLocked(row)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = len(lines) - 1
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}

	return result
}

// SetScrollPositionProvider sets the scroll-position provider at runtime.
func (t *Terminal) SetScrollPositionProvider(p ScrollPositionProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		p = NoopScrollPosition{}
	}
	t.scrollProvider = p
}

// SetTitleProvider sets the title provider at runtime.
func (t *Terminal) SetTitleProvider(p TitleProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		p = NoopTitle{}
	}
	t.titleProvider = p
}

// SetInputProvider sets the outbound input provider at runtime.
func (t *Terminal) SetInputProvider(p InputProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		p = NoopInput{}
	}
	t.inputProvider = p
}

// SetRenderTarget sets the grid's paint-invalidation sink at runtime.
func (t *Terminal) SetRenderTarget(target RenderTarget) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if target == nil {
		target = NoopRenderTarget{}
	}
	t.grid.SetRenderTarget(target)
}
