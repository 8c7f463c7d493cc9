package termcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor tracks the write position inside the cell grid (0-based, in
// buffer-absolute coordinates) along with its rendering style.
type Cursor struct {
	Row     int
	Col     int
	Style   CursorStyle
	Visible bool
}

// NewCursor creates a cursor at (0, 0) with blinking block style, visible.
func NewCursor() *Cursor {
	return &Cursor{
		Row:     0,
		Col:     0,
		Style:   CursorStyleBlinkingBlock,
		Visible: true,
	}
}

// Position returns the current cursor position.
func (c *Cursor) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// SetPosition moves the cursor to p.
func (c *Cursor) SetPosition(p Position) {
	c.Row = p.Row
	c.Col = p.Col
}
