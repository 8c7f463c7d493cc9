package termcore

import (
	"errors"
	"fmt"

	"github.com/unilibs/uniwidth"
)

// ErrInvalidDimensions is returned when a resize is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("termcore: invalid grid dimensions")

// CellGrid is the character-cell storage the terminal core writes into.
// It is a fixed-width grid whose rows are reused circularly: once output
// reaches the bottom, the oldest row is retired and becomes the new blank
// bottom row. The grid owns the cursor object; callers mutate the cursor
// position, the grid never moves it on its own.
//
// References obtained from a grid (cursor, cells) must not outlive the
// locked operation that obtained them.
type CellGrid interface {
	// Cursor returns the grid's cursor object.
	Cursor() *Cursor
	// Size returns the grid dimensions in columns and rows.
	Size() (cols, rows int)
	// Write stores the span at the cursor position using the given
	// attributes and returns the cell distance consumed: the number of
	// display columns the write advanced, which may exceed the rune count
	// for wide glyphs. The cursor itself is not moved.
	Write(span []rune, attrs CellTemplate) int
	// ResizeTraditional changes the grid dimensions, preserving content at
	// the top-left. Returns ErrInvalidDimensions for non-positive sizes.
	ResizeTraditional(cols, rows int) error
	// IncrementCircularBuffer retires the top row: every row shifts up by
	// one and the recycled row reappears blank at the bottom.
	IncrementCircularBuffer()
	// CurrentAttributes returns the attribute template stamped onto
	// newly written cells.
	CurrentAttributes() CellTemplate
	// SetCurrentAttributes replaces the attribute template.
	SetCurrentAttributes(attrs CellTemplate)
	// Cell returns the cell at (row, col), or nil if out of bounds.
	Cell(row, col int) *Cell
	// RenderTarget returns the paint-invalidation sink for this grid.
	RenderTarget() RenderTarget
	// SetRenderTarget replaces the paint-invalidation sink.
	SetRenderTarget(target RenderTarget)
}

// MemGrid is the built-in in-memory CellGrid.
type MemGrid struct {
	cols   int
	rows   int
	cells  [][]Cell
	cursor *Cursor
	attrs  CellTemplate
	target RenderTarget
}

var _ CellGrid = (*MemGrid)(nil)

// NewMemGrid creates a grid with the given dimensions, a cursor at (0, 0),
// and a no-op render target.
func NewMemGrid(cols, rows int) *MemGrid {
	g := &MemGrid{
		cols:   cols,
		rows:   rows,
		cells:  make([][]Cell, rows),
		cursor: NewCursor(),
		attrs:  NewCellTemplate(),
		target: NoopRenderTarget{},
	}

	for i := range g.cells {
		g.cells[i] = newRow(cols)
	}

	return g
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Cursor returns the grid's cursor object.
func (g *MemGrid) Cursor() *Cursor {
	return g.cursor
}

// Size returns the grid dimensions in columns and rows.
func (g *MemGrid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (g *MemGrid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

// CurrentAttributes returns the attribute template for new cells.
func (g *MemGrid) CurrentAttributes() CellTemplate {
	return g.attrs
}

// SetCurrentAttributes replaces the attribute template.
func (g *MemGrid) SetCurrentAttributes(attrs CellTemplate) {
	g.attrs = attrs
}

// RenderTarget returns the paint-invalidation sink.
func (g *MemGrid) RenderTarget() RenderTarget {
	return g.target
}

// SetRenderTarget replaces the paint-invalidation sink.
// A nil target is replaced with a no-op.
func (g *MemGrid) SetRenderTarget(target RenderTarget) {
	if target == nil {
		target = NoopRenderTarget{}
	}
	g.target = target
}

// Write stores the span starting at the cursor position and returns the cell
// distance consumed. Writing past the right edge continues on the following
// row; the pad cells emitted to keep a wide glyph from straddling the edge
// count toward the distance. Cells past the last row are clipped, but the
// distance still accounts for them so the caller's cursor arithmetic stays
// consistent (the caller retires rows afterwards).
func (g *MemGrid) Write(span []rune, attrs CellTemplate) int {
	row := g.cursor.Row
	col := g.cursor.Col
	dist := 0

	for _, r := range span {
		w := uniwidth.RuneWidth(r)
		if w == 0 {
			// Combining marks are not attached to the previous cell.
			continue
		}

		if col+w > g.cols {
			// Pad out the row so the glyph starts on the next one.
			for col < g.cols {
				g.setCell(row, col, ' ', attrs, 0)
				col++
				dist++
			}
			row++
			col = 0
		}

		g.setCell(row, col, r, attrs, widthFlag(w))
		if w == 2 {
			g.setCell(row, col+1, ' ', attrs, CellFlagWideCharSpacer)
		}
		col += w
		dist += w

		if col >= g.cols {
			row++
			col = 0
		}
	}

	return dist
}

func widthFlag(w int) CellFlags {
	if w == 2 {
		return CellFlagWideChar
	}
	return 0
}

func (g *MemGrid) setCell(row, col int, r rune, attrs CellTemplate, extra CellFlags) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	cell := &g.cells[row][col]
	cell.Char = r
	cell.Fg = attrs.Fg
	cell.Bg = attrs.Bg
	cell.Flags = attrs.Flags&^(CellFlagWideChar|CellFlagWideCharSpacer) | extra
}

// IncrementCircularBuffer retires the top row. The row storage is recycled:
// it is cleared and reattached at the bottom, so the grid never reallocates
// during steady-state scrolling.
func (g *MemGrid) IncrementCircularBuffer() {
	if g.rows == 0 {
		return
	}

	recycled := g.cells[0]
	copy(g.cells, g.cells[1:])
	for i := range recycled {
		recycled[i].Reset()
	}
	g.cells[g.rows-1] = recycled
}

// ResizeTraditional changes grid dimensions, preserving existing cells where
// possible. Content is kept at the top-left corner; when shrinking, the
// bottom/right content is lost, and when growing, new blank cells appear at
// the bottom/right. The cursor is clamped into the new bounds.
func (g *MemGrid) ResizeTraditional(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = newRow(cols)
		if i < g.rows {
			copy(newCells[i], g.cells[i][:min(cols, g.cols)])
		}
	}

	g.cells = newCells
	g.cols = cols
	g.rows = rows

	if g.cursor.Row >= rows {
		g.cursor.Row = rows - 1
	}
	if g.cursor.Col >= cols {
		g.cursor.Col = cols - 1
	}

	return nil
}

// LineContent returns the text content of a row, trimming trailing spaces.
// Wide character spacers are skipped. Returns empty string if the row is
// blank or out of bounds.
func (g *MemGrid) LineContent(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}

	lastNonSpace := -1
	for col := g.cols - 1; col >= 0; col-- {
		cell := &g.cells[row][col]
		if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := range g.cells[row][:lastNonSpace+1] {
		cell := &g.cells[row][col]
		if cell.IsWideSpacer() {
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
