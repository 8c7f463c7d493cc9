package termcore

// Position identifies a cell location in the buffer (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	if p.Row == other.Row && p.Col < other.Col {
		return true
	}
	return false
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Viewport is a rectangular window of rows positioned within the larger
// buffer row space. The left edge is always column 0; only the top row
// moves as output scrolls.
type Viewport struct {
	top    int
	width  int
	height int
}

// ViewportFromDimensions creates a viewport with the given top row and size.
func ViewportFromDimensions(top, width, height int) Viewport {
	return Viewport{top: top, width: width, height: height}
}

// Top returns the first row of the viewport.
func (v Viewport) Top() int {
	return v.top
}

// Width returns the viewport width in columns.
func (v Viewport) Width() int {
	return v.width
}

// Height returns the viewport height in rows.
func (v Viewport) Height() int {
	return v.height
}

// BottomInclusive returns the last row of the viewport.
func (v Viewport) BottomInclusive() int {
	return v.top + v.height - 1
}

// BottomExclusive returns the row just past the viewport.
func (v Viewport) BottomExclusive() int {
	return v.top + v.height
}

// RightInclusive returns the last column of the viewport.
func (v Viewport) RightInclusive() int {
	return v.width - 1
}

// SameDimensions returns true if other has the same width and height.
func (v Viewport) SameDimensions(other Viewport) bool {
	return v.width == other.width && v.height == other.height
}

// Contains returns true if p lies inside the viewport.
func (v Viewport) Contains(p Position) bool {
	return p.Row >= v.top && p.Row < v.top+v.height && p.Col >= 0 && p.Col < v.width
}
