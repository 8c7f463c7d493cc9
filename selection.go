package termcore

import (
	"errors"
	"fmt"
)

// ErrCoordOutOfRange is returned when a selection coordinate lies outside
// the visible coordinate space.
var ErrCoordOutOfRange = errors.New("termcore: coordinate out of range")

// SelectionSpan is the selected column range of one buffer-absolute row.
// Both bounds are inclusive.
type SelectionSpan struct {
	Row   int
	Left  int
	Right int
}

// SetSelectionAnchor records the beginning of a selection. The position is
// given in visible-viewport coordinates; the current scroll offset is folded
// in at capture time, so the anchor stays fixed in the buffer even if the
// view later scrolls. A fresh selection starts as a single point: the end is
// set to the same position.
func (t *Terminal) SetSelectionAnchor(pos Position) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	anchor, err := t.offsetCorrectLocked(pos)
	if err != nil {
		return err
	}

	t.selectionAnchor = anchor
	t.renderSelection = true
	t.selectionEnd = anchor

	return nil
}

// SetSelectionEnd records the end of a selection, offset-corrected the same
// way as the anchor. It does not change whether the selection renders.
func (t *Terminal) SetSelectionEnd(pos Position) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	end, err := t.offsetCorrectLocked(pos)
	if err != nil {
		return err
	}

	t.selectionEnd = end

	return nil
}

// offsetCorrectLocked converts a visible-viewport position into the frozen
// coordinate space a selection is stored in. Negative input coordinates are
// a caller error, not a state to silently clamp.
func (t *Terminal) offsetCorrectLocked(pos Position) (Position, error) {
	if pos.Row < 0 || pos.Col < 0 {
		return Position{}, fmt.Errorf("%w: (%d, %d)", ErrCoordOutOfRange, pos.Row, pos.Col)
	}
	return Position{Row: pos.Row - t.scrollOffset, Col: pos.Col}, nil
}

// SetBoxSelection enables or disables rectangular selection mode. The flag
// only affects how spans are computed; existing anchor/end stay put.
func (t *Terminal) SetBoxSelection(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.boxSelection = enabled
}

// BoxSelection returns true if rectangular selection mode is enabled.
func (t *Terminal) BoxSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.boxSelection
}

// HasSelection returns true if a selection is currently renderable.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.renderSelection
}

// ClearSelection resets the selection to the origin and disables rendering
// it. Idempotent.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectionAnchor = Position{}
	t.selectionEnd = Position{}
	t.renderSelection = false
}

// SelectionSpans computes the selected region row by row, in buffer-absolute
// coordinates, for rendering. Returns nil when no selection is renderable.
//
// In box mode every row uses the same column bounds. In the default stream
// mode the first row runs from the start column to the right edge, the last
// row runs from the left edge to the end column, and interior rows span the
// full width; a single-row selection uses both its own columns.
func (t *Terminal) SelectionSpans() []SelectionSpan {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.renderSelection {
		return nil
	}

	// (0,0) is top-left so the vertical comparison is inverted.
	higher := t.selectionAnchor
	lower := t.selectionEnd
	if lower.Row < higher.Row {
		higher, lower = lower, higher
	}

	spans := make([]SelectionSpan, 0, lower.Row-higher.Row+1)
	for row := higher.Row; row <= lower.Row; row++ {
		span := SelectionSpan{
			// Re-add the scrollback length so the span lands on the right
			// buffer row regardless of scrolling since capture.
			Row: row + t.mutableViewport.Top(),
		}

		if t.boxSelection {
			span.Left = min(higher.Col, lower.Col)
			span.Right = max(higher.Col, lower.Col)
		} else {
			span.Left = 0
			span.Right = t.mutableViewport.RightInclusive()
			if row == higher.Row {
				span.Left = higher.Col
			}
			if row == lower.Row {
				span.Right = lower.Col
			}
		}

		spans = append(spans, span)
	}

	return spans
}
