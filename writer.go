package termcore

import "unicode/utf16"

const (
	unitBackspace      = 0x08
	unitLineFeed       = 0x0A
	unitCarriageReturn = 0x0D

	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// writeBuffer writes a run of UTF-16 code units to the grid, then moves the
// cursor (and viewport) in accordance with the written text. Callers must
// hold the exclusive lock.
//
// Per unit: snapshot the cursor, classify the unit (line feed, carriage
// return, backspace, or text), compute the proposed cursor position, cycle
// the circular buffer if the proposal runs past the bottom, commit, and keep
// the viewport following the cursor. Scroll notifications fire per unit, not
// batched, so listeners observe every viewport movement.
func (t *Terminal) writeBuffer(units []uint16) {
	cursor := t.grid.Cursor()
	cols, rows := t.grid.Size()

	for i := 0; i < len(units); i++ {
		u := units[i]
		before := cursor.Position()
		proposed := before
		notifyScroll := false

		switch {
		case u == unitLineFeed:
			if t.skipNewline {
				// A previous unit already advanced the row; swallow the
				// duplicate advance once. The latch survives Write calls,
				// so this works across chunked input.
				t.skipNewline = false
				continue
			}
			proposed.Row++

		case u == unitCarriageReturn:
			proposed.Col = 0

		case u == unitBackspace:
			if before.Col == 0 {
				if before.Row == 0 {
					// Nowhere to wrap back to.
					continue
				}
				proposed.Col = cols - 1
				proposed.Row--
			} else {
				proposed.Col--
			}

		default:
			// Surrogate detection is purely range-based: a unit in the
			// reserved range consumes its pair as one grapheme span.
			consume := 1
			if u >= surrogateMin && u <= surrogateMax && i+1 < len(units) {
				consume = 2
			}
			span := utf16.Decode(units[i : i+consume])
			cellDistance := t.grid.Write(span, t.grid.CurrentAttributes())
			i += consume - 1

			proposed.Col += cellDistance
			if proposed.Col >= cols {
				proposed.Row += proposed.Col / cols
				proposed.Col %= cols
			}
		}

		// About to scroll past the bottom of the buffer: cycle it instead.
		if newRows := proposed.Row - rows + 1; newRows > 0 {
			for dy := 0; dy < newRows; dy++ {
				t.grid.IncrementCircularBuffer()
				proposed.Row--
			}
			notifyScroll = true
		}

		cursor.SetPosition(proposed)

		after := cursor.Position()
		t.skipNewline = after.Row == before.Row+1

		// Move the viewport down if the cursor moved below it.
		if after.Row > t.mutableViewport.BottomInclusive() {
			newTop := max(0, after.Row-(t.mutableViewport.Height()-1))
			if newTop != t.mutableViewport.Top() {
				t.mutableViewport = ViewportFromDimensions(newTop, t.mutableViewport.Width(), t.mutableViewport.Height())
				notifyScroll = true
			}
		}

		if notifyScroll {
			t.grid.RenderTarget().TriggerRedrawAll()
			t.notifyScrollLocked()
		}
	}
}
