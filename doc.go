// Package termcore implements the screen-state core of a terminal emulator:
// the text buffer, cursor, viewport, scrollback, and selection, without any
// display or input surface.
//
// The package is useful for:
//   - Building terminal frontends that keep rendering out of the state layer
//   - Testing scrollback and viewport logic without a GUI
//   - Driving a headless terminal from a PTY and scraping its screen
//
// # Quick Start
//
// Create a terminal and write text to it:
//
//	term := termcore.New()
//	term.WriteString("Hello\r\nWorld")
//	fmt.Println(term.String())
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: The aggregate that owns the buffer, viewport, and selection
//   - [CellGrid]: The text buffer contract; [MemGrid] is the in-memory
//     circular-buffer implementation
//   - [Cell]: A single character with colors and attributes
//   - [Cursor]: Tracks position and rendering style
//   - [Viewport]: A rectangular window over buffer-absolute coordinates
//   - [Dispatcher]: Decodes an ANSI byte stream and feeds the terminal
//
// # Coordinates
//
// All buffer coordinates are absolute: row 0 is the oldest retained line, not
// the top of the screen. The mutable viewport is the writable region at the
// bottom of the buffer; the visible viewport is what a viewer currently sees,
// offset upward by the scroll offset:
//
//	term.AbsoluteTop()  // top of the mutable viewport
//	term.VisibleTop()   // top of what the user sees
//	term.ScrollOffset() // rows scrolled back, 0 when pinned to the bottom
//
// When the buffer is full, writing past the bottom retires the oldest row and
// recycles its storage at the bottom. Retired rows are gone; the scrollback
// depth fixes how many rows above the mutable viewport survive.
//
// # Writing
//
// Terminal implements [io.Writer]. Writes process text and the raw
// line-feed, carriage-return, and backspace controls:
//
//	term := termcore.New(termcore.WithSize(24, 80), termcore.WithScrollback(1000))
//	fmt.Fprintf(term, "line one\r\nline two")
//
// For a raw PTY stream containing escape sequences, wrap the terminal in a
// [Dispatcher], which decodes the stream and forwards text, titles, and
// character attributes:
//
//	d := termcore.NewDispatcher(term)
//	go io.Copy(d, ptmx)
//
// # Scrolling
//
// Viewers scroll by naming the absolute row they want at the top of the view:
//
//	term.UserScrollViewport(term.VisibleTop() - 10) // scroll up 10 rows
//	term.UserScrollViewport(term.AbsoluteTop())     // back to the live bottom
//
// With [WithSnapOnInput] (the default), any key event sent through
// [Terminal.SendKeyEvent] snaps the view back to the bottom first.
//
// # Selection
//
// Selections are anchored in buffer-absolute coordinates and reported as
// per-row spans for rendering:
//
//	term.SetSelectionAnchor(termcore.Position{Row: 2, Col: 4})
//	term.SetSelectionEnd(termcore.Position{Row: 5, Col: 17})
//	for _, span := range term.SelectionSpans() {
//	    // highlight span.Left..span.Right on span.Row
//	}
//
// Box selection ([Terminal.SetBoxSelection]) restricts every span to the
// anchor/end column bounds instead of sweeping full rows.
//
// # Providers
//
// Providers notify the embedder about state changes. All are optional with
// no-op defaults:
//
//   - [ScrollPositionProvider]: visible-region changes (scrolling, resize)
//   - [TitleProvider]: window title changes
//   - [InputProvider]: text produced by key events, destined for the PTY
//   - [RenderTarget]: redraw requests
//
// # Thread Safety
//
// All Terminal methods are safe for concurrent use. Reads take a shared lock
// and writes an exclusive one, so concurrent readers never block each other.
// Provider callbacks run while the lock is held; they must not call back into
// the terminal.
package termcore
