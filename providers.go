package termcore

// ScrollPositionProvider is notified whenever the visible region of the
// buffer changes: content scrolling past the bottom, a user scrollback
// request, or a resize. Invoked synchronously from within a locked mutation;
// implementations must not call back into the terminal.
type ScrollPositionProvider interface {
	// ScrollPositionChanged receives the visible viewport top row, the
	// viewport height, and the total buffer height in rows.
	ScrollPositionChanged(visibleTop, viewHeight, bufferHeight int)
}

// NoopScrollPosition ignores all scroll notifications.
type NoopScrollPosition struct{}

func (NoopScrollPosition) ScrollPositionChanged(visibleTop, viewHeight, bufferHeight int) {}

// TitleProvider handles window title changes.
type TitleProvider interface {
	// TitleChanged is called when the title changes.
	TitleChanged(title string)
}

// NoopTitle ignores all title changes.
type NoopTitle struct{}

func (NoopTitle) TitleChanged(title string) {}

// InputProvider receives the text reconstruction of key events destined for
// the remote endpoint (the pty, a network connection, etc.).
type InputProvider interface {
	// WriteInput is called with the encoded text of a key event.
	WriteInput(text string)
}

// NoopInput discards all outbound input.
type NoopInput struct{}

func (NoopInput) WriteInput(text string) {}

// RecorderInput captures outbound input text in memory. Useful for tests and
// for replaying a session's keystrokes.
type RecorderInput struct {
	inputs []string
}

// WriteInput appends the text to the recording.
func (r *RecorderInput) WriteInput(text string) {
	r.inputs = append(r.inputs, text)
}

// Inputs returns all captured input strings in arrival order.
func (r *RecorderInput) Inputs() []string {
	out := make([]string, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Clear discards all captured input.
func (r *RecorderInput) Clear() {
	r.inputs = nil
}

// RenderTarget is the paint-invalidation sink attached to a cell grid.
// The core calls it when the whole visible region must be repainted.
type RenderTarget interface {
	// TriggerRedrawAll invalidates the entire visible region.
	TriggerRedrawAll()
}

// NoopRenderTarget ignores all invalidations.
type NoopRenderTarget struct{}

func (NoopRenderTarget) TriggerRedrawAll() {}

// Ensure implementations satisfy their interfaces
var _ ScrollPositionProvider = NoopScrollPosition{}
var _ TitleProvider = NoopTitle{}
var _ InputProvider = NoopInput{}
var _ InputProvider = (*RecorderInput)(nil)
var _ RenderTarget = NoopRenderTarget{}
