package termcore

// Modifiers is a bitmask of modifier keys held during a key event.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// Has returns true if the given modifier bits are all set.
func (m Modifiers) Has(mask Modifiers) bool {
	return m&mask == mask
}

// SendKeyEvent delivers a key event from the UI. If snap-on-input is enabled
// and the view is scrolled back, the scroll offset resets to the live output
// and a scroll notification fires. Key events carrying a character payload
// are reconstructed as text and forwarded to the input provider; events with
// no character (ch == 0: navigation and modifier-only keys) are dropped.
// Returns true if the event produced outbound input.
func (t *Terminal) SendKeyEvent(ch rune, mods Modifiers) bool {
	t.mu.Lock()
	if t.snapOnInput && t.scrollOffset != 0 {
		t.scrollOffset = 0
		t.notifyScrollLocked()
	}
	provider := t.inputProvider
	t.mu.Unlock()

	if ch == 0 {
		return false
	}

	text := string(ch)
	if mods.Has(ModCtrl) && ch >= 'a' && ch <= 'z' {
		// Control chord: fold the letter down to its C0 control code.
		text = string(rune(ch-'a') + 1)
	}

	provider.WriteInput(text)
	return true
}

// SendText forwards already-encoded text (a paste, for example) to the input
// provider, applying the same snap-on-input behavior as SendKeyEvent.
func (t *Terminal) SendText(text string) {
	t.mu.Lock()
	if t.snapOnInput && t.scrollOffset != 0 {
		t.scrollOffset = 0
		t.notifyScrollLocked()
	}
	provider := t.inputProvider
	t.mu.Unlock()

	if text == "" {
		return
	}
	provider.WriteInput(text)
}
