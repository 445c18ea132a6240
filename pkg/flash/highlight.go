package flash

import "sync"

// HighlightColor is the sub-title color while hovered.
const HighlightColor = "#FF0000"

// Highlighter tracks the hover color of a text element. The empty color
// means "inherit".
type Highlighter struct {
	mu    sync.Mutex
	color string
	apply func(string)
}

// NewHighlighter returns a highlighter that calls apply on every change.
// apply may be nil.
func NewHighlighter(apply func(string)) *Highlighter {
	return &Highlighter{apply: apply}
}

// Over sets the highlight color.
func (h *Highlighter) Over() { h.set(HighlightColor) }

// Out clears the color.
func (h *Highlighter) Out() { h.set("") }

// Color returns the current color.
func (h *Highlighter) Color() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.color
}

func (h *Highlighter) set(c string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.color = c
	if h.apply != nil {
		h.apply(c)
	}
}
