package main

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminals report presses only, so releases are inferred. Until the first
// auto-repeat arrives a key counts as held for firstRepeat, which covers
// the usual terminal repeat delays. Once repeating, a gap of releaseAfter
// means the key came up.
const (
	firstRepeat  = 700 * time.Millisecond
	releaseAfter = 180 * time.Millisecond
)

// keyName maps a terminal key to the names the router binds
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyCtrlC:
		return "Q"
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(r))
	}
	return ""
}

type heldKey struct {
	last      time.Time
	repeating bool
}

// heldKeys tracks which keys are down by their last press time
type heldKeys struct {
	keys map[string]heldKey
}

func newHeldKeys() *heldKeys {
	return &heldKeys{keys: make(map[string]heldKey)}
}

// press records a press and reports whether the key was already held
func (h *heldKeys) press(name string, now time.Time) bool {
	_, held := h.keys[name]
	h.keys[name] = heldKey{last: now, repeating: held}
	return held
}

// expire returns keys that went quiet and forgets them
func (h *heldKeys) expire(now time.Time) []string {
	var out []string
	for name, k := range h.keys {
		window := firstRepeat
		if k.repeating {
			window = releaseAfter
		}
		if now.Sub(k.last) >= window {
			out = append(out, name)
			delete(h.keys, name)
		}
	}
	return out
}
