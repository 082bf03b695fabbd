package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// NormalizeKey canonicalizes a key name: "Ctrl+N" and "ctrl-n" are the
// same key. Single characters keep their case.
func NormalizeKey(name string) string {
	if len([]rune(name)) == 1 {
		return name
	}
	return strings.ToLower(strings.ReplaceAll(name, "+", "-"))
}

// KeyName returns the normalized name of a key event, e.g. "f5",
// "ctrl-n", "alt-x" or "n".
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		name := string(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "alt-" + name
		}
		return name
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return NormalizeKey(name)
	}
	return ""
}
