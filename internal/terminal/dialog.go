package terminal

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// modal runs a nested event loop for a dialog until key returns true or the
// window closes. Posted events stay queued meanwhile.
func (w *Window) modal(draw func(), key func(*tcell.EventKey) bool) {
	for {
		w.render()
		draw()
		w.screen.Show()

		select {
		case <-w.posted.Done():
			return
		case tev, ok := <-w.input:
			if !ok {
				return
			}
			switch ev := tev.(type) {
			case *tcell.EventKey:
				if key(ev) {
					return
				}
			case *tcell.EventResize:
				w.screen.Sync()
			}
		}
	}
}

// dialogBox returns the position and size of a centered dialog.
func (w *Window) dialogBox(lines int) (x, y, width, height int) {
	sw, sh := w.screen.Size()
	width = min(sw-4, 72)
	height = min(sh-2, lines+2)
	return (sw - width) / 2, (sh - height) / 2, width, height
}

// Popup shows text until Enter, Escape or Space is pressed.
func (w *Window) Popup(title, text string) {
	lines := strings.Split(text, "\n")
	w.modal(func() {
		x, y, width, height := w.dialogBox(len(lines) + 2)
		w.screen.Box(x, y, width, height, styleDialog, title)
		for i, line := range lines {
			w.screen.DrawText(x+2, y+1+i, width-4, styleDialog, line)
		}
		w.screen.DrawText(x+width-9, y+height-2, 6, styleActive, "[ OK ]")
	}, func(ev *tcell.EventKey) bool {
		return ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
	})
}

// ConfirmDialog shows fields of values and asks for confirmation with
// Enter or "y"; Escape or "n" cancels.
func (w *Window) ConfirmDialog(title string, fields []string, values map[string]string) bool {
	confirmed := false
	w.modal(func() {
		x, y, width, height := w.dialogBox(len(fields) + 2)
		w.screen.Box(x, y, width, height, styleDialog, title)
		for i, f := range fields {
			n := w.screen.DrawText(x+2, y+1+i, 14, styleDialog, fieldLabel(f))
			w.screen.DrawText(x+2+n+1, y+1+i, width-n-5, styleDialog, values[f])
		}
		w.screen.DrawText(x+2, y+height-2, 8, styleDialog, "[Cancel]")
		w.screen.DrawText(x+11, y+height-2, 8, styleDanger, "[Delete]")
	}, func(ev *tcell.EventKey) bool {
		switch {
		case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
			confirmed = true
			return true
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			return true
		}
		return false
	})
	return confirmed
}

// CreateDialog asks for a value per field. Enter moves to the next field
// and confirms on the last one; Ctrl-S confirms, Escape cancels.
func (w *Window) CreateDialog(title string, fields []string) (map[string]string, bool) {
	if len(fields) == 0 {
		return map[string]string{}, true
	}
	input := make([][]rune, len(fields))
	focus := 0
	confirmed := false

	w.modal(func() {
		x, y, width, height := w.dialogBox(len(fields) + 2)
		w.screen.Box(x, y, width, height, styleDialog, title)
		for i, f := range fields {
			w.screen.DrawText(x+2, y+1+i, 14, styleDialog, fieldLabel(f))
			style := styleField
			if i == focus {
				style = styleActive
			}
			w.screen.Fill(x+17, y+1+i, width-19, 1, ' ', style)
			w.screen.DrawText(x+17, y+1+i, width-19, style, string(input[i]))
		}
		w.screen.DrawText(x+2, y+height-2, 8, styleDialog, "[Cancel]")
		w.screen.DrawText(x+11, y+height-2, 8, styleButton, "[Create]")
	}, func(ev *tcell.EventKey) bool {
		switch ev.Key() {
		case tcell.KeyEscape:
			return true
		case tcell.KeyCtrlS:
			confirmed = true
			return true
		case tcell.KeyEnter:
			if focus == len(fields)-1 {
				confirmed = true
				return true
			}
			focus++
		case tcell.KeyTab, tcell.KeyDown:
			focus = (focus + 1) % len(fields)
		case tcell.KeyBacktab, tcell.KeyUp:
			focus = (focus + len(fields) - 1) % len(fields)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if n := len(input[focus]); n > 0 {
				input[focus] = input[focus][:n-1]
			}
		case tcell.KeyRune:
			input[focus] = append(input[focus], ev.Rune())
		}
		return false
	})

	if !confirmed {
		return nil, false
	}
	values := make(map[string]string, len(fields))
	for i, f := range fields {
		values[f] = strings.TrimSpace(string(input[i]))
	}
	return values, true
}

func fieldLabel(field string) string {
	if field == "id" {
		return "Identifier:"
	}
	r := []rune(field)
	if len(r) == 0 {
		return ":"
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r) + ":"
}
