package terminal

// Draw renders the window: tab bar, the active tab's buttons and table,
// the open menu and the status line.
func (w *Window) Draw() {
	w.render()
	w.screen.Show()
}

func (w *Window) render() {
	width, height := w.screen.Size()
	w.screen.Clear()

	w.tabs.Draw(w.screen, 0, width)
	if tab := w.tabs.Active(); tab != nil {
		drawButtons(w.screen, tab, 1, width)
		if tab.Table != nil {
			tab.Table.Draw(w.screen, 1, 2, width-2, height-3)
		}
	}
	if w.menu != nil {
		w.menu.Draw(w.screen)
	}
	w.drawStatus(width, height-1)
}

func (w *Window) drawStatus(width, y int) {
	w.screen.Fill(0, y, width, 1, ' ', styleStatus)
	text := w.status
	if text == "" {
		text = w.title
	}
	n := w.screen.DrawText(1, y, width-2, styleStatus, text)
	if rest := width - n - 3; rest > len(hint) {
		w.screen.DrawText(width-len([]rune(hint))-1, y, len(hint), styleStatus, hint)
	}
}

// SetStatus shows text in the status line until replaced.
func (w *Window) SetStatus(text string) {
	w.status = text
}
