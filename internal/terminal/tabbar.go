package terminal

// Tab is one page of the tab group.
type Tab struct {
	// Key is sent as the tab group's value when the tab is activated.
	Key   string
	Title string

	Table   *Table
	Buttons []Button
}

// Button sends an event with Key when clicked.
type Button struct {
	Label string
	Key   string

	x, width int
}

type span struct {
	x, width int
}

// TabBar is the row of tab titles.
type TabBar struct {
	tabs   []*Tab
	active int
	spans  []span
}

func (b *TabBar) Add(t *Tab) {
	b.tabs = append(b.tabs, t)
}

// Active returns the active tab, or nil when there are no tabs.
func (b *TabBar) Active() *Tab {
	if len(b.tabs) == 0 {
		return nil
	}
	return b.tabs[b.active]
}

// Select activates the tab with key and reports whether it exists.
func (b *TabBar) Select(key string) bool {
	for i, t := range b.tabs {
		if t.Key == key {
			b.active = i
			return true
		}
	}
	return false
}

// Cycle activates the next (delta 1) or previous (delta -1) tab.
func (b *TabBar) Cycle(delta int) {
	if n := len(b.tabs); n > 0 {
		b.active = ((b.active+delta)%n + n) % n
	}
}

// At returns the index of the tab title at column x.
func (b *TabBar) At(x int) (int, bool) {
	for i, sp := range b.spans {
		if x >= sp.x && x < sp.x+sp.width {
			return i, true
		}
	}
	return 0, false
}

func (b *TabBar) Draw(s *Screen, y, width int) {
	s.Fill(0, y, width, 1, ' ', styleDefault)
	b.spans = b.spans[:0]
	x := 1
	for i, t := range b.tabs {
		style := styleDefault
		if i == b.active {
			style = styleActive
		}
		n := s.DrawText(x, y, width-x, style, " "+t.Title+" ")
		b.spans = append(b.spans, span{x: x, width: n})
		x += n + 1
	}
}

// drawButtons draws the buttons of t on row y and records their positions.
func drawButtons(s *Screen, t *Tab, y, width int) {
	s.Fill(0, y, width, 1, ' ', styleDefault)
	x := 1
	for i := range t.Buttons {
		btn := &t.Buttons[i]
		btn.x = x
		btn.width = s.DrawText(x, y, width-x, styleButton, "["+btn.Label+"]")
		x += btn.width + 1
	}
}

func buttonAt(t *Tab, x int) (*Button, bool) {
	for i := range t.Buttons {
		btn := &t.Buttons[i]
		if btn.width > 0 && x >= btn.x && x < btn.x+btn.width {
			return btn, true
		}
	}
	return nil, false
}
