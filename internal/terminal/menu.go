package terminal

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultMenuDelimiter separates a menu item's label from its event.
const DefaultMenuDelimiter = "::"

const (
	menuSeparator = "---"
	menuDisabled  = "!"
)

// MenuEntry is a parsed menu item.
type MenuEntry struct {
	// Label is the text shown.
	Label string
	// Event is the event key sent when the entry is chosen: the item
	// without its disabled marker.
	Event     string
	Disabled  bool
	Separator bool
}

// ParseMenuItem parses "Label<delimiter>event" items. A leading "!"
// disables the item and "---" is a separator. Items without the delimiter
// use the whole item as label and event. An empty delimiter means
// DefaultMenuDelimiter.
func ParseMenuItem(item, delimiter string) MenuEntry {
	if delimiter == "" {
		delimiter = DefaultMenuDelimiter
	}
	if item == menuSeparator {
		return MenuEntry{Separator: true}
	}
	e := MenuEntry{}
	if strings.HasPrefix(item, menuDisabled) {
		e.Disabled = true
		item = item[len(menuDisabled):]
	}
	e.Event = item
	e.Label = item
	if idx := strings.LastIndex(item, delimiter); idx >= 0 {
		e.Label = item[:idx]
	}
	return e
}

// Menu is an open popup menu.
type Menu struct {
	Table   string
	entries []MenuEntry
	cursor  int
	x, y    int
	width   int
}

// NewMenu opens a menu for table at (x, y). The cursor starts on the first
// enabled entry.
func NewMenu(table string, items []string, delimiter string, x, y int) *Menu {
	m := &Menu{Table: table, x: x, y: y, cursor: -1}
	for _, item := range items {
		e := ParseMenuItem(item, delimiter)
		m.entries = append(m.entries, e)
		if w := uniseg.StringWidth(e.Label) + 4; w > m.width {
			m.width = w
		}
	}
	m.Move(1)
	return m
}

// Width returns the width of the menu box in cells.
func (m *Menu) Width() int {
	return m.width
}

func (m *Menu) Entries() []MenuEntry {
	return m.entries
}

// Move moves the cursor to the next selectable entry in direction delta.
func (m *Menu) Move(delta int) {
	n := len(m.entries)
	for i, pos := 0, m.cursor; i < n; i++ {
		pos = ((pos+delta)%n + n) % n
		if e := m.entries[pos]; !e.Disabled && !e.Separator {
			m.cursor = pos
			return
		}
	}
}

// Current returns the entry under the cursor.
func (m *Menu) Current() (MenuEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return MenuEntry{}, false
	}
	return m.entries[m.cursor], true
}

// At returns the selectable entry at screen position (x, y).
func (m *Menu) At(x, y int) (MenuEntry, bool) {
	i := y - m.y - 1
	if x < m.x || x >= m.x+m.width || i < 0 || i >= len(m.entries) {
		return MenuEntry{}, false
	}
	e := m.entries[i]
	if e.Disabled || e.Separator {
		return MenuEntry{}, false
	}
	return e, true
}

func (m *Menu) Draw(s *Screen) {
	s.Box(m.x, m.y, m.width, len(m.entries)+2, styleDialog, "")
	for i, e := range m.entries {
		y := m.y + 1 + i
		switch {
		case e.Separator:
			s.Fill(m.x+1, y, m.width-2, 1, '-', styleDisabled)
		case e.Disabled:
			s.DrawText(m.x+2, y, m.width-3, styleDisabled, e.Label)
		case i == m.cursor:
			s.Fill(m.x+1, y, m.width-2, 1, ' ', styleCursor)
			s.DrawText(m.x+2, y, m.width-3, styleCursor, e.Label)
		default:
			s.DrawText(m.x+2, y, m.width-3, styleDefault, e.Label)
		}
	}
}
