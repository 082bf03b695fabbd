package terminal

import "fmt"

func (w *Window) table(key string) *Table {
	for _, t := range w.tabs.tabs {
		if t.Table != nil && t.Table.Key == key {
			return t.Table
		}
	}
	return nil
}

// UpdateTable replaces the rows of the table with key.
func (w *Window) UpdateTable(key string, rows [][]string) {
	t := w.table(key)
	if t == nil {
		w.logger.Warn("update of unknown table %q", key)
		return
	}
	t.SetRows(rows)
	w.status = fmt.Sprintf("%d rows", len(rows))
}

// SetTableMenu sets the popup menu of the table with key.
func (w *Window) SetTableMenu(key string, items []string) {
	t := w.table(key)
	if t == nil {
		w.logger.Warn("menu for unknown table %q", key)
		return
	}
	t.SetMenu(items)
}

// SetClipboard keeps text for Clipboard.
func (w *Window) SetClipboard(text string) {
	w.clipboard = text
	w.status = fmt.Sprintf("copied %d bytes", len(text))
}

// Clipboard returns the last copied text.
func (w *Window) Clipboard() string {
	return w.clipboard
}
