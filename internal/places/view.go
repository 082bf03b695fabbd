package places

// View is the part of the UI the controllers drive.
// All methods are called from the event loop goroutine.
type View interface {
	// UpdateTable replaces the rows of table.
	UpdateTable(table string, rows [][]string)

	// SetTableMenu sets the context menu of table. Items are "Label::event"
	// strings; a leading "!" disables an item and "---" is a separator.
	SetTableMenu(table string, items []string)

	// Popup shows a message until dismissed.
	Popup(title, text string)

	// SetClipboard stores text for pasting.
	SetClipboard(text string)

	// CreateDialog asks for a value per field. ok is false if cancelled.
	CreateDialog(title string, fields []string) (values map[string]string, ok bool)

	// ConfirmDialog shows the given fields of a record and asks for
	// confirmation.
	ConfirmDialog(title string, fields []string, values map[string]string) bool
}
