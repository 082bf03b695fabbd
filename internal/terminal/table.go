package terminal

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Table shows rows of cells with a cursor and an extended selection.
type Table struct {
	Key      string
	Headings []string
	Widths   []int

	rows     [][]string
	cursor   int
	top      int
	selected map[int]bool
	menu     []string

	// geometry of the last draw
	x, y, height int
}

// NewTable creates an empty table. Widths are column widths in cells; a
// missing width defaults to the heading length plus padding.
func NewTable(key string, headings []string, widths []int) *Table {
	return &Table{
		Key:      key,
		Headings: headings,
		Widths:   widths,
		selected: make(map[int]bool),
	}
}

// SetRows replaces the rows and clears the selection.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.selected = make(map[int]bool)
	t.clamp()
}

func (t *Table) Rows() [][]string {
	return t.rows
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Cursor() int {
	return t.cursor
}

// Selection returns the selected row indices in ascending order.
func (t *Table) Selection() []int {
	out := make([]int, 0, len(t.selected))
	for i := range t.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SelectOnly moves the cursor to row and makes it the only selected row.
func (t *Table) SelectOnly(row int) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.cursor = row
	t.selected = map[int]bool{row: true}
}

// Toggle adds or removes row from the selection.
func (t *Table) Toggle(row int) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.cursor = row
	if t.selected[row] {
		delete(t.selected, row)
	} else {
		t.selected[row] = true
	}
}

// IsSelected reports whether row is selected.
func (t *Table) IsSelected(row int) bool {
	return t.selected[row]
}

// MoveCursor moves the cursor by delta and reports whether it moved.
func (t *Table) MoveCursor(delta int) bool {
	old := t.cursor
	t.cursor += delta
	t.clamp()
	return t.cursor != old
}

// SetMenu sets the items of the table's popup menu.
func (t *Table) SetMenu(items []string) {
	t.menu = items
}

func (t *Table) Menu() []string {
	return t.menu
}

func (t *Table) clamp() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *Table) width(col int) int {
	if col < len(t.Widths) && t.Widths[col] > 0 {
		return t.Widths[col]
	}
	return uniseg.StringWidth(t.Headings[col]) + 2
}

// Draw draws the heading on row y and as many rows as fit in height-1 lines.
func (t *Table) Draw(s *Screen, x, y, width, height int) {
	t.x, t.y, t.height = x, y, height
	s.Fill(x, y, width, height, ' ', styleDefault)
	if height < 1 {
		return
	}

	visible := height - 1
	if t.cursor < t.top {
		t.top = t.cursor
	}
	if visible > 0 && t.cursor >= t.top+visible {
		t.top = t.cursor - visible + 1
	}

	t.drawRow(s, y, width, t.Headings, styleHeader)
	for i := 0; i < visible && t.top+i < len(t.rows); i++ {
		row := t.top + i
		style := styleDefault
		if t.selected[row] {
			style = styleSelected
		}
		if row == t.cursor {
			style = style.Reverse(true)
		}
		t.drawRow(s, y+1+i, width, t.rows[row], style)
	}
}

func (t *Table) drawRow(s *Screen, y, width int, cells []string, style tcell.Style) {
	cx := t.x
	for col := range t.Headings {
		w := t.width(col)
		if cx-t.x+w > width {
			w = width - (cx - t.x)
		}
		if w <= 0 {
			break
		}
		s.Fill(cx, y, w, 1, ' ', style)
		if col < len(cells) {
			s.DrawText(cx, y, w-1, style, cells[col])
		}
		cx += w
	}
}

// At returns the row and column of the cell at screen position (x, y).
// Row is -1 for the heading.
func (t *Table) At(x, y int) (row, col int, ok bool) {
	if y < t.y || y >= t.y+t.height || x < t.x {
		return 0, 0, false
	}
	cx := t.x
	col = -1
	for c := range t.Headings {
		if w := t.width(c); x < cx+w {
			col = c
			break
		} else {
			cx += w
		}
	}
	if col < 0 {
		return 0, 0, false
	}
	if y == t.y {
		return -1, col, true
	}
	row = t.top + y - t.y - 1
	if row >= len(t.rows) {
		return 0, 0, false
	}
	return row, col, true
}
