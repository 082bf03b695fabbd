package terminal

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseMenuItem(t *testing.T) {
	tests := []struct {
		item string
		want MenuEntry
	}{
		{"Copy::Trails.onCopy", MenuEntry{Label: "Copy", Event: "Copy::Trails.onCopy"}},
		{"!Delete…::Trails.onDelete", MenuEntry{Label: "Delete…", Event: "Delete…::Trails.onDelete", Disabled: true}},
		{"---", MenuEntry{Separator: true}},
		{"Refresh", MenuEntry{Label: "Refresh", Event: "Refresh"}},
		{"a::b::c", MenuEntry{Label: "a::b", Event: "a::b::c"}},
	}

	for _, tt := range tests {
		if got := ParseMenuItem(tt.item, ""); got != tt.want {
			t.Errorf("ParseMenuItem(%q) = %+v, want %+v", tt.item, got, tt.want)
		}
	}
}

func TestParseMenuItemDelimiter(t *testing.T) {
	got := ParseMenuItem("!Copy|Trails.onCopy", "|")
	want := MenuEntry{Label: "Copy", Event: "Copy|Trails.onCopy", Disabled: true}
	if got != want {
		t.Errorf("ParseMenuItem() = %+v, want %+v", got, want)
	}
	if got := ParseMenuItem("Copy::c", "|"); got.Label != "Copy::c" {
		t.Errorf("default delimiter used with %q: %+v", "|", got)
	}
}

func TestMenuWidthCountsCells(t *testing.T) {
	m := NewMenu("t", []string{"Create…::c"}, "", 0, 0)
	if got := m.Width(); got != len([]rune("Create…"))+4 {
		t.Errorf("Width() = %d, want %d", got, len([]rune("Create…"))+4)
	}
}

func TestMenuMoveSkipsDisabled(t *testing.T) {
	m := NewMenu("t", []string{"Copy::c", "---", "!Create::n", "Delete::d"}, "", 0, 0)

	cur, ok := m.Current()
	if !ok || cur.Label != "Copy" {
		t.Fatalf("Current() = %+v, %v", cur, ok)
	}
	m.Move(1)
	if cur, _ = m.Current(); cur.Label != "Delete" {
		t.Errorf("after Move(1) = %q, want Delete", cur.Label)
	}
	m.Move(1)
	if cur, _ = m.Current(); cur.Label != "Copy" {
		t.Errorf("wrap around = %q, want Copy", cur.Label)
	}
	m.Move(-1)
	if cur, _ = m.Current(); cur.Label != "Delete" {
		t.Errorf("after Move(-1) = %q, want Delete", cur.Label)
	}
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu("t", []string{"!Copy::c", "---"}, "", 0, 0)
	if _, ok := m.Current(); ok {
		t.Error("Current() should be empty when nothing is enabled")
	}
}

func TestMenuAt(t *testing.T) {
	m := NewMenu("t", []string{"Copy::c", "---", "!Create::n"}, "", 10, 5)

	if e, ok := m.At(12, 6); !ok || e.Label != "Copy" {
		t.Errorf("At(12, 6) = %+v, %v", e, ok)
	}
	if _, ok := m.At(12, 7); ok {
		t.Error("separator should not be selectable")
	}
	if _, ok := m.At(12, 8); ok {
		t.Error("disabled entry should not be selectable")
	}
	if _, ok := m.At(2, 6); ok {
		t.Error("outside the menu")
	}
}

func TestTableSelection(t *testing.T) {
	tbl := NewTable("t", []string{"id"}, nil)
	tbl.SetRows([][]string{{"1"}, {"2"}, {"3"}})

	tbl.SelectOnly(2)
	tbl.Toggle(0)
	if got := tbl.Selection(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Selection() = %v, want [0 2]", got)
	}
	tbl.Toggle(2)
	if got := tbl.Selection(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Selection() = %v, want [0]", got)
	}

	tbl.SelectOnly(7)
	if got := tbl.Selection(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("out of range select changed selection to %v", got)
	}

	tbl.SetRows([][]string{{"1"}})
	if len(tbl.Selection()) != 0 || tbl.Cursor() != 0 {
		t.Errorf("SetRows should reset selection and clamp cursor")
	}
}

func TestTableMoveCursor(t *testing.T) {
	tbl := NewTable("t", []string{"id"}, nil)
	if tbl.MoveCursor(1) {
		t.Error("empty table cursor should not move")
	}

	tbl.SetRows([][]string{{"1"}, {"2"}})
	if !tbl.MoveCursor(1) || tbl.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", tbl.Cursor())
	}
	if tbl.MoveCursor(10) {
		t.Error("cursor moved past the last row")
	}
	if !tbl.MoveCursor(-10) || tbl.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", tbl.Cursor())
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Ctrl+N": "ctrl-n",
		"ctrl-n": "ctrl-n",
		"F5":     "f5",
		"q":      "q",
		"Q":      "Q",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), "n"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt-x"},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "f5"},
		{tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), "ctrl-n"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.want {
			t.Errorf("KeyName() = %q, want %q", got, tt.want)
		}
	}
}
