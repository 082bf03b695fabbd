package window

import (
	"fmt"
	"sort"
)

// TableClicked is the Detail kind of a click on a table cell.
const TableClicked = "+CLICKED+"

// OperationKey holds the ID of the long operation that posted an event.
const OperationKey = "+OPERATION+"

// Values is the snapshot of element values delivered with an event.
// Keys are element keys; for posted events the event key maps to the posted
// value.
type Values map[string]any

// Get returns the value stored under key and whether it exists.
func (v Values) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v[key]
	return val, ok
}

// String returns the value under key as a string.
// Non-string values are formatted with %v; missing keys yield "".
func (v Values) String(key string) string {
	val, ok := v.Get(key)
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

// Operation returns the long operation ID, or "" for other events.
func (v Values) Operation() string {
	return v.String(OperationKey)
}

// Ints returns the value under key as an int slice, e.g. table selections.
func (v Values) Ints(key string) []int {
	val, ok := v.Get(key)
	if !ok {
		return nil
	}
	switch t := val.(type) {
	case []int:
		return t
	case int:
		return []int{t}
	case []any:
		out := make([]int, 0, len(t))
		for _, item := range t {
			if n, ok := item.(int); ok {
				out = append(out, n)
			}
		}
		return out
	default:
		return nil
	}
}

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Keys returns the sorted keys of v.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Detail describes a compound event such as a table click.
type Detail struct {
	Kind string
	Row  int
	Col  int
}

// Event is one item read from a window.
type Event struct {
	// Key is the key of the element that fired. For compound events it is
	// the first element of the compound key; for menu items it is the full
	// menu entry, e.g. "Copy::onCopy".
	Key string

	// Detail is non-nil for compound events.
	Detail *Detail

	// Values is the element value snapshot.
	Values Values
}

// IsCompound reports whether the event carries a compound key.
func (e Event) IsCompound() bool {
	return e.Detail != nil
}

// String renders the event key the way it is logged.
func (e Event) String() string {
	if e.Detail != nil {
		return fmt.Sprintf("(%q, %q, (%d, %d))", e.Key, e.Detail.Kind, e.Detail.Row, e.Detail.Col)
	}
	return fmt.Sprintf("%q", e.Key)
}

// NewTableClick builds the compound event emitted when a table cell is clicked.
func NewTableClick(table string, row, col int, values Values) Event {
	return Event{
		Key:    table,
		Detail: &Detail{Kind: TableClicked, Row: row, Col: col},
		Values: values,
	}
}
