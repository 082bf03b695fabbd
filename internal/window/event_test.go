package window

import (
	"reflect"
	"testing"
)

func TestValuesGetters(t *testing.T) {
	v := Values{
		"name":  "Bruges",
		"id":    2,
		"rows":  []int{0, 2},
		"mixed": []any{1, "x", 3},
	}

	if got := v.String("name"); got != "Bruges" {
		t.Errorf("String(name) = %q", got)
	}
	if got := v.String("id"); got != "2" {
		t.Errorf("String(id) = %q", got)
	}
	if got := v.String("missing"); got != "" {
		t.Errorf("String(missing) = %q", got)
	}
	if got := v.Ints("rows"); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Ints(rows) = %v", got)
	}
	if got := v.Ints("id"); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Ints(id) = %v", got)
	}
	if got := v.Ints("mixed"); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Ints(mixed) = %v", got)
	}
	if got := v.Ints("name"); got != nil {
		t.Errorf("Ints(name) = %v, expected nil", got)
	}
}

func TestNilValues(t *testing.T) {
	var v Values
	if _, ok := v.Get("x"); ok {
		t.Error("expected no value in nil Values")
	}
	if len(v.Keys()) != 0 {
		t.Error("expected no keys")
	}
}

func TestValuesClone(t *testing.T) {
	v := Values{"a": 1}
	c := v.Clone()
	c["a"] = 2
	if v["a"] != 1 {
		t.Error("expected Clone to copy the map")
	}
}

func TestTableClick(t *testing.T) {
	ev := NewTableClick("-TABLE KEY-", 3, 1, nil)
	if !ev.IsCompound() {
		t.Fatal("expected compound event")
	}
	if ev.Detail.Kind != TableClicked {
		t.Errorf("expected kind %q, got %q", TableClicked, ev.Detail.Kind)
	}
	if got := ev.String(); got != `("-TABLE KEY-", "+CLICKED+", (3, 1))` {
		t.Errorf("String() = %s", got)
	}
	if got := (Event{Key: "Ok"}).String(); got != `"Ok"` {
		t.Errorf("String() = %s", got)
	}
}
