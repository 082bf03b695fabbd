package dispatcher_test

import (
	"reflect"
	"testing"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/window"
)

func noop(window.Values) {}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := dispatcher.NewRegistry()
	a := action.New(noop, action.WithName("test"))

	if prev := registry.Register("test", a); prev != nil {
		t.Errorf("expected no previous action, got %v", prev)
	}
	if got := registry.Get("test"); got != a {
		t.Errorf("expected registered action, got %v", got)
	}
}

func TestRegistryGetMissing(t *testing.T) {
	registry := dispatcher.NewRegistry()

	if got := registry.Get("missing"); got != nil {
		t.Error("expected nil for missing name")
	}
	if registry.Has("missing") {
		t.Error("expected Has('missing') to return false")
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	registry := dispatcher.NewRegistry()
	first := action.New(noop, action.WithName("first"))
	second := action.New(noop, action.WithName("second"))

	registry.Register("event", first)
	prev := registry.Register("event", second)

	if prev != first {
		t.Errorf("expected first to be returned as replaced, got %v", prev)
	}
	if got := registry.Get("event"); got != second {
		t.Errorf("expected last registration to win, got %v", got)
	}
	if registry.Count() != 1 {
		t.Errorf("expected 1 name, got %d", registry.Count())
	}
}

func TestRegistryUnregister(t *testing.T) {
	registry := dispatcher.NewRegistry()
	registry.Register("test", action.New(noop))
	registry.Unregister("test")

	if registry.Has("test") {
		t.Error("expected Has('test') to return false after unregister")
	}
}

func TestRegistryListAndClear(t *testing.T) {
	registry := dispatcher.NewRegistry()
	a := action.New(noop)
	registry.Register("b", a)
	registry.Register("a", a)
	registry.Register("c", a)

	if got := registry.List(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("List() = %v", got)
	}

	registry.Clear()
	if registry.Count() != 0 {
		t.Errorf("expected empty registry after Clear, got %d", registry.Count())
	}
}
