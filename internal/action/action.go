// Package action tags handler functions with the event names they answer to.
//
// An Action binds a handler to a canonical event name plus optional alias
// keys. When no name is given, the name is derived from the handler's own
// identifier, so a method value c.onTab on *TabOne is named "TabOne.onTab".
// Deriving the name from the method keeps layout keys and handler names in
// one place: a layout refers to ctrl.onTab.Name() instead of repeating a
// string literal.
package action

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/mikmak/psga/internal/window"
)

// Handler processes the values of an event.
type Handler func(values window.Values)

// Action is a handler bound to a canonical event name and aliases.
type Action struct {
	name    string
	aliases []string
	fn      Handler
}

// Option configures an Action.
type Option func(*Action)

// WithName overrides the derived name. An empty name keeps the derived one.
func WithName(name string) Option {
	return func(a *Action) {
		if name != "" {
			a.name = name
		}
	}
}

// WithKeys adds alias keys under which the action is also registered.
// This lets several elements, or existing string keys, reach one handler.
func WithKeys(keys ...string) Option {
	return func(a *Action) {
		a.aliases = append(a.aliases, keys...)
	}
}

// New creates an action for fn. It panics if fn is nil.
func New(fn Handler, opts ...Option) *Action {
	if fn == nil {
		panic("action: nil handler")
	}

	a := &Action{
		name: FuncName(fn),
		fn:   fn,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.aliases = dedupe(a.name, a.aliases)
	return a
}

// Name returns the canonical event name.
func (a *Action) Name() string {
	return a.name
}

// Aliases returns the alias keys, excluding the name.
func (a *Action) Aliases() []string {
	out := make([]string, len(a.aliases))
	copy(out, a.aliases)
	return out
}

// Keys returns the name followed by every alias.
func (a *Action) Keys() []string {
	keys := make([]string, 0, len(a.aliases)+1)
	keys = append(keys, a.name)
	return append(keys, a.aliases...)
}

// Invoke calls the handler with values.
func (a *Action) Invoke(values window.Values) {
	a.fn(values)
}

// String implements fmt.Stringer.
func (a *Action) String() string {
	if len(a.aliases) == 0 {
		return fmt.Sprintf("action(%s)", a.name)
	}
	return fmt.Sprintf("action(%s, keys=%s)", a.name, strings.Join(a.aliases, ","))
}

// FuncName derives an event name from a function's identifier.
//
//	github.com/x/places.(*TabOne).onTab-fm  ->  TabOne.onTab
//	github.com/x/places.helper              ->  helper
//	github.com/x/places.TestFoo.func1       ->  TestFoo.func1
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return trimFuncName(f.Name())
}

// trimFuncName strips the package path from a symbol name. Dots in the
// last path element are escaped as %2e in symbol names, so the package name
// ends at the first dot after the last slash. Type arguments may contain
// slashes of their own and are skipped when looking for it.
func trimFuncName(full string) string {
	name := full
	head := name
	if idx := strings.IndexByte(head, '['); idx >= 0 {
		head = head[:idx]
	}
	if idx := strings.LastIndex(head, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	// drop the package name
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")
	return name
}

func dedupe(name string, aliases []string) []string {
	seen := map[string]bool{name: true}
	out := aliases[:0]
	for _, alias := range aliases {
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		out = append(out, alias)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
