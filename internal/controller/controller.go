// Package controller provides the base for MVC controllers whose actions are
// registered with a dispatcher in one call.
package controller

import "github.com/mikmak/psga/internal/action"

// Controller exposes the actions it handles.
type Controller interface {
	Actions() []*action.Action
}

// Registrar accepts actions for dispatch. *dispatcher.Dispatcher implements it.
type Registrar interface {
	RegisterAll(actions ...*action.Action)
}

// Base collects a controller's actions in declaration order. Embed it and
// create actions with Action, then call Attach once construction is done:
//
//	type TabCtr struct {
//	    controller.Base
//	    onTab *action.Action
//	}
//
//	func NewTabCtr(r controller.Registrar) *TabCtr {
//	    c := &TabCtr{}
//	    c.onTab = c.Action(c.refresh)
//	    controller.Attach(r, c)
//	    return c
//	}
type Base struct {
	actions []*action.Action
}

// Action creates an action for fn, records it and returns it.
func (b *Base) Action(fn action.Handler, opts ...action.Option) *action.Action {
	a := action.New(fn, opts...)
	b.actions = append(b.actions, a)
	return a
}

// Add records existing actions.
func (b *Base) Add(actions ...*action.Action) {
	for _, a := range actions {
		if a != nil {
			b.actions = append(b.actions, a)
		}
	}
}

// Actions implements Controller.
func (b *Base) Actions() []*action.Action {
	out := make([]*action.Action, len(b.actions))
	copy(out, b.actions)
	return out
}

// Attach registers every action of c with r.
func Attach(r Registrar, c Controller) {
	r.RegisterAll(c.Actions()...)
}
