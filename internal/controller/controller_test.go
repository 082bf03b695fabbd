package controller_test

import (
	"testing"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/controller"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/window"
)

type myController struct {
	controller.Base
	answer any

	onAsk *action.Action
}

func newMyController(r controller.Registrar) *myController {
	c := &myController{answer: 0}
	c.onAsk = c.Action(c.ask, action.WithName("universal_question"))
	controller.Attach(r, c)
	return c
}

func (c *myController) ask(values window.Values) {
	c.answer = values["answer"]
}

func TestControllerAttach(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithLogger(logging.NewNull()))
	c := newMyController(d)

	if c.answer != 0 {
		t.Fatalf("expected initial answer 0, got %v", c.answer)
	}

	d.Dispatch(c.onAsk.Name(), window.Values{"answer": 42})
	if c.answer != 42 {
		t.Errorf("expected 42, got %v", c.answer)
	}
}

type recordingRegistrar struct {
	got []*action.Action
}

func (r *recordingRegistrar) RegisterAll(actions ...*action.Action) {
	r.got = append(r.got, actions...)
}

func TestBaseOrderAndAdd(t *testing.T) {
	var b controller.Base
	first := b.Action(func(window.Values) {}, action.WithName("first"))
	extra := action.New(func(window.Values) {}, action.WithName("extra"))
	b.Add(nil, extra)
	second := b.Action(func(window.Values) {}, action.WithName("second"))

	r := &recordingRegistrar{}
	controller.Attach(r, &b)

	want := []*action.Action{first, extra, second}
	if len(r.got) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(r.got))
	}
	for i := range want {
		if r.got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, r.got[i], want[i])
		}
	}
}

func TestActionsReturnsCopy(t *testing.T) {
	var b controller.Base
	b.Action(func(window.Values) {}, action.WithName("only"))

	actions := b.Actions()
	actions[0] = nil

	if b.Actions()[0] == nil {
		t.Error("expected Actions to return a copy")
	}
}
