// Package main walks through the dispatcher without any UI: a controller
// registers an action with an explicit name and one with a derived name,
// both are dispatched directly, then again through an event loop fed by a
// headless window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/controller"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/window"
)

const question = "Answer to the Ultimate Question of Life"

type questionController struct {
	controller.Base
	answer any

	onAsk    *action.Action
	onAnswer *action.Action
}

func newQuestionController(r controller.Registrar) *questionController {
	c := &questionController{answer: 0}
	c.onAsk = c.Action(c.ask, action.WithName("universal_question"))
	c.onAnswer = c.Action(c.reply)
	controller.Attach(r, c)
	return c
}

// ask is registered under an explicit name.
func (c *questionController) ask(values window.Values) {
	c.answer = values["universal_question"]
}

// reply is registered under its derived name.
func (c *questionController) reply(values window.Values) {
	c.answer = values[c.onAnswer.Name()]
}

func main() {
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if !logging.ValidLevel(*level) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *level)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: logging.ParseLevel(*level), Output: os.Stderr, Prefix: "psga-noui"})

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *logging.Logger) error {
	d := dispatcher.New(dispatcher.DefaultConfig().WithLogger(logger).WithMetrics())
	c := newQuestionController(d)

	fmt.Printf("registered: %v\n", d.Registry().List())
	fmt.Printf("answer: %v\n", c.answer)

	d.Dispatch("universal_question", window.Values{"universal_question": 42})
	fmt.Printf("answer: %v\n", c.answer)

	d.Dispatch(c.onAnswer.Name(), window.Values{c.onAnswer.Name(): question})
	fmt.Printf("answer: %v\n", c.answer)

	if am := d.Metrics().ActionStats("universal_question"); am != nil {
		fmt.Printf("universal_question: %d call(s) so far\n", am.DispatchCount)
	}
	// count the loop on its own
	d.Metrics().Reset()

	// the same actions driven by an event loop; menu entries route on the
	// part after "::" and unknown events are skipped
	win := window.NewQueue()
	win.SetLogger(logger)
	win.WriteEventValue("universal_question", 54)
	win.PushKey("Ask again::universal_question", window.Values{"universal_question": 6 * 9})
	win.PushKey("unknown", nil)
	win.PerformLongOperation(func() any { return question }, c.onAnswer.Name())
	win.Wait()
	win.PushKey(dispatcher.DefaultExitEvent, nil)

	if err := d.Loop(context.Background(), win); err != nil {
		return err
	}
	fmt.Printf("answer: %v\n", c.answer)

	s := d.Metrics().Snapshot()
	fmt.Printf("dispatched %d, unmatched %d\n", s.TotalDispatches, s.TotalUnmatched)
	for _, am := range d.Metrics().TopActions(3) {
		fmt.Printf("  %s: %d\n", am.Name, am.DispatchCount)
	}
	return nil
}
