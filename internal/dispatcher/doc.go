// Package dispatcher routes window events to the actions registered for them.
//
// The dispatcher is the glue between a window and the controllers of an
// application. Controllers build actions (see package action) and register
// them; the dispatcher keeps a name-keyed registry and, in its loop, reads
// events from the window and invokes the matching action.
//
// # Registration
//
// An action is registered under its name and every alias key. A later
// registration for the same key replaces the earlier one:
//
//	d := dispatcher.NewWithDefaults()
//	d.Register(onOk).Register(onCancel)
//	d.RegisterFunc("-REFRESH-", refresh, "F5")
//
// # Routing
//
// Loop derives the event name from each window event:
//
//  1. Compound events (a table click carries its key, the kind of click
//     and the clicked cell) route on their element key.
//  2. Keys containing the menu delimiter ("::" by default) route on the
//     text after the last delimiter, so a menu entry "Copy::onCopy" reaches
//     the action named "onCopy".
//  3. Anything else routes on its key.
//
// Unregistered names are ignored. The exit event ("Exit" by default) and a
// closed window end the loop without being dispatched.
//
// # Usage
//
//	win := window.NewQueue()
//	d := dispatcher.NewWithDefaults()
//	controller.Attach(d, NewRootController(win))
//	if err := d.Loop(ctx, win); err != nil {
//	    return err
//	}
//
// Background work is started through the window (PerformLongOperation) and
// its result arrives as an ordinary event, so handlers always run on the
// loop goroutine.
package dispatcher
