// Package places is the demo application: two tabs listing breathtaking
// trails and cities served by the mock REST service.
//
// It follows a model-view-controller split:
//
//   - Model talks to the REST service off the event loop and posts the
//     results back as events keyed by resource name ("demo/trails").
//   - RootController reacts to tab changes of the tab group.
//   - TabController mediates between one tab's table and the model.
//   - View is implemented by the terminal UI and by test fakes.
//
// Every handler is an action registered with the dispatcher, so layout keys,
// menu entries and posted events all refer to action names instead of
// string literals.
package places
