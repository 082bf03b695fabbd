package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/window"
)

// DefaultExitEvent is sent for Ctrl-C and "q".
const DefaultExitEvent = "Exit"

const hint = "Tab: switch  ↑↓: move  Space: select  Enter: menu  q: quit"

var cursorMoves = map[tcell.Key]int{
	tcell.KeyUp:   -1,
	tcell.KeyDown: 1,
	tcell.KeyPgUp: -10,
	tcell.KeyPgDn: 10,
}

// Option configures a Window.
type Option func(*Window)

// WithBindings binds key names such as "F5", "Ctrl+N" or "n" to event keys.
func WithBindings(bindings map[string]string) Option {
	return func(w *Window) {
		for name, key := range bindings {
			w.bindings[NormalizeKey(name)] = key
		}
	}
}

// WithExitEvent sets the event sent when the user quits.
func WithExitEvent(name string) Option {
	return func(w *Window) {
		if name != "" {
			w.exitEvent = name
		}
	}
}

// WithMenuDelimiter sets the delimiter between a menu item's label and its
// event. It must match the dispatcher's.
func WithMenuDelimiter(delim string) Option {
	return func(w *Window) {
		if delim != "" {
			w.menuDelimiter = delim
		}
	}
}

// WithLogger sets the window logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Window) {
		if l != nil {
			w.logger = l
		}
	}
}

// Window is a terminal window with a tab group.
//
// Only Read and the view methods touch the layout; they must be called from
// the goroutine running the event loop. WriteEventValue,
// PerformLongOperation and Close are safe from any goroutine.
type Window struct {
	screen    *Screen
	posted    *window.Queue
	input     chan tcell.Event
	closeOnce sync.Once

	title     string
	tabGroup  string
	tabs      TabBar
	menu      *Menu
	pending   *pendingMenu
	status    string
	clipboard string
	lastMouse tcell.ButtonMask

	exitEvent     string
	menuDelimiter string
	bindings      map[string]string
	logger        *logging.Logger
}

// NewWindow initializes screen and returns an empty window. Set the tab
// group key and add tabs before the first Read.
func NewWindow(screen *Screen, title string, opts ...Option) (*Window, error) {
	w := &Window{
		screen:        screen,
		posted:        window.NewQueue(),
		input:         make(chan tcell.Event),
		title:         title,
		exitEvent:     DefaultExitEvent,
		menuDelimiter: DefaultMenuDelimiter,
		bindings:      make(map[string]string),
		logger:        logging.NewNull(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("terminal")
	w.posted.SetLogger(w.logger)

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	go w.pump()
	return w, nil
}

// pump forwards terminal events until the screen is finalized.
func (w *Window) pump() {
	defer close(w.input)
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case w.input <- ev:
		case <-w.posted.Done():
			return
		}
	}
}

// SetTabGroup sets the key of the tab group. Tab changes send an event
// with this key whose value is the activated tab's key.
func (w *Window) SetTabGroup(key string) {
	w.tabGroup = key
}

// AddTab appends a tab to the tab group.
func (w *Window) AddTab(t *Tab) {
	w.tabs.Add(t)
}

// SelectTab activates the tab with key without sending an event.
func (w *Window) SelectTab(key string) bool {
	return w.tabs.Select(key)
}

// ActiveTab returns the key of the active tab.
func (w *Window) ActiveTab() string {
	if t := w.tabs.Active(); t != nil {
		return t.Key
	}
	return ""
}

// Read implements window.Source. Posted events are returned before pending
// terminal input.
func (w *Window) Read(ctx context.Context) (window.Event, error) {
	for {
		ev, ok, err := w.posted.TryRead()
		if err != nil {
			return window.Event{}, window.ErrClosed
		}
		if ok {
			return ev, nil
		}

		if p := w.pending; p != nil {
			w.pending = nil
			w.openMenuAt(p.table, p.x, p.y)
		}
		w.Draw()

		select {
		case <-ctx.Done():
			return window.Event{}, ctx.Err()
		case <-w.posted.Done():
			return window.Event{}, window.ErrClosed
		case <-w.posted.Ready():
		case tev, ok := <-w.input:
			if !ok {
				return window.Event{}, window.ErrClosed
			}
			if ev, ok := w.translate(tev); ok {
				return ev, nil
			}
		}
	}
}

// WriteEventValue implements window.Window.
func (w *Window) WriteEventValue(key string, value any) {
	w.posted.WriteEventValue(key, value)
}

// PerformLongOperation implements window.Window.
func (w *Window) PerformLongOperation(fn func() any, key string) {
	w.posted.PerformLongOperation(fn, key)
}

// Close implements window.Window. It restores the terminal.
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		w.posted.Close()
		w.screen.Fini()
	})
}

// Wait blocks until every long operation has posted its result.
func (w *Window) Wait() {
	w.posted.Wait()
}

// values is the snapshot of element values sent with input events.
func (w *Window) values() window.Values {
	v := window.Values{}
	if w.tabGroup != "" {
		v[w.tabGroup] = w.ActiveTab()
	}
	for _, t := range w.tabs.tabs {
		if t.Table != nil {
			v[t.Table.Key] = t.Table.Selection()
		}
	}
	return v
}

func (w *Window) event(key string) window.Event {
	return window.Event{Key: key, Values: w.values()}
}

func (w *Window) translate(tev tcell.Event) (window.Event, bool) {
	switch ev := tev.(type) {
	case *tcell.EventKey:
		return w.handleKey(ev)
	case *tcell.EventMouse:
		return w.handleMouse(ev)
	case *tcell.EventResize:
		w.screen.Sync()
	}
	return window.Event{}, false
}

func (w *Window) handleKey(ev *tcell.EventKey) (window.Event, bool) {
	if w.menu != nil {
		return w.menuKey(ev)
	}

	if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && ev.Modifiers() == tcell.ModNone) {
		return window.Event{Key: w.exitEvent}, true
	}
	if key, ok := w.bindings[KeyName(ev)]; ok {
		return w.event(key), true
	}

	tab := w.tabs.Active()
	switch ev.Key() {
	case tcell.KeyTab:
		return w.cycleTab(1)
	case tcell.KeyBacktab:
		return w.cycleTab(-1)
	}
	if tab == nil || tab.Table == nil {
		return window.Event{}, false
	}

	table := tab.Table
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyPgUp, tcell.KeyPgDn:
		if !table.MoveCursor(cursorMoves[ev.Key()]) {
			return window.Event{}, false
		}
		table.SelectOnly(table.Cursor())
		return w.event(table.Key), true
	case tcell.KeyEnter:
		w.openMenuAt(table, 2, table.y+1+table.Cursor()-table.top)
		return window.Event{}, false
	case tcell.KeyRune:
		if ev.Rune() == ' ' && table.Len() > 0 {
			table.Toggle(table.Cursor())
			return w.event(table.Key), true
		}
	}
	return window.Event{}, false
}

func (w *Window) cycleTab(delta int) (window.Event, bool) {
	if len(w.tabs.tabs) < 2 {
		return window.Event{}, false
	}
	w.tabs.Cycle(delta)
	return w.event(w.tabGroup), true
}

func (w *Window) menuKey(ev *tcell.EventKey) (window.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		w.menu = nil
	case tcell.KeyUp:
		w.menu.Move(-1)
	case tcell.KeyDown:
		w.menu.Move(1)
	case tcell.KeyEnter:
		entry, ok := w.menu.Current()
		w.menu = nil
		if ok {
			return w.event(entry.Event), true
		}
	case tcell.KeyCtrlC:
		w.menu = nil
		return window.Event{Key: w.exitEvent}, true
	}
	return window.Event{}, false
}

func (w *Window) handleMouse(ev *tcell.EventMouse) (window.Event, bool) {
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button3)
	pressed := buttons != 0 && w.lastMouse == 0
	w.lastMouse = buttons
	if !pressed {
		return window.Event{}, false
	}
	x, y := ev.Position()

	if w.menu != nil {
		entry, ok := w.menu.At(x, y)
		w.menu = nil
		if ok && buttons&tcell.Button1 != 0 {
			return w.event(entry.Event), true
		}
		return window.Event{}, false
	}

	if y == 0 {
		if i, ok := w.tabs.At(x); ok && i != w.tabs.active {
			w.tabs.active = i
			return w.event(w.tabGroup), true
		}
		return window.Event{}, false
	}

	tab := w.tabs.Active()
	if tab == nil {
		return window.Event{}, false
	}
	if y == 1 {
		if btn, ok := buttonAt(tab, x); ok {
			return w.event(btn.Key), true
		}
		return window.Event{}, false
	}

	table := tab.Table
	if table == nil {
		return window.Event{}, false
	}
	row, col, ok := table.At(x, y)
	if !ok {
		return window.Event{}, false
	}

	switch {
	case buttons&tcell.Button3 != 0:
		// right click selects, then opens the menu the handler sets up
		if row >= 0 && !table.IsSelected(row) {
			table.SelectOnly(row)
		}
		w.pending = &pendingMenu{table: table, x: x, y: y}
	case row >= 0 && ev.Modifiers()&tcell.ModCtrl != 0:
		table.Toggle(row)
	case row >= 0:
		table.SelectOnly(row)
	}
	return window.NewTableClick(table.Key, row, col, w.values()), true
}

func (w *Window) openMenuAt(table *Table, x, y int) {
	if len(table.Menu()) == 0 {
		w.status = "no menu"
		return
	}
	w.menu = NewMenu(table.Key, table.Menu(), w.menuDelimiter, x, y)
}

// pendingMenu is a menu requested by a right click. It opens on the next
// Read, once the click handler has set the menu items.
type pendingMenu struct {
	table *Table
	x, y  int
}
