package places

import (
	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/controller"
	"github.com/mikmak/psga/internal/window"
)

// RootController manages the tab group of the root layout.
type RootController struct {
	controller.Base

	win window.Window
	tab string

	// OnTabGroup is the tab group's key. Its value is the key of the
	// activated tab.
	OnTabGroup *action.Action
}

// NewRootController creates the controller and registers its actions.
func NewRootController(r controller.Registrar, win window.Window) *RootController {
	c := &RootController{win: win}
	c.OnTabGroup = c.Action(c.onTabGroup)
	controller.Attach(r, c)
	return c
}

// onTabGroup makes the activated tab populate its data.
func (c *RootController) onTabGroup(values window.Values) {
	tab := values.String(c.OnTabGroup.Name())
	if tab == "" || tab == c.tab {
		return
	}
	c.tab = tab
	c.win.WriteEventValue(tab, nil)
}

// Tab returns the key of the active tab.
func (c *RootController) Tab() string {
	return c.tab
}
