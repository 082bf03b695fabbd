package places

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/controller"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/window"
)

// Headings are the columns shown for every resource.
var Headings = []string{"id", "name", "location", "description"}

// MenuSeparator separates groups of menu items.
const MenuSeparator = "---"

// TabSpec describes one tab.
type TabSpec struct {
	// Name prefixes the tab's action names, e.g. "Trails" gives
	// "Trails.onTab".
	Name string

	// Title is the tab label.
	Title string

	// Resource is the REST resource path and the name of the data action.
	Resource string

	// Noun names one record in dialogs.
	Noun string

	// CreateKeys and DeleteKeys are extra keys, such as button keys, that
	// reach the create and delete actions.
	CreateKeys []string
	DeleteKeys []string
}

// Trails and Cities are the demo tabs.
var (
	Trails = TabSpec{
		Name:       "Trails",
		Title:      "Amazing Trails",
		Resource:   "demo/trails",
		Noun:       "trail",
		CreateKeys: []string{"-CREATE TRAIL-"},
		DeleteKeys: []string{"-DELETE TRAIL-"},
	}
	Cities = TabSpec{
		Name:     "Cities",
		Title:    "Awesome Cities",
		Resource: "demo/cities",
		Noun:     "city",
	}
)

// TabController mediates between one tab's table and the model.
type TabController struct {
	controller.Base

	spec      TabSpec
	view      View
	model     Resources
	data      []Row
	delimiter string

	OnTab        *action.Action
	OnData       *action.Action
	OnTableClick *action.Action
	OnCopy       *action.Action
	OnCreate     *action.Action
	OnDelete     *action.Action
}

// NewTabController creates the controller for spec and registers its
// actions with r. Menu items use the menu delimiter of r when r is a
// dispatcher.
func NewTabController(r controller.Registrar, view View, model Resources, spec TabSpec) *TabController {
	c := &TabController{spec: spec, view: view, model: model, delimiter: dispatcher.DefaultMenuDelimiter}
	if d, ok := r.(interface{ Config() dispatcher.Config }); ok && d.Config().MenuDelimiter != "" {
		c.delimiter = d.Config().MenuDelimiter
	}

	c.OnTab = c.Action(c.onTab, c.named("onTab"))
	c.OnData = c.Action(c.onData, action.WithName(spec.Resource))
	c.OnTableClick = c.Action(c.onTableClick, c.named("onTableClick"))
	c.OnCopy = c.Action(c.onCopy, c.named("onCopy"))
	c.OnCreate = c.Action(c.onCreate, c.named("onCreate"), action.WithKeys(spec.CreateKeys...))
	c.OnDelete = c.Action(c.onDelete, c.named("onDelete"), action.WithKeys(spec.DeleteKeys...))

	controller.Attach(r, c)
	return c
}

// Two tabs share this type, so names are qualified by the tab instead of
// derived from the method.
func (c *TabController) named(method string) action.Option {
	return action.WithName(c.spec.Name + "." + method)
}

// Spec returns the tab description.
func (c *TabController) Spec() TabSpec {
	return c.spec
}

// Table returns the key of the tab's table.
func (c *TabController) Table() string {
	return c.OnTableClick.Name()
}

// Data returns the rows currently shown.
func (c *TabController) Data() []Row {
	return c.data
}

// Refresh triggers a fetch of the tab's data.
func (c *TabController) Refresh() {
	c.model.Read(c.spec.Resource)
}

func (c *TabController) onTab(window.Values) {
	c.Refresh()
}

func (c *TabController) onData(values window.Values) {
	v, _ := values.Get(c.OnData.Name())
	switch t := v.(type) {
	case error:
		c.view.Popup("Error", t.Error())
	case []Row:
		c.data = t
		c.view.UpdateTable(c.Table(), c.cells())
	case nil:
		c.data = nil
		c.view.UpdateTable(c.Table(), nil)
	default:
		c.view.Popup("Error", fmt.Sprintf("unexpected data %T", v))
	}
}

func (c *TabController) cells() [][]string {
	out := make([][]string, len(c.data))
	for i, row := range c.data {
		cells := make([]string, len(Headings))
		for j, h := range Headings {
			cells[j] = row.Cell(h)
		}
		out[i] = cells
	}
	return out
}

// onTableClick enables the menu items that apply to the selection.
func (c *TabController) onTableClick(values window.Values) {
	c.view.SetTableMenu(c.Table(), c.Menu(len(values.Ints(c.Table()))))
}

// Menu returns the table's menu items for a selection of n rows.
func (c *TabController) Menu(n int) []string {
	copyItem := c.MenuItem("Copy", c.OnCopy, n > 0)
	createItem := c.MenuItem("Create…", c.OnCreate, true)
	deleteItem := c.MenuItem("Delete…", c.OnDelete, n == 1)
	return []string{copyItem, MenuSeparator, createItem, deleteItem}
}

// MenuItem formats a menu entry invoking a.
func (c *TabController) MenuItem(label string, a *action.Action, enabled bool) string {
	item := label + c.delimiter + a.Name()
	if !enabled {
		item = "!" + item
	}
	return item
}

func (c *TabController) selected(values window.Values) []Row {
	var rows []Row
	for _, i := range values.Ints(c.Table()) {
		if i >= 0 && i < len(c.data) {
			rows = append(rows, c.data[i])
		}
	}
	return rows
}

func (c *TabController) onCopy(values window.Values) {
	rows := c.selected(values)
	if len(rows) == 0 {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		c.view.Popup("Error", err.Error())
		return
	}
	c.view.SetClipboard(string(pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "    "})))
}

func (c *TabController) onCreate(window.Values) {
	fields, ok := c.view.CreateDialog("Create a new "+c.spec.Noun, Headings)
	if !ok {
		return
	}
	c.model.Create(c.spec.Resource, fields)
}

func (c *TabController) onDelete(values window.Values) {
	rows := c.selected(values)
	if len(rows) != 1 {
		return
	}
	row := rows[0]
	shown := map[string]string{}
	for _, h := range Headings {
		shown[h] = row.Cell(h)
	}
	if !c.view.ConfirmDialog("Delete this "+c.spec.Noun+"?", []string{"id", "name", "description"}, shown) {
		return
	}
	c.model.Delete(c.spec.Resource, row.Cell("id"))
}
