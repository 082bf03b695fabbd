package places

import "sync"

type fakeView struct {
	mu sync.Mutex

	tables    map[string][][]string
	menus     map[string][]string
	popups    []string
	clipboard string

	createValues map[string]string
	createOK     bool
	confirmOK    bool

	dialogs []string
}

func newFakeView() *fakeView {
	return &fakeView{
		tables: map[string][][]string{},
		menus:  map[string][]string{},
	}
}

func (v *fakeView) UpdateTable(table string, rows [][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables[table] = rows
}

func (v *fakeView) SetTableMenu(table string, items []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.menus[table] = items
}

func (v *fakeView) Popup(title, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.popups = append(v.popups, title+": "+text)
}

func (v *fakeView) SetClipboard(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clipboard = text
}

func (v *fakeView) CreateDialog(title string, fields []string) (map[string]string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dialogs = append(v.dialogs, title)
	return v.createValues, v.createOK
}

func (v *fakeView) ConfirmDialog(title string, fields []string, values map[string]string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dialogs = append(v.dialogs, title)
	return v.confirmOK
}

type call struct {
	op       string
	resource string
	arg      any
}

type fakeResources struct {
	calls []call
}

func (r *fakeResources) Read(resource string) {
	r.calls = append(r.calls, call{op: "read", resource: resource})
}

func (r *fakeResources) Create(resource string, fields map[string]string) {
	r.calls = append(r.calls, call{op: "create", resource: resource, arg: fields})
}

func (r *fakeResources) Delete(resource, id string) {
	r.calls = append(r.calls, call{op: "delete", resource: resource, arg: id})
}

func (v *fakeView) table(key string) [][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tables[key]
}
