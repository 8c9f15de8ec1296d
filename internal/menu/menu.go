// Package menu defines the context-menu structures tools hand to the
// manager and the presenter interface the application shell implements.
// The manager records and forwards menu requests; it never renders them.
package menu

// Trigger controls when a scheduled context menu is presented.
type Trigger int

const (
	// TriggerOff disables the menu.
	TriggerOff Trigger = iota

	// TriggerNow presents the menu immediately.
	TriggerNow

	// TriggerButton presents the menu when the trigger input (a right
	// click) reaches the scheduling tool.
	TriggerButton
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerNow:
		return "now"
	case TriggerButton:
		return "button"
	default:
		return "off"
	}
}

// Item is a single menu entry. Command is the event command dispatched when
// the entry is chosen; Submenu, when set, nests another menu.
type Item struct {
	Label   string
	Command string
	Submenu *Menu
}

// Menu is a tool-defined context menu structure. The manager treats it as
// opaque content.
type Menu struct {
	Title string
	Items []Item
}

// New creates an empty menu with a title.
func New(title string) *Menu {
	return &Menu{Title: title}
}

// Add appends an entry and returns the menu for chaining.
func (m *Menu) Add(label, command string) *Menu {
	m.Items = append(m.Items, Item{Label: label, Command: command})
	return m
}

// AddSubmenu appends a nested menu entry and returns the menu for chaining.
func (m *Menu) AddSubmenu(label string, sub *Menu) *Menu {
	m.Items = append(m.Items, Item{Label: label, Submenu: sub})
	return m
}

// Request is what the manager forwards to the presenter: the menu structure
// plus the name of the tool that scheduled it.
type Request struct {
	Tool string
	Menu *Menu
}

// Presenter is implemented by the collaborator that owns menu presentation.
type Presenter interface {
	ShowMenu(req Request)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(req Request)

// ShowMenu calls the wrapped function.
func (f PresenterFunc) ShowMenu(req Request) {
	f(req)
}
