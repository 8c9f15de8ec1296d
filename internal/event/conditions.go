package event

import (
	"fmt"
	"strings"
)

// Condition is a structural pattern an event is matched against. A zero
// Button matches any button; an empty Command matches any command. Category
// and Kind are masks and must overlap the event's bits.
type Condition struct {
	Category Category
	Kind     Kind
	Button   Button
	Command  string
}

// Matches reports whether the event satisfies this pattern.
func (c Condition) Matches(ev Event) bool {
	if c.Category&ev.Category == 0 {
		return false
	}
	if c.Kind&ev.Kind == 0 {
		return false
	}
	if c.Button != ButtonNone && c.Button != ev.Button {
		return false
	}
	if c.Command != "" && c.Command != ev.Command {
		return false
	}
	return true
}

// String renders the condition in the textual syntax accepted by Parse.
func (c Condition) String() string {
	s := fmt.Sprintf("%s:%s", c.Category, c.Kind)
	if c.Button != ButtonNone {
		s += ":" + c.Button.String()
	}
	if c.Command != "" {
		s += ":" + c.Command
	}
	return s
}

// ConditionList is a set of alternative patterns; an event matches the list
// when it matches any member.
type ConditionList []Condition

// Matches reports whether any condition in the list matches the event.
func (l ConditionList) Matches(ev Event) bool {
	for _, c := range l {
		if c.Matches(ev) {
			return true
		}
	}
	return false
}

// Conditions is a convenience constructor for a ConditionList.
func Conditions(conds ...Condition) ConditionList {
	return ConditionList(conds)
}

// OnMouse matches pointer events of the given kinds for a specific button
// (ButtonNone for any).
func OnMouse(kind Kind, button Button) Condition {
	return Condition{Category: CategoryMouse, Kind: kind, Button: button}
}

// OnKey matches key press events.
func OnKey() Condition {
	return Condition{Category: CategoryKeyboard, Kind: KindKeyPress}
}

// OnActivate matches the activation event for the named tool.
func OnActivate(toolName string) Condition {
	return Condition{Category: CategoryCommand, Kind: KindActivate, Command: toolName}
}

// OnCommand matches a named command event of any command kind.
func OnCommand(name string) Condition {
	return Condition{Category: CategoryCommand, Kind: KindAny, Command: name}
}

// OnCancel matches cancel requests from any category.
func OnCancel() Condition {
	return Condition{Category: CategoryAny, Kind: KindCancel}
}

// OnAny matches every event.
func OnAny() Condition {
	return Condition{Category: CategoryAny, Kind: KindAny}
}

var parseCategories = map[string]Category{
	"mouse":   CategoryMouse,
	"key":     CategoryKeyboard,
	"command": CategoryCommand,
	"message": CategoryMessage,
	"view":    CategoryView,
	"any":     CategoryAny,
}

var parseKinds = map[string]Kind{
	"down":     KindMouseDown,
	"up":       KindMouseUp,
	"click":    KindMouseClick,
	"dblclick": KindMouseDblClick,
	"drag":     KindMouseDrag,
	"motion":   KindMouseMotion,
	"wheel":    KindMouseWheel,
	"press":    KindKeyPress,
	"activate": KindActivate,
	"cancel":   KindCancel,
	"refresh":  KindRefresh,
	"resize":   KindResize,
	"notify":   KindNotify,
	"any":      KindAny,
}

var parseButtons = map[string]Button{
	"left":   ButtonLeft,
	"middle": ButtonMiddle,
	"right":  ButtonRight,
}

// Parse converts the textual condition syntax used by config files and
// scripted tools into a Condition. The form is "category:kind" with optional
// ":button" (mouse) or ":name" (command) segments, e.g. "mouse:click:left",
// "key:press", "command:activate:move".
func Parse(s string) (Condition, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return Condition{}, fmt.Errorf("parsing condition %q: want category:kind", s)
	}

	cat, ok := parseCategories[parts[0]]
	if !ok {
		return Condition{}, fmt.Errorf("parsing condition %q: unknown category %q", s, parts[0])
	}

	kind, ok := parseKinds[parts[1]]
	if !ok {
		return Condition{}, fmt.Errorf("parsing condition %q: unknown kind %q", s, parts[1])
	}

	cond := Condition{Category: cat, Kind: kind}
	if len(parts) > 2 {
		switch cat {
		case CategoryMouse:
			btn, ok := parseButtons[parts[2]]
			if !ok {
				return Condition{}, fmt.Errorf("parsing condition %q: unknown button %q", s, parts[2])
			}
			cond.Button = btn
		case CategoryCommand:
			cond.Command = parts[2]
		default:
			return Condition{}, fmt.Errorf("parsing condition %q: unexpected segment %q", s, parts[2])
		}
	}
	return cond, nil
}

// ParseList parses a list of textual conditions into a ConditionList.
func ParseList(specs []string) (ConditionList, error) {
	list := make(ConditionList, 0, len(specs))
	for _, s := range specs {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}
