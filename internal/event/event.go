package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies an event by its source. Categories are bitmask values
// so a Condition can match several at once.
type Category uint16

const (
	// CategoryNone matches nothing.
	CategoryNone Category = 0

	// CategoryMouse covers pointer input events.
	CategoryMouse Category = 1 << iota

	// CategoryKeyboard covers key input events.
	CategoryKeyboard

	// CategoryCommand covers tool activation and named command events.
	CategoryCommand

	// CategoryMessage covers inter-tool notification events.
	CategoryMessage

	// CategoryView covers viewport and window events.
	CategoryView

	// CategoryAny matches every category.
	CategoryAny Category = 0xffff
)

// String returns the category name, or a combined form for masks.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryMouse:
		return "mouse"
	case CategoryKeyboard:
		return "key"
	case CategoryCommand:
		return "command"
	case CategoryMessage:
		return "message"
	case CategoryView:
		return "view"
	case CategoryAny:
		return "any"
	}
	var parts []string
	for _, e := range []struct {
		c Category
		n string
	}{
		{CategoryMouse, "mouse"},
		{CategoryKeyboard, "key"},
		{CategoryCommand, "command"},
		{CategoryMessage, "message"},
		{CategoryView, "view"},
	} {
		if c&e.c != 0 {
			parts = append(parts, e.n)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Kind identifies the specific occurrence within a category. Kinds are
// bitmask values so a Condition can match alternatives in one pattern.
type Kind uint32

const (
	// KindNone matches nothing.
	KindNone Kind = 0

	// KindMouseDown is a button press.
	KindMouseDown Kind = 1 << iota

	// KindMouseUp is a button release.
	KindMouseUp

	// KindMouseClick is a press/release pair at the same position.
	KindMouseClick

	// KindMouseDblClick is a second click within the double-click window.
	KindMouseDblClick

	// KindMouseDrag is motion with a button held.
	KindMouseDrag

	// KindMouseMotion is motion with no button held.
	KindMouseMotion

	// KindMouseWheel is a scroll wheel tick.
	KindMouseWheel

	// KindKeyPress is a key press.
	KindKeyPress

	// KindActivate is the synthesized tool activation event.
	KindActivate

	// KindCancel is a cancel request (typically Escape).
	KindCancel

	// KindRefresh asks the view collaborator to redraw.
	KindRefresh

	// KindResize is a window/viewport size change.
	KindResize

	// KindNotify is a free-form inter-tool message.
	KindNotify

	// KindAny matches every kind.
	KindAny Kind = 0xffffffff
)

var kindNames = []struct {
	k Kind
	n string
}{
	{KindMouseDown, "down"},
	{KindMouseUp, "up"},
	{KindMouseClick, "click"},
	{KindMouseDblClick, "dblclick"},
	{KindMouseDrag, "drag"},
	{KindMouseMotion, "motion"},
	{KindMouseWheel, "wheel"},
	{KindKeyPress, "press"},
	{KindActivate, "activate"},
	{KindCancel, "cancel"},
	{KindRefresh, "refresh"},
	{KindResize, "resize"},
	{KindNotify, "notify"},
}

// String returns the kind name, or a combined form for masks.
func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	if k == KindAny {
		return "any"
	}
	var parts []string
	for _, e := range kindNames {
		if k&e.k != 0 {
			parts = append(parts, e.n)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Button identifies a mouse button on pointer events.
type Button int

const (
	// ButtonNone means no button (or "any button" in a Condition).
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Point is a screen position in cells.
type Point struct {
	X int
	Y int
}

// Metadata carries standard information attached to every event instance.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Time is when the event was created.
	Time time.Time

	// Source identifies the collaborator that produced the event.
	Source string
}

// Event is an immutable value describing one occurrence. The zero Event is
// valid and matches nothing.
type Event struct {
	// Category classifies the event source.
	Category Category

	// Kind is the specific occurrence within the category.
	Kind Kind

	// Button is set on pointer events.
	Button Button

	// Pos is the pointer position on mouse events.
	Pos Point

	// Key is the pressed rune on keyboard events ('\x00' for special keys).
	Key rune

	// Command names the target on command and activation events.
	Command string

	// Param is an opaque payload forwarded unchanged to handlers.
	Param any

	// Metadata is standard per-instance information.
	Metadata Metadata
}

// New creates an event with fresh metadata.
func New(cat Category, kind Kind, source string) Event {
	return Event{
		Category: cat,
		Kind:     kind,
		Metadata: newMetadata(source),
	}
}

// Activation returns the synthesized activation event for a tool, carrying
// an optional caller-supplied parameter.
func Activation(toolName string, param any) Event {
	return Event{
		Category: CategoryCommand,
		Kind:     KindActivate,
		Command:  toolName,
		Param:    param,
		Metadata: newMetadata("manager"),
	}
}

// WithParam returns a copy of the event with the payload set.
func (e Event) WithParam(param any) Event {
	e.Param = param
	return e
}

// WithPos returns a copy of the event with the pointer position set.
func (e Event) WithPos(x, y int) Event {
	e.Pos = Point{X: x, Y: y}
	return e
}

// IsActivation reports whether this is a tool activation event.
func (e Event) IsActivation() bool {
	return e.Category == CategoryCommand && e.Kind == KindActivate
}

// String renders a compact description for logging.
func (e Event) String() string {
	if e.Command != "" {
		return fmt.Sprintf("%s:%s(%s)", e.Category, e.Kind, e.Command)
	}
	return fmt.Sprintf("%s:%s", e.Category, e.Kind)
}

func newMetadata(source string) Metadata {
	return Metadata{
		ID:     uuid.NewString(),
		Time:   time.Now(),
		Source: source,
	}
}
