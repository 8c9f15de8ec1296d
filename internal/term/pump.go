// Package term is the upstream input collaborator: it polls a tcell screen
// and translates raw terminal input into the event values consumed by the
// dispatch core, delivering them one at a time.
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/log"
)

// doubleClickWindow is the maximum gap between two clicks at the same
// position that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Sink receives translated events; the manager satisfies it.
type Sink interface {
	ProcessEvent(ev event.Event) bool
}

// Pump owns a tcell screen and feeds translated events to a Sink.
type Pump struct {
	screen tcell.Screen
	sink   Sink
	logger *log.Logger

	// Mouse state for click/drag synthesis.
	prevButtons tcell.ButtonMask
	pressPos    event.Point
	lastClick   time.Time
	lastClickAt event.Point
}

// New creates a pump over an existing screen. The screen must be
// initialized by the caller.
func New(screen tcell.Screen, sink Sink, logger *log.Logger) *Pump {
	if logger == nil {
		logger = log.Nop
	}
	return &Pump{screen: screen, sink: sink, logger: logger}
}

// NewTerminal creates a pump over a freshly initialized terminal screen
// with mouse and bracketed paste enabled.
func NewTerminal(sink Sink, logger *log.Logger) (*Pump, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	return New(screen, sink, logger), nil
}

// Screen returns the underlying tcell screen.
func (p *Pump) Screen() tcell.Screen {
	return p.screen
}

// Fini releases the terminal.
func (p *Pump) Fini() {
	p.screen.Fini()
}

// Run polls the screen and delivers translated events until Stop is called
// or the screen is finalized. It must be the only goroutine feeding the
// sink.
func (p *Pump) Run() {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			return
		}
		for _, out := range p.Translate(ev) {
			consumed := p.sink.ProcessEvent(out)
			p.logger.Debug("event %s consumed=%v", out, consumed)
		}
	}
}

// Stop wakes the Run loop and makes it return.
func (p *Pump) Stop() {
	_ = p.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Translate converts one tcell event into zero or more dispatch events. A
// single mouse report can expand into several (a release yields an up event
// plus a synthesized click).
func (p *Pump) Translate(ev tcell.Event) []event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return []event.Event{p.translateKey(e)}
	case *tcell.EventMouse:
		return p.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		out := event.New(event.CategoryView, event.KindResize, "term")
		return []event.Event{out.WithPos(w, h)}
	default:
		return nil
	}
}

func (p *Pump) translateKey(e *tcell.EventKey) event.Event {
	if e.Key() == tcell.KeyEscape {
		return event.New(event.CategoryKeyboard, event.KindCancel, "term")
	}
	out := event.New(event.CategoryKeyboard, event.KindKeyPress, "term")
	out.Key = e.Rune()
	// Non-rune keys keep their tcell identity in the payload.
	if e.Key() != tcell.KeyRune {
		out.Key = 0
		out = out.WithParam(e.Key())
	}
	return out
}

func (p *Pump) translateMouse(e *tcell.EventMouse) []event.Event {
	x, y := e.Position()
	pos := event.Point{X: x, Y: y}
	buttons := e.Buttons()

	var out []event.Event

	if wheel := buttons & tcell.WheelUp; wheel != 0 || buttons&tcell.WheelDown != 0 {
		ev := event.New(event.CategoryMouse, event.KindMouseWheel, "term")
		ev.Pos = pos
		delta := 1
		if wheel == 0 {
			delta = -1
		}
		out = append(out, ev.WithParam(delta))
	}

	held := buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	prev := p.prevButtons
	p.prevButtons = held

	pressed := held &^ prev
	released := prev &^ held

	switch {
	case pressed != 0:
		ev := event.New(event.CategoryMouse, event.KindMouseDown, "term")
		ev.Pos = pos
		ev.Button = translateButton(pressed)
		out = append(out, ev)
		p.pressPos = pos

	case released != 0:
		up := event.New(event.CategoryMouse, event.KindMouseUp, "term")
		up.Pos = pos
		up.Button = translateButton(released)
		out = append(out, up)

		if pos == p.pressPos {
			kind := event.KindMouseClick
			if time.Since(p.lastClick) < doubleClickWindow && pos == p.lastClickAt {
				kind = event.KindMouseDblClick
			}
			click := event.New(event.CategoryMouse, kind, "term")
			click.Pos = pos
			click.Button = up.Button
			out = append(out, click)
			p.lastClick = time.Now()
			p.lastClickAt = pos
		}

	case held != 0:
		ev := event.New(event.CategoryMouse, event.KindMouseDrag, "term")
		ev.Pos = pos
		ev.Button = translateButton(held)
		out = append(out, ev)

	default:
		if len(out) == 0 {
			ev := event.New(event.CategoryMouse, event.KindMouseMotion, "term")
			ev.Pos = pos
			out = append(out, ev)
		}
	}

	return out
}

// translateButton maps a tcell button mask to a dispatch button, following
// tcell's primary/secondary/middle layout.
func translateButton(b tcell.ButtonMask) event.Button {
	switch {
	case b&tcell.Button1 != 0:
		return event.ButtonLeft
	case b&tcell.Button2 != 0:
		return event.ButtonMiddle
	case b&tcell.Button3 != 0:
		return event.ButtonRight
	default:
		return event.ButtonNone
	}
}
