package manager_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/log"
	"github.com/dshills/toolframe/internal/manager"
	"github.com/dshills/toolframe/internal/menu"
	"github.com/dshills/toolframe/internal/tool"
)

func rightClick() event.Event {
	ev := event.New(event.CategoryMouse, event.KindMouseClick, "test")
	ev.Button = event.ButtonRight
	return ev
}

// menuTool schedules its context menu with the given trigger on activation
// and stays active waiting for a cancel.
func menuTool(name string, mn *menu.Menu, trigger menu.Trigger) *stubTool {
	s := newStubTool(name)
	s.onInit = func(s *stubTool, _ tool.Manager) {
		s.Go(func(event.Event) error {
			s.SetContextMenu(mn, trigger)
			s.Go(func(event.Event) error { return nil }, event.OnCancel())
			return nil
		}, event.OnActivate(name))
	}
	return s
}

func TestContextMenuTriggerNow(t *testing.T) {
	var shown []menu.Request
	m := manager.New(manager.Config{
		Presenter: menu.PresenterFunc(func(req menu.Request) {
			shown = append(shown, req)
		}),
	})

	mn := menu.New("Edit").Add("Cut", "edit.cut").Add("Paste", "edit.paste")
	m.RegisterTool(menuTool("editor", mn, menu.TriggerNow))
	m.InvokeTool("editor")

	if len(shown) != 1 {
		t.Fatalf("expected menu shown immediately, got %d requests", len(shown))
	}
	if shown[0].Tool != "editor" || shown[0].Menu != mn {
		t.Errorf("unexpected request %+v", shown[0])
	}
}

func TestContextMenuTriggerButton(t *testing.T) {
	var shown []menu.Request
	m := manager.New(manager.Config{
		Presenter: menu.PresenterFunc(func(req menu.Request) {
			shown = append(shown, req)
		}),
	})

	mn := menu.New("Edit").Add("Cut", "edit.cut")
	m.RegisterTool(menuTool("editor", mn, menu.TriggerButton))
	m.InvokeTool("editor")

	if len(shown) != 0 {
		t.Fatalf("expected no menu before trigger input, got %d", len(shown))
	}

	// An unconsumed left click is not the trigger input.
	m.ProcessEvent(leftClick())
	if len(shown) != 0 {
		t.Fatalf("expected no menu on left click, got %d", len(shown))
	}

	m.ProcessEvent(rightClick())
	if len(shown) != 1 {
		t.Fatalf("expected menu on right click, got %d", len(shown))
	}
	if shown[0].Tool != "editor" {
		t.Errorf("unexpected request %+v", shown[0])
	}
}

func TestContextMenuTriggerOffClears(t *testing.T) {
	var shown []menu.Request
	m := manager.New(manager.Config{
		Presenter: menu.PresenterFunc(func(req menu.Request) {
			shown = append(shown, req)
		}),
	})

	mn := menu.New("Edit")
	s := newStubTool("editor")
	s.onInit = func(s *stubTool, _ tool.Manager) {
		s.Go(func(event.Event) error {
			s.SetContextMenu(mn, menu.TriggerButton)
			s.SetContextMenu(nil, menu.TriggerOff)
			s.Go(func(event.Event) error { return nil }, event.OnCancel())
			return nil
		}, event.OnActivate("editor"))
	}
	m.RegisterTool(s)
	m.InvokeTool("editor")

	m.ProcessEvent(rightClick())
	if len(shown) != 0 {
		t.Fatalf("expected disabled menu never shown, got %d", len(shown))
	}
}

func TestConsumedTriggerInputSuppressesMenu(t *testing.T) {
	var shown []menu.Request
	m := manager.New(manager.Config{
		Presenter: menu.PresenterFunc(func(req menu.Request) {
			shown = append(shown, req)
		}),
	})

	mn := menu.New("Edit")
	s := newStubTool("editor")
	s.onInit = func(s *stubTool, _ tool.Manager) {
		s.Go(func(event.Event) error {
			s.SetContextMenu(mn, menu.TriggerButton)
			// Consume the right click ourselves.
			s.Go(func(event.Event) error {
				s.Go(func(event.Event) error { return nil }, event.OnCancel())
				return nil
			}, event.OnMouse(event.KindMouseClick, event.ButtonRight))
			return nil
		}, event.OnActivate("editor"))
	}
	m.RegisterTool(s)
	m.InvokeTool("editor")

	m.ProcessEvent(rightClick())
	if len(shown) != 0 {
		t.Errorf("expected no menu for a consumed trigger input, got %d", len(shown))
	}
}

func TestHandlerErrorLoggedAndDispatchContinues(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelDebug, Output: &buf})
	m := manager.New(manager.Config{Logger: logger})

	s := newStubTool("broken")
	s.onInit = func(s *stubTool, _ tool.Manager) {
		s.Go(func(event.Event) error {
			s.Go(func(event.Event) error {
				return errTest
			}, event.OnMouse(event.KindMouseClick, event.ButtonNone))
			return nil
		}, event.OnActivate("broken"))
	}
	m.RegisterTool(s)
	m.InvokeTool("broken")

	if !m.ProcessEvent(leftClick()) {
		t.Error("expected event consumed despite handler error")
	}
	if !strings.Contains(buf.String(), "test failure") {
		t.Errorf("expected handler error logged, got %q", buf.String())
	}
}

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "test failure" }
