package tui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type panicModel struct{}

func (panicModel) Init() tea.Cmd { return nil }
func (panicModel) Update(tea.Msg) (tea.Model, tea.Cmd) { panic("boom in update") }
func (panicModel) View() string { panic("boom in view") }

func TestSafeModel_RecoversUpdatePanic(t *testing.T) {
	var buf bytes.Buffer
	s := wrapSafe(panicModel{}, slog.New(slog.NewJSONHandler(&buf, nil)))

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command after a panic")
	}
	if _, ok := next.(safeModel); !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if !strings.Contains(buf.String(), "boom in update") || !strings.Contains(buf.String(), `"where":"tui.update"`) {
		t.Fatalf("expected panic logged, got %s", buf.String())
	}
}

func TestSafeModel_RecoversViewPanic(t *testing.T) {
	var buf bytes.Buffer
	s := wrapSafe(panicModel{}, slog.New(slog.NewJSONHandler(&buf, nil)))

	if got := s.View(); got != "Unexpected error (see logs)" {
		t.Fatalf("unexpected view: %q", got)
	}
	if !strings.Contains(buf.String(), `"where":"tui.view"`) {
		t.Fatalf("expected panic logged, got %s", buf.String())
	}
}

func TestSafeModel_PassesThroughRecurModel(t *testing.T) {
	s := wrapSafe(newModel(Deps{}), nil)

	next, _ := s.Update(workspaceRefreshedMsg{cwd: "/ws", found: true, root: "/ws"})
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	m, ok := sm.inner.(model)
	if !ok || !m.workspaceFound || m.workspaceRoot != "/ws" {
		t.Fatalf("expected inner model updated, got %+v", sm.inner)
	}
}
