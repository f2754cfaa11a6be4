package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/recur/internal/domain"
)

func TestModel_WorkspaceRefreshLoadsLists(t *testing.T) {
	m := newModel(Deps{})

	next, cmd := m.Update(workspaceRefreshedMsg{cwd: "/ws", found: true, root: "/ws"})
	mm := next.(model)
	if !mm.workspaceFound || mm.workspaceRoot != "/ws" {
		t.Fatalf("expected workspace recorded, got %+v", mm)
	}
	if cmd == nil {
		t.Fatalf("expected loaders to be scheduled")
	}

	next, _ = mm.Update(scenariosLoadedMsg{root: "/ws", refs: []domain.ScenarioRef{
		{Name: "baseline", Path: "/ws/scenarios/baseline.yaml"},
		{Name: "rebound", Path: "/ws/scenarios/rebound.yaml"},
	}})
	mm = next.(model)
	if got := len(mm.menu.Items()); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}

	next, _ = mm.Update(envsLoadedMsg{root: "/ws", defaultEnv: "slow", refs: []domain.EnvironmentRef{
		{Name: "dev"}, {Name: "slow"},
	}})
	mm = next.(model)
	if mm.env() != "slow" {
		t.Fatalf("expected default env selected, got %q", mm.env())
	}

	next, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	mm = next.(model)
	if mm.env() != "dev" {
		t.Fatalf("expected env to cycle, got %q", mm.env())
	}
}

func TestModel_IgnoresStaleScenarioList(t *testing.T) {
	m := newModel(Deps{})
	m.workspaceFound = true
	m.workspaceRoot = "/current"

	next, _ := m.Update(scenariosLoadedMsg{root: "/old", refs: []domain.ScenarioRef{{Name: "x"}}})
	if got := len(next.(model).menu.Items()); got != 0 {
		t.Fatalf("expected stale list ignored, got %d items", got)
	}
}

func TestModel_RunnerDoneShowsResult(t *testing.T) {
	m := newModel(Deps{})
	m.running = true

	run := domain.RunArtifact{
		ScenarioName: "baseline",
		Comparison:   domain.Comparison{Iterative: 1, ClosedForm: 1, Agree: true},
	}
	next, _ := m.Update(runnerDoneMsg{run: run, id: "run-9"})
	mm := next.(model)
	if mm.running || mm.scr != screenResult {
		t.Fatalf("expected result screen, got scr=%v running=%v", mm.scr, mm.running)
	}
	if v := mm.View(); !strings.Contains(v, "baseline") || !strings.Contains(v, "run-9") {
		t.Fatalf("expected result card, got:\n%s", v)
	}

	next, _ = mm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(model).scr != screenHome {
		t.Fatalf("expected esc to go home")
	}
}

func TestModel_RunnerErrorSetsToast(t *testing.T) {
	m := newModel(Deps{})

	err := &domain.OpError{Op: "yamlscenario.load", Kind: domain.KindNotFound, Err: errors.New("gone")}
	next, _ := m.Update(runnerDoneMsg{err: err})
	mm := next.(model)
	if mm.toast != "Scenario not found" {
		t.Fatalf("unexpected toast %q", mm.toast)
	}
	if !strings.Contains(mm.View(), "Run failed") {
		t.Fatalf("expected failure card")
	}
}

func TestModel_NoWorkspaceBanner(t *testing.T) {
	m := newModel(Deps{})
	next, _ := m.Update(workspaceRefreshedMsg{cwd: "/tmp", found: false, err: domain.ErrNotFound})
	if v := next.(model).View(); !strings.Contains(v, "No workspace found") {
		t.Fatalf("expected banner, got:\n%s", v)
	}
}
