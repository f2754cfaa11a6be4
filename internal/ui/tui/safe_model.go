package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// safeModel keeps the TUI alive when the wrapped model panics. The panic is
// logged with the env and scenario that were active; a recur model is sent
// back to the home screen with any pending run dropped.
type safeModel struct {
	inner tea.Model
	log   *slog.Logger
}

func wrapSafe(m tea.Model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{inner: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.inner.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r)
			if m, ok := s.inner.(model); ok {
				m.scr = screenHome
				m.running = false
				m.toast = "Unexpected error (see logs)"
				s.inner = m
			}
			tm = s
			cmd = nil
		}
	}()

	next, c := s.inner.Update(msg)
	if sm, ok := next.(safeModel); ok {
		return sm, c
	}
	s.inner = next
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = "Unexpected error (see logs)"
		}
	}()
	return s.inner.View()
}

func (s safeModel) logPanic(where string, r any) {
	attrs := []any{
		"where", where,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	}
	if m, ok := s.inner.(model); ok {
		attrs = append(attrs, "env", m.env(), "scenario", m.lastRun.ScenarioName)
	}
	s.log.Error("panic.recovered", attrs...)
}

var _ tea.Model = (*safeModel)(nil)
