package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/recur/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenResult
)

type scenarioItem struct {
	ref  domain.ScenarioRef
	root string
}

func (s scenarioItem) Title() string { return s.ref.Name }
func (s scenarioItem) Description() string {
	if rel, err := filepath.Rel(s.root, s.ref.Path); err == nil {
		return rel
	}
	return s.ref.Path
}
func (s scenarioItem) FilterValue() string { return s.ref.Name }

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	menu list.Model

	workspaceFound bool
	workspaceRoot  string
	cwd            string

	envs   []string
	envIdx int

	running bool
	toast   string

	lastRun domain.RunArtifact
	lastID  string
	lastErr error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Scenarios"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenHome,
		menu:  l,
	}
	if wd, err := os.Getwd(); err == nil {
		m.cwd = wd
	}
	return m
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) env() string {
	if len(m.envs) == 0 {
		return ""
	}
	return m.envs[m.envIdx%len(m.envs)]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-12)
		return m, nil

	case workspaceRefreshedMsg:
		if msg.cwd != "" {
			m.cwd = msg.cwd
		}
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if !msg.found {
			m.menu.SetItems(nil)
			return m, nil
		}
		return m, tea.Batch(cmdLoadScenarios(msg.root), cmdLoadEnvironments(msg.root))

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace created"
		return m, cmdRefreshWorkspace(m.deps)

	case scenariosLoadedMsg:
		if msg.root != m.workspaceRoot {
			return m, nil
		}
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, scenarioItem{ref: r, root: msg.root})
		}
		cmd := m.menu.SetItems(items)
		return m, cmd

	case envsLoadedMsg:
		if msg.root != m.workspaceRoot || msg.err != nil {
			return m, nil
		}
		m.envs = make([]string, 0, len(msg.refs))
		m.envIdx = 0
		for i, r := range msg.refs {
			m.envs = append(m.envs, r.Name)
			if r.Name == msg.defaultEnv {
				m.envIdx = i
			}
		}
		return m, nil

	case runnerDoneMsg:
		m.running = false
		m.lastRun = msg.run
		m.lastID = msg.id
		m.lastErr = msg.err
		m.scr = screenResult
		if msg.err != nil {
			m.toast = userMessage(msg.err)
		} else {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.menu.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			return m, nil

		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				return m, nil
			}

		case "i":
			if m.scr == screenHome && !m.workspaceFound && m.cwd != "" {
				return m, cmdInitWorkspaceHere(m.deps, m.cwd)
			}

		case "r":
			if m.scr == screenHome {
				return m, cmdRefreshWorkspace(m.deps)
			}

		case "e":
			if m.scr == screenHome && len(m.envs) > 0 {
				m.envIdx = (m.envIdx + 1) % len(m.envs)
				return m, nil
			}

		case "enter":
			if m.scr != screenHome || m.running || !m.workspaceFound {
				return m, nil
			}
			it, ok := m.menu.SelectedItem().(scenarioItem)
			if !ok {
				return m, nil
			}
			m.running = true
			m.toast = "Running " + it.ref.Name + "…"
			_, cmd := startRunAsync(m.workspaceRoot, it.ref.Path, m.env(), m.deps.Logger, m.deps.Debug)
			return m, cmd
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("recur") + "\n" +
		m.theme.Subtitle.Render("Iterative vs closed-form evaluation of a linear recurrence") + "\n"

	var banner string
	if m.workspaceFound {
		env := m.env()
		if env == "" {
			env = "(none)"
		}
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s • env: %s", m.workspaceRoot, env))
	} else {
		banner = m.theme.Card.Render("⚠ No workspace found.\n\nPress i to create one here.")
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Subtitle.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter run • e env • r refresh • / search • q quit")
		body := ""
		if m.workspaceFound {
			body = "\n\n" + m.theme.Card.Render(m.menu.View())
		}
		return wrap.Render(header + "\n" + banner + body + toast + "\n" + help)

	case screenResult:
		var content string
		if m.lastErr != nil {
			content = m.theme.Fail.Render("Run failed") + "\n\n" + clampString(m.lastErr.Error(), 400)
		} else {
			content = renderComparison(m.theme, m.lastRun, m.lastID)
		}
		card := m.theme.Card.Render(content + "\n\n" + m.theme.Help.Render("esc/b back • q home"))
		return wrap.Render(header + "\n" + banner + "\n\n" + card + toast)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
