package tui

import "github.com/aalvaropc/recur/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type scenariosLoadedMsg struct {
	root string
	refs []domain.ScenarioRef
	err  error
}

type envsLoadedMsg struct {
	root       string
	refs       []domain.EnvironmentRef
	defaultEnv string
	err        error
}

type runnerDoneMsg struct {
	run domain.RunArtifact
	id  string
	err error
}
