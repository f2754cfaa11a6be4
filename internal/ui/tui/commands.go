package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/infra/gvalexpr"
	"github.com/aalvaropc/recur/internal/infra/observe"
	"github.com/aalvaropc/recur/internal/infra/runstore"
	"github.com/aalvaropc/recur/internal/infra/workspacefinder"
	"github.com/aalvaropc/recur/internal/infra/yamlenv"
	"github.com/aalvaropc/recur/internal/infra/yamlscenario"
	"github.com/aalvaropc/recur/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadScenarios(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return scenariosLoadedMsg{root: root, err: err}
		}

		loader := yamlscenario.NewLoader(
			yamlscenario.WithScenariosDir(cfg.Paths.ScenariosDir),
		)

		refs, err := loader.ListScenarios(root)
		return scenariosLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdLoadEnvironments(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return envsLoadedMsg{root: root, err: err}
		}

		loader := yamlenv.NewLoader(
			root,
			yamlenv.WithEnvDir(cfg.Paths.EnvironmentsDir),
		)

		refs, err := loader.ListEnvironments(root)
		return envsLoadedMsg{root: root, refs: refs, defaultEnv: cfg.Defaults.Environment, err: err}
	}
}

func listenRunner(ch <-chan runnerDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runnerDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

func startRunAsync(
	workspaceRoot, scenarioPath, envName string,
	log *slog.Logger,
	debug bool,
) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start",
			"workspace", workspaceRoot,
			"scenario_path", scenarioPath,
			"env", envName,
			"debug", debug,
		)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("run.load_config.failed", "err", err)
			ch <- runnerDoneMsg{err: err}
			return
		}

		scLoader := yamlscenario.NewLoader(
			yamlscenario.WithScenariosDir(cfg.Paths.ScenariosDir),
		)
		envLoader := yamlenv.NewLoader(
			workspaceRoot,
			yamlenv.WithEnvDir(cfg.Paths.EnvironmentsDir),
		)
		store := runstore.NewJSONStore(workspaceRoot, cfg, runstore.WithIndex(true))

		uc := usecase.NewCompare(scLoader, envLoader, gvalexpr.NewResolver(),
			usecase.WithStore(store),
			usecase.WithTolerance(cfg.Defaults.Tolerance),
			usecase.WithObserver(observe.NewSlog(log, "scenario_path", scenarioPath)),
		)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		run, id, execErr := uc.Execute(ctx, scenarioPath, envName)

		if execErr != nil {
			log.Error("run.failed", "err", execErr, "saved_id", id)
		} else {
			log.Info("run.ok",
				"saved_id", id,
				"agree", run.Comparison.Agree,
				"abs_diff", run.Comparison.AbsDiff,
			)
		}

		if run.Comparison.Error != "" {
			log.Warn("closed_form.error", "scenario", run.ScenarioName, "message", run.Comparison.Error)
		}
		for _, c := range run.Comparison.Checks {
			if !c.Passed {
				log.Warn("check.failed", "scenario", run.ScenarioName, "name", c.Name, "message", c.Message)
			}
		}

		ch <- runnerDoneMsg{run: run, id: id, err: execErr}
	}()

	return ch, listenRunner(ch)
}
