package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/infra/gvalexpr"
	"github.com/aalvaropc/recur/internal/infra/runstore"
	"github.com/aalvaropc/recur/internal/infra/workspacefinder"
	"github.com/aalvaropc/recur/internal/infra/yamlenv"
	"github.com/aalvaropc/recur/internal/infra/yamlscenario"
	"github.com/aalvaropc/recur/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	scenarios ports.ScenarioLoader

	envs       ports.EnvironmentLoader
	envCatalog ports.EnvironmentCatalog

	resolver ports.ParamResolver
	store    ports.ArtifactStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}
	return openWorkspace(root)
}

// loadOptionalWorkspace returns nil, nil when no flag is given and no
// workspace encloses the working directory.
func loadOptionalWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err != nil {
		if strings.TrimSpace(workspaceFlag) == "" && domain.IsKind(err, domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ws, nil
}

func openWorkspace(root string) (*workspaceCtx, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	scLoader := yamlscenario.NewLoader(
		yamlscenario.WithScenariosDir(cfg.Paths.ScenariosDir),
	)

	envLoader := yamlenv.NewLoader(
		root,
		yamlenv.WithEnvDir(cfg.Paths.EnvironmentsDir),
	)

	store := runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))

	return &workspaceCtx{
		root:       root,
		cfg:        cfg,
		scenarios:  scLoader,
		envs:       envLoader,
		envCatalog: envLoader,
		resolver:   gvalexpr.NewResolver(),
		store:      store,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `recur init`): %w", wd, err)
	}
	return root, nil
}

func resolveScenarioPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", errors.New("scenario is required (use --scenario or -s)")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	scenariosDir := filepath.Join(ws.root, ws.cfg.Paths.ScenariosDir)

	if hasYAMLExt(in) {
		p := filepath.Join(scenariosDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	p1 := filepath.Join(scenariosDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(scenariosDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// Last resort: match by the scenario "name" field.
	refs, err := ws.scenarios.ListScenarios(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "cli.resolve_scenario",
		Kind: domain.KindNotFound,
		Path: scenariosDir,
		Err:  fmt.Errorf("scenario %q: %w", in, domain.ErrNotFound),
	}
}

func resolveEnvironmentArg(ws *workspaceCtx, arg string) string {
	in := strings.TrimSpace(arg)
	if in == "" {
		return ws.cfg.Defaults.Environment
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p)
	}

	// "dev.yaml" is a file under the env dir; the loader treats it as a path.
	if hasYAMLExt(in) {
		return filepath.Join(ws.root, ws.cfg.Paths.EnvironmentsDir, in)
	}

	return in
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
