package yamlenv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/ports"
)

type Loader struct {
	rootDir       string
	envDir        string
	overridesFile string
}

type Option func(*Loader)

func WithEnvDir(dir string) Option {
	return func(l *Loader) { l.envDir = dir }
}

// WithOverridesFile sets the optional file whose vars win over every env
// (default "local.yaml", next to the env files).
func WithOverridesFile(name string) Option {
	return func(l *Loader) { l.overridesFile = name }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:       root,
		envDir:        "env",
		overridesFile: "local.yaml",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ ports.EnvironmentLoader  = (*Loader)(nil)
	_ ports.EnvironmentCatalog = (*Loader)(nil)
)

// LoadEnvironment accepts either an env name (e.g., "dev") or a full path to a YAML file.
// An empty name yields an empty environment.
func (l *Loader) LoadEnvironment(nameOrPath string) (domain.Environment, error) {
	if strings.TrimSpace(nameOrPath) == "" {
		return domain.Environment{Vars: domain.Vars{}}, nil
	}

	var envPath string
	var envName string

	if hasYAMLExt(nameOrPath) || strings.Contains(nameOrPath, string(filepath.Separator)) {
		envPath = filepath.Clean(nameOrPath)
		envName = strings.TrimSuffix(filepath.Base(envPath), filepath.Ext(envPath))
	} else {
		envName = nameOrPath
		envPath = filepath.Join(l.rootDir, l.envDir, envName+".yaml")
		if _, err := os.Stat(envPath); err != nil {
			alt := filepath.Join(l.rootDir, l.envDir, envName+".yml")
			if _, altErr := os.Stat(alt); altErr == nil {
				envPath = alt
			}
		}
	}

	base, err := readVars(envPath)
	if err != nil {
		return domain.Environment{}, err
	}

	// Local overrides are optional and win over base vars.
	overridesPath := filepath.Join(filepath.Dir(envPath), l.overridesFile)
	overrides, ovErr := readVarsOptional(overridesPath)
	if ovErr != nil {
		return domain.Environment{}, ovErr
	}

	return domain.Environment{
		Name: envName,
		Vars: domain.Merge(base, overrides),
	}, nil
}

// ListEnvironments lists env files (excluding the overrides file) sorted by name.
func (l *Loader) ListEnvironments(root string) ([]domain.EnvironmentRef, error) {
	dir := filepath.Join(root, l.envDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlenv.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.EnvironmentRef
	for _, e := range entries {
		if e.IsDir() || !hasYAMLExt(e.Name()) || e.Name() == l.overridesFile {
			continue
		}
		refs = append(refs, domain.EnvironmentRef{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

type yamlEnv struct {
	Vars map[string]float64 `yaml:"vars"`
}

func readVars(path string) (domain.Vars, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlenv.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlEnv
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlenv.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Vars == nil {
		y.Vars = map[string]float64{}
	}

	return domain.Vars(y.Vars), nil
}

func readVarsOptional(path string) (domain.Vars, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Vars{}, nil
		}
		return nil, &domain.OpError{
			Op:   "yamlenv.overrides",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	v, err := readVars(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	return v, nil
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}
