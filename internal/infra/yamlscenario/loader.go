package yamlscenario

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
	scenariosDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{scenariosDir: "scenarios"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithScenariosDir(dir string) Option {
	return func(l *Loader) { l.scenariosDir = dir }
}

var _ ports.ScenarioLoader = (*Loader)(nil)

func (l *Loader) LoadScenario(path string) (domain.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Scenario{}, &domain.OpError{
			Op:   "yamlscenario.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlScenario
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.Scenario{}, &domain.OpError{
			Op:   "yamlscenario.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys)
}

func (l *Loader) ListScenarios(root string) ([]domain.ScenarioRef, error) {
	dir := filepath.Join(root, l.scenariosDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlscenario.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ScenarioRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readScenarioName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.ScenarioRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readScenarioName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlScenario struct {
	Name      string             `yaml:"name"`
	Vars      map[string]float64 `yaml:"vars"`
	Params    yamlParams         `yaml:"params"`
	Tolerance *float64           `yaml:"tolerance"`
	Checks    []yamlCheck        `yaml:"checks"`
}

// Params are strings so plain numbers and expressions share one field.
type yamlParams struct {
	N     string `yaml:"n"`
	Y0    string `yaml:"y0"`
	X0    string `yaml:"x0"`
	Beta  string `yaml:"beta"`
	Alpha string `yaml:"alpha"`
}

type yamlCheck struct {
	Path   string   `yaml:"path"`
	Exists bool     `yaml:"exists"`
	Eq     *string  `yaml:"eq"`
	Gt     *float64 `yaml:"gt"`
	Lt     *float64 `yaml:"lt"`
	Approx *float64 `yaml:"approx"`
	Tol    *float64 `yaml:"tol"`
}

func mapAndValidate(path string, ys yamlScenario) (domain.Scenario, error) {
	name := strings.TrimSpace(ys.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if strings.TrimSpace(ys.Params.N) == "" {
		return domain.Scenario{}, invalidField(path, "params.n", "n is required")
	}
	if strings.TrimSpace(ys.Params.Alpha) == "" {
		return domain.Scenario{}, invalidField(path, "params.alpha", "alpha is required")
	}

	sc := domain.Scenario{
		Name: name,
		Path: path,
		Vars: domain.Vars(ys.Vars),
		Exprs: domain.ParamExprs{
			N:     ys.Params.N,
			Y0:    ys.Params.Y0,
			X0:    ys.Params.X0,
			Beta:  ys.Params.Beta,
			Alpha: ys.Params.Alpha,
		},
		Checks: make([]domain.Check, 0, len(ys.Checks)),
	}
	if sc.Vars == nil {
		sc.Vars = domain.Vars{}
	}

	if ys.Tolerance != nil {
		if *ys.Tolerance <= 0 {
			return domain.Scenario{}, invalidField(path, "tolerance", "must be > 0")
		}
		sc.Tolerance = *ys.Tolerance
	}

	for i, c := range ys.Checks {
		field := fmt.Sprintf("checks[%d]", i)
		p := strings.TrimSpace(c.Path)
		if p == "" {
			return domain.Scenario{}, invalidField(path, field+".path", "path is required")
		}
		if !strings.HasPrefix(p, "$") {
			return domain.Scenario{}, invalidField(path, field+".path", fmt.Sprintf("jsonpath must start with $, got %q", p))
		}
		if !c.Exists && c.Eq == nil && c.Gt == nil && c.Lt == nil && c.Approx == nil {
			return domain.Scenario{}, invalidField(path, field, "at least one of exists/eq/gt/lt/approx is required")
		}
		if c.Tol != nil && c.Approx == nil {
			return domain.Scenario{}, invalidField(path, field+".tol", "tol requires approx")
		}

		sc.Checks = append(sc.Checks, domain.Check{
			Path:      p,
			Exists:    c.Exists,
			Eq:        c.Eq,
			Gt:        c.Gt,
			Lt:        c.Lt,
			Approx:    c.Approx,
			ApproxTol: c.Tol,
		})
	}

	return sc, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlscenario.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
