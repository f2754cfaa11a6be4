package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/recur/internal/domain"
)

// LoadConfig loads recur.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Recur.Defaults.Env != "" {
		cfg.Defaults.Environment = y.Recur.Defaults.Env
	}
	if y.Recur.Defaults.Tolerance != nil {
		if *y.Recur.Defaults.Tolerance <= 0 {
			return cfg, invalid(path, "defaults.tolerance", "must be > 0")
		}
		cfg.Defaults.Tolerance = *y.Recur.Defaults.Tolerance
	}
	if y.Recur.Paths.ScenariosDir != "" {
		cfg.Paths.ScenariosDir = y.Recur.Paths.ScenariosDir
	}
	if y.Recur.Paths.EnvironmentsDir != "" {
		cfg.Paths.EnvironmentsDir = y.Recur.Paths.EnvironmentsDir
	}
	if y.Recur.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Recur.Paths.RunsDir
	}
	if y.Recur.Sweep.Concurrency != nil {
		if *y.Recur.Sweep.Concurrency < 1 {
			return cfg, invalid(path, "sweep.concurrency", "must be >= 1")
		}
		cfg.Sweep.Concurrency = *y.Recur.Sweep.Concurrency
	}

	return cfg, nil
}

func invalid(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

type yamlConfig struct {
	Recur struct {
		Defaults struct {
			Env       string   `yaml:"env"`
			Tolerance *float64 `yaml:"tolerance"`
		} `yaml:"defaults"`

		Paths struct {
			ScenariosDir    string `yaml:"scenarios_dir"`
			EnvironmentsDir string `yaml:"environments_dir"`
			RunsDir         string `yaml:"runs_dir"`
		} `yaml:"paths"`

		Sweep struct {
			Concurrency *int `yaml:"concurrency"`
		} `yaml:"sweep"`
	} `yaml:"recur"`
}
