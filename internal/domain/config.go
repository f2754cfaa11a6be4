package domain

// Config represents the workspace configuration loaded from recur.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
	Sweep    SweepConfig
}

type DefaultsConfig struct {
	Environment string
	Tolerance   float64
}

type PathsConfig struct {
	ScenariosDir    string
	EnvironmentsDir string
	RunsDir         string
}

type SweepConfig struct {
	Concurrency int
}

// DefaultConfig provides sane defaults if recur.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Environment: "dev",
			Tolerance:   DefaultTolerance,
		},
		Paths: PathsConfig{
			ScenariosDir:    "scenarios",
			EnvironmentsDir: "env",
			RunsDir:         "runs",
		},
		Sweep: SweepConfig{
			Concurrency: 4,
		},
	}
}

// WorkspaceSpec describes where a workspace should be initialized.
type WorkspaceSpec struct {
	Root string
}
