package yamlenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/recur/internal/domain"
)

func newEnvDir(t *testing.T) (root, envDir string) {
	t.Helper()
	root = filepath.Join(t.TempDir(), "ws")
	envDir = filepath.Join(root, "env")
	if err := os.MkdirAll(envDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return root, envDir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadEnvironment_MergesLocalOverrides(t *testing.T) {
	root, envDir := newEnvDir(t)
	write(t, filepath.Join(envDir, "dev.yaml"), "vars:\n  scale: 10000000\n  rate: 0.9\n")
	write(t, filepath.Join(envDir, "local.yaml"), "vars:\n  rate: 0.95\n")

	l := NewLoader(root)
	env, err := l.LoadEnvironment("dev")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}

	if env.Vars["scale"] != 1e7 {
		t.Fatalf("expected scale, got=%v", env.Vars["scale"])
	}
	if env.Vars["rate"] != 0.95 {
		t.Fatalf("expected rate=0.95 override, got=%v", env.Vars["rate"])
	}
}

func TestLoadEnvironment_OverridesMissing(t *testing.T) {
	root, envDir := newEnvDir(t)
	write(t, filepath.Join(envDir, "dev.yaml"), "vars:\n  scale: 100\n")

	env, err := NewLoader(root).LoadEnvironment("dev")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Name != "dev" || env.Vars["scale"] != 100 {
		t.Fatalf("unexpected env: %+v", env)
	}
}

func TestLoadEnvironment_EnvMissing(t *testing.T) {
	root, _ := newEnvDir(t)

	_, err := NewLoader(root).LoadEnvironment("dev")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadEnvironment_InvalidVar(t *testing.T) {
	root, envDir := newEnvDir(t)
	write(t, filepath.Join(envDir, "dev.yaml"), "vars:\n  scale: lots\n")

	_, err := NewLoader(root).LoadEnvironment("dev")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoadEnvironment_SupportsYML(t *testing.T) {
	root, envDir := newEnvDir(t)
	write(t, filepath.Join(envDir, "prod.yml"), "vars:\n  scale: 1000\n")

	env, err := NewLoader(root).LoadEnvironment("prod")
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Name != "prod" {
		t.Fatalf("expected name=prod, got=%s", env.Name)
	}
	if env.Vars["scale"] != 1000 {
		t.Fatalf("expected scale=1000, got=%v", env.Vars["scale"])
	}
}

func TestLoadEnvironment_ByPath(t *testing.T) {
	_, envDir := newEnvDir(t)
	p := filepath.Join(envDir, "custom.yaml")
	write(t, p, "vars:\n  k: 2\n")

	env, err := NewLoader("/nonexistent").LoadEnvironment(p)
	if err != nil {
		t.Fatalf("LoadEnvironment error: %v", err)
	}
	if env.Name != "custom" || env.Vars["k"] != 2 {
		t.Fatalf("unexpected env: %+v", env)
	}
}

func TestLoadEnvironment_EmptyName(t *testing.T) {
	env, err := NewLoader(t.TempDir()).LoadEnvironment("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Vars == nil || len(env.Vars) != 0 {
		t.Fatalf("expected empty vars, got %v", env.Vars)
	}
}

func TestListEnvironments(t *testing.T) {
	root, envDir := newEnvDir(t)
	write(t, filepath.Join(envDir, "stg.yaml"), "vars: {}\n")
	write(t, filepath.Join(envDir, "dev.yml"), "vars: {}\n")
	write(t, filepath.Join(envDir, "local.yaml"), "vars: {}\n")
	write(t, filepath.Join(envDir, "README.md"), "x")

	refs, err := NewLoader(root).ListEnvironments(root)
	if err != nil {
		t.Fatalf("ListEnvironments error: %v", err)
	}
	if len(refs) != 2 || refs[0].Name != "dev" || refs[1].Name != "stg" {
		t.Fatalf("unexpected refs: %+v", refs)
	}
}
