package usecase

import (
	"errors"
	"testing"

	"github.com/aalvaropc/recur/internal/domain"
)

type fakeInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
	err   error
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.spec = spec
	f.force = force
	return f.err
}

func TestInitWorkspace_Execute(t *testing.T) {
	fi := &fakeInitializer{}
	if err := NewInitWorkspace(fi).Execute("/tmp/ws", true); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if fi.spec.Root != "/tmp/ws" || !fi.force {
		t.Fatalf("unexpected call: %+v force=%v", fi.spec, fi.force)
	}

	boom := errors.New("boom")
	if err := NewInitWorkspace(&fakeInitializer{err: boom}).Execute("x", false); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
