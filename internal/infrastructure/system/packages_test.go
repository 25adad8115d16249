package system

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/pkg/logger"
)

type stubExecutor struct {
	commands []string
	result   domain.ExecResult
	err      error
}

func (e *stubExecutor) RunCommand(_ context.Context, command string) (domain.ExecResult, error) {
	e.commands = append(e.commands, command)
	return e.result, e.err
}

func newTestPackages(kind PackageManagerKind, exec *stubExecutor) *Packages {
	return &Packages{kind: kind, sudo: exec, logger: logger.NewNop()}
}

func TestInstallBuildsManagerCommand(t *testing.T) {
	exec := &stubExecutor{}
	pkgs := newTestPackages(PkgApt, exec)

	ok, msg := pkgs.Install(context.Background(), []string{"vim", "curl"})
	if !ok {
		t.Fatalf("Install failed: %s", msg)
	}
	if msg != "Successfully installed: vim curl" {
		t.Fatalf("msg = %q", msg)
	}
	// apt refreshes the cache before installing.
	if len(exec.commands) != 2 || exec.commands[0] != "apt update" {
		t.Fatalf("commands = %v", exec.commands)
	}
	if exec.commands[1] != "apt install -y vim curl" {
		t.Fatalf("install command = %q", exec.commands[1])
	}
}

func TestInstallPacmanSkipsCacheRefresh(t *testing.T) {
	exec := &stubExecutor{}
	pkgs := newTestPackages(PkgPacman, exec)

	if ok, msg := pkgs.Install(context.Background(), []string{"vim"}); !ok {
		t.Fatalf("Install failed: %s", msg)
	}
	if len(exec.commands) != 1 || exec.commands[0] != "pacman -S --noconfirm vim" {
		t.Fatalf("commands = %v", exec.commands)
	}
}

func TestInstallRejectsEmptyAndUnknown(t *testing.T) {
	exec := &stubExecutor{}

	if ok, msg := newTestPackages(PkgApt, exec).Install(context.Background(), nil); ok || msg != "No packages specified" {
		t.Fatalf("empty install: %v, %q", ok, msg)
	}
	if ok, msg := newTestPackages(PkgUnknown, exec).Install(context.Background(), []string{"vim"}); ok || !strings.Contains(msg, "Unsupported") {
		t.Fatalf("unknown manager: %v, %q", ok, msg)
	}
	if len(exec.commands) != 0 {
		t.Fatalf("privileged executor reached: %v", exec.commands)
	}
}

func TestInstallSurfacesFailure(t *testing.T) {
	t.Run("nonzero exit", func(t *testing.T) {
		exec := &stubExecutor{result: domain.ExecResult{ExitCode: 100, Stderr: "E: Unable to locate package nope"}}
		ok, msg := newTestPackages(PkgPacman, exec).Install(context.Background(), []string{"nope"})
		if ok || !strings.Contains(msg, "Unable to locate package") {
			t.Fatalf("got %v, %q", ok, msg)
		}
	})

	t.Run("executor error", func(t *testing.T) {
		exec := &stubExecutor{err: errors.New("no sudo credentials cached: use 'sudo code:<password>' first")}
		ok, msg := newTestPackages(PkgPacman, exec).Install(context.Background(), []string{"vim"})
		if ok || !strings.Contains(msg, "sudo code:") {
			t.Fatalf("got %v, %q", ok, msg)
		}
	})
}

func TestUninstall(t *testing.T) {
	t.Run("plain remove", func(t *testing.T) {
		exec := &stubExecutor{}
		ok, msg := newTestPackages(PkgApt, exec).Uninstall(context.Background(), []string{"nano"}, false)
		if !ok {
			t.Fatalf("Uninstall failed: %s", msg)
		}
		if exec.commands[0] != "apt remove -y nano" {
			t.Fatalf("command = %q", exec.commands[0])
		}
	})

	t.Run("purge switches the apt verb", func(t *testing.T) {
		exec := &stubExecutor{}
		ok, msg := newTestPackages(PkgApt, exec).Uninstall(context.Background(), []string{"nano"}, true)
		if !ok {
			t.Fatalf("Uninstall failed: %s", msg)
		}
		if exec.commands[0] != "apt purge -y nano" {
			t.Fatalf("command = %q", exec.commands[0])
		}
	})
}

func TestUpdate(t *testing.T) {
	exec := &stubExecutor{}
	ok, msg := newTestPackages(PkgDnf, exec).Update(context.Background())
	if !ok {
		t.Fatalf("Update failed: %s", msg)
	}
	if msg != "System updated successfully" {
		t.Fatalf("msg = %q", msg)
	}
	if exec.commands[0] != "dnf upgrade -y" {
		t.Fatalf("command = %q", exec.commands[0])
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "stderr text", "stdout"); got != "stderr text" {
		t.Fatalf("firstNonEmpty = %q", got)
	}
	if got := firstNonEmpty("", "   "); got != "" {
		t.Fatalf("firstNonEmpty on blanks = %q", got)
	}
}
