// Package system implements the operating-system collaborators: package
// management, file operations and process control. Every action reports
// (success, message); the router surfaces the message untouched.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/maysielabs/maysie/internal/ports"
)

// PackageManagerKind enumerates supported distribution package managers.
type PackageManagerKind string

const (
	PkgApt     PackageManagerKind = "apt"
	PkgDnf     PackageManagerKind = "dnf"
	PkgYum     PackageManagerKind = "yum"
	PkgPacman  PackageManagerKind = "pacman"
	PkgZypper  PackageManagerKind = "zypper"
	PkgUnknown PackageManagerKind = "unknown"
)

// Packages manages system packages through the detected package manager,
// escalating via the privileged executor.
type Packages struct {
	kind   PackageManagerKind
	sudo   ports.PrivilegedExecutor
	logger ports.Logger
}

// NewPackages detects the system package manager once at construction.
func NewPackages(sudo ports.PrivilegedExecutor, log ports.Logger) *Packages {
	kind := detectPackageManager()
	log.Info("detected package manager", map[string]interface{}{"kind": string(kind)})
	return &Packages{kind: kind, sudo: sudo, logger: log}
}

func detectPackageManager() PackageManagerKind {
	for _, kind := range []PackageManagerKind{PkgApt, PkgDnf, PkgYum, PkgPacman, PkgZypper} {
		if _, err := exec.LookPath(string(kind)); err == nil {
			return kind
		}
	}

	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return PkgUnknown
	}
	content := strings.ToLower(string(data))
	switch {
	case strings.Contains(content, "ubuntu"), strings.Contains(content, "debian"):
		return PkgApt
	case strings.Contains(content, "fedora"):
		return PkgDnf
	case strings.Contains(content, "rhel"), strings.Contains(content, "centos"):
		return PkgYum
	case strings.Contains(content, "arch"), strings.Contains(content, "manjaro"):
		return PkgPacman
	case strings.Contains(content, "suse"):
		return PkgZypper
	}
	return PkgUnknown
}

// Install implements ports.PackageManager.
func (p *Packages) Install(ctx context.Context, packages []string) (bool, string) {
	if len(packages) == 0 {
		return false, "No packages specified"
	}
	joined := strings.Join(packages, " ")

	command, ok := map[PackageManagerKind]string{
		PkgApt:    "apt install -y " + joined,
		PkgDnf:    "dnf install -y " + joined,
		PkgYum:    "yum install -y " + joined,
		PkgPacman: "pacman -S --noconfirm " + joined,
		PkgZypper: "zypper install -y " + joined,
	}[p.kind]
	if !ok {
		return false, fmt.Sprintf("Unsupported package manager: %s", p.kind)
	}

	p.refreshCache(ctx)

	result, err := p.sudo.RunCommand(ctx, command)
	if err != nil {
		return false, err.Error()
	}
	if result.ExitCode != 0 {
		return false, "Installation failed: " + firstNonEmpty(result.Stderr, result.Stdout)
	}
	return true, "Successfully installed: " + joined
}

// Uninstall implements ports.PackageManager. purge removes configuration
// files too (apt only).
func (p *Packages) Uninstall(ctx context.Context, packages []string, purge bool) (bool, string) {
	if len(packages) == 0 {
		return false, "No packages specified"
	}
	joined := strings.Join(packages, " ")

	aptVerb := "remove"
	if purge {
		aptVerb = "purge"
	}
	command, ok := map[PackageManagerKind]string{
		PkgApt:    fmt.Sprintf("apt %s -y %s", aptVerb, joined),
		PkgDnf:    "dnf remove -y " + joined,
		PkgYum:    "yum remove -y " + joined,
		PkgPacman: "pacman -R --noconfirm " + joined,
		PkgZypper: "zypper remove -y " + joined,
	}[p.kind]
	if !ok {
		return false, fmt.Sprintf("Unsupported package manager: %s", p.kind)
	}

	result, err := p.sudo.RunCommand(ctx, command)
	if err != nil {
		return false, err.Error()
	}
	if result.ExitCode != 0 {
		return false, "Uninstallation failed: " + firstNonEmpty(result.Stderr, result.Stdout)
	}
	return true, "Successfully uninstalled: " + joined
}

// Update implements ports.PackageManager.
func (p *Packages) Update(ctx context.Context) (bool, string) {
	command, ok := map[PackageManagerKind]string{
		PkgApt:    "apt update && apt upgrade -y",
		PkgDnf:    "dnf upgrade -y",
		PkgYum:    "yum update -y",
		PkgPacman: "pacman -Syu --noconfirm",
		PkgZypper: "zypper update -y",
	}[p.kind]
	if !ok {
		return false, fmt.Sprintf("Unsupported package manager: %s", p.kind)
	}

	result, err := p.sudo.RunCommand(ctx, command)
	if err != nil {
		return false, err.Error()
	}
	if result.ExitCode != 0 {
		return false, "Update failed: " + firstNonEmpty(result.Stderr, result.Stdout)
	}
	return true, "System updated successfully"
}

// Search implements ports.PackageManager. Searching needs no privileges.
func (p *Packages) Search(ctx context.Context, query string) (bool, string) {
	command, ok := map[PackageManagerKind]string{
		PkgApt:    "apt search " + query,
		PkgDnf:    "dnf search " + query,
		PkgYum:    "yum search " + query,
		PkgPacman: "pacman -Ss " + query,
		PkgZypper: "zypper search " + query,
	}[p.kind]
	if !ok {
		return false, fmt.Sprintf("Unsupported package manager: %s", p.kind)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
	if err != nil {
		return false, "Search failed"
	}
	if len(out) > 1000 {
		out = out[:1000]
	}
	return true, string(out)
}

// IsInstalled implements ports.PackageManager.
func (p *Packages) IsInstalled(ctx context.Context, pkg string) bool {
	command, ok := map[PackageManagerKind]string{
		PkgApt:    "dpkg -l " + pkg,
		PkgDnf:    "dnf list installed " + pkg,
		PkgYum:    "yum list installed " + pkg,
		PkgPacman: "pacman -Q " + pkg,
		PkgZypper: "zypper search -i " + pkg,
	}[p.kind]
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "sh", "-c", command).Run() == nil
}

func (p *Packages) refreshCache(ctx context.Context) {
	switch p.kind {
	case PkgApt:
		if _, err := p.sudo.RunCommand(ctx, "apt update"); err != nil {
			p.logger.Warn("package cache refresh failed", map[string]interface{}{"error": err.Error()})
		}
	case PkgDnf:
		if _, err := p.sudo.RunCommand(ctx, "dnf check-update"); err != nil {
			p.logger.Warn("package cache refresh failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var _ ports.PackageManager = (*Packages)(nil)
