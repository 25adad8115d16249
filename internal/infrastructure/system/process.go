package system

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// Processes lists, kills and launches processes via the platform toolchain.
type Processes struct{}

// NewProcesses builds the process-management collaborator.
func NewProcesses() *Processes {
	return &Processes{}
}

// List implements ports.ProcessManager. filter narrows results to process
// names containing the given substring (case-insensitive).
func (p *Processes) List(filter string) ([]domain.ProcessInfo, error) {
	out, err := exec.Command("ps", "axo", "pid,comm,pcpu,pmem", "--no-headers").Output()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	filter = strings.ToLower(filter)
	var processes []domain.ProcessInfo
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		name := fields[1]
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		cpu, _ := strconv.ParseFloat(fields[2], 64)
		mem, _ := strconv.ParseFloat(fields[3], 64)
		processes = append(processes, domain.ProcessInfo{PID: pid, Name: name, CPU: cpu, Memory: mem})
	}
	return processes, nil
}

// KillByName implements ports.ProcessManager.
func (p *Processes) KillByName(name string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, "No process name specified"
	}
	if err := exec.Command("pkill", "-f", name).Run(); err != nil {
		return false, "No matching processes found: " + name
	}
	return true, "Killed processes matching: " + name
}

// Launch implements ports.ProcessManager. The application is started
// detached; Maysie does not wait on it.
func (p *Processes) Launch(app string) (bool, string) {
	if strings.TrimSpace(app) == "" {
		return false, "No application specified"
	}
	cmd := exec.Command("sh", "-c", app+" >/dev/null 2>&1 &")
	if err := cmd.Run(); err != nil {
		return false, "Failed to launch: " + app
	}
	return true, "Launched: " + app
}

var _ ports.ProcessManager = (*Processes)(nil)
