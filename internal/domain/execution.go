package domain

// ExecResult wraps the outcome of a privileged subprocess.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProcessInfo is one row of a process listing.
type ProcessInfo struct {
	PID    int
	Name   string
	CPU    float64
	Memory float64
}
