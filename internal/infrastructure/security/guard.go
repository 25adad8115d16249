package security

import (
	"strings"

	"github.com/maysielabs/maysie/internal/ports"
)

// protectedPaths are the top-level system directories a recursive delete must
// never target, with or without a leading separator.
var protectedPaths = []string{"/", "/usr", "/etc", "/var", "/bin", "/sbin", "/lib"}

// Guard vetoes commands matching the configured deny list or the
// recursive-delete heuristic. Evaluation is pure; the guard never executes
// anything.
type Guard struct {
	denyPatterns []string
}

// NewGuard builds a guard from the configured deny substrings.
func NewGuard(denyPatterns []string) *Guard {
	lowered := make([]string, 0, len(denyPatterns))
	for _, p := range denyPatterns {
		lowered = append(lowered, strings.ToLower(p))
	}
	return &Guard{denyPatterns: lowered}
}

// IsDangerous implements ports.CommandGuard. The command is lower-cased and
// trimmed, then checked for deny-list containment and for a recursive delete
// rooted at a protected system path. Either check firing flags the command.
func (g *Guard) IsDangerous(command string) bool {
	lowered := strings.ToLower(strings.TrimSpace(command))

	for _, pattern := range g.denyPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}

	return g.recursiveDeleteOfProtectedPath(lowered)
}

func (g *Guard) recursiveDeleteOfProtectedPath(lowered string) bool {
	if !strings.Contains(lowered, "rm") || !strings.Contains(lowered, "-rf") ||
		!strings.Contains(lowered, "/") {
		return false
	}
	for _, path := range protectedPaths {
		if strings.Contains(lowered, " "+path) || strings.Contains(lowered, "/"+path) {
			return true
		}
	}
	return false
}

var _ ports.CommandGuard = (*Guard)(nil)
