// Package intent implements first-match regex classification of free-text
// commands into system actions or AI queries.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

type actionPattern struct {
	subtype domain.ActionSubtype
	expr    string
}

// Declaration order is load-bearing: earlier patterns win on overlap, so
// "list all processes" must be tried before the generic file "list".
var systemPatterns = []actionPattern{
	{domain.ActionPackageInstall, `\b(install|setup)\s+([a-zA-Z0-9\-_\s]+)`},
	{domain.ActionPackageUninstall, `\b(uninstall|remove)\s+([a-zA-Z0-9\-_\s]+)`},
	{domain.ActionPackageUpdate, `\b(update|upgrade)\s+(system|packages?)`},
	{domain.ActionFileCreate, `\bcreate\s+(file|folder|directory)\s+(.+)`},
	{domain.ActionFileMove, `\bmove\s+(.+?)\s+to\s+(.+)`},
	{domain.ActionFileDelete, `\bdelete\s+(file|folder)?\s*(.+)`},
	{domain.ActionFileFind, `\bfind\s+(.+?)\s+in\s+(.+)`},
	{domain.ActionProcessList, `\blist\s+(all\s+)?processes?\s*(.+)?`},
	{domain.ActionFileList, `\blist\s+(.+)`},
	{domain.ActionProcessKill, `\bkill\s+(.+)`},
	{domain.ActionAppLaunch, `\b(launch|open|start)\s+(.+)`},
}

// Classifier tests an ordered list of compiled system-action patterns and
// falls through to the provider selector for everything else.
type Classifier struct {
	patterns []compiledPattern
	selector ports.ProviderSelector
}

type compiledPattern struct {
	subtype domain.ActionSubtype
	re      *regexp.Regexp
}

// NewClassifier compiles the system-action patterns. A malformed pattern is a
// configuration error reported here, never at classification time.
func NewClassifier(selector ports.ProviderSelector) (*Classifier, error) {
	compiled := make([]compiledPattern, 0, len(systemPatterns))
	for _, p := range systemPatterns {
		re, err := regexp.Compile(p.expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", p.subtype, err)
		}
		compiled = append(compiled, compiledPattern{subtype: p.subtype, re: re})
	}
	return &Classifier{patterns: compiled, selector: selector}, nil
}

// Classify implements ports.IntentClassifier. The input is lower-cased before
// matching; the first matching pattern wins and its capture groups ride along
// on the intent for the downstream action handler.
func (c *Classifier) Classify(text string) domain.Intent {
	lowered := strings.ToLower(text)

	for _, p := range c.patterns {
		if m := p.re.FindStringSubmatch(lowered); m != nil {
			return domain.SystemIntent(p.subtype, m[1:])
		}
	}

	return domain.AIIntent(c.selector.Select(text))
}

var _ ports.IntentClassifier = (*Classifier)(nil)
