package ai

import (
	"regexp"
	"strings"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// FallbackProvider is selected when no routing rule matches and no usable
// default is configured. Gemini is the general-purpose backend.
const FallbackProvider = "gemini"

// Selector picks an AI backend using the configured routing rules.
//
// Rules are evaluated in list order and the first match wins; the Priority
// field on rules is carried through configuration but is deliberately not a
// sort key. Rules naming an unregistered or unconfigured provider are skipped
// silently in favor of the next candidate.
type Selector struct {
	rules           []compiledRule
	defaultProvider string
	registry        ports.ProviderRegistry
	logger          ports.Logger
}

type compiledRule struct {
	re       *regexp.Regexp
	provider string
}

// NewSelector compiles the routing rules. Malformed rule patterns are
// configuration errors surfaced at construction.
func NewSelector(cfg domain.AISettings, registry ports.ProviderRegistry, log ports.Logger) (*Selector, error) {
	rules := make([]compiledRule, 0, len(cfg.RoutingRules))
	for _, rule := range cfg.RoutingRules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiledRule{re: re, provider: rule.Provider})
	}
	return &Selector{
		rules:           rules,
		defaultProvider: cfg.DefaultProvider,
		registry:        registry,
		logger:          log,
	}, nil
}

// Select implements ports.ProviderSelector.
func (s *Selector) Select(text string) string {
	lowered := strings.ToLower(text)

	for _, rule := range s.rules {
		if !rule.re.MatchString(lowered) {
			continue
		}
		if s.available(rule.provider) {
			s.logger.Info("routing rule matched", map[string]interface{}{
				"provider": rule.provider,
				"pattern":  rule.re.String(),
			})
			return rule.provider
		}
	}

	if s.defaultProvider != "" && s.defaultProvider != "auto" && s.available(s.defaultProvider) {
		return s.defaultProvider
	}

	return FallbackProvider
}

func (s *Selector) available(name string) bool {
	provider, ok := s.registry.Lookup(name)
	return ok && provider.IsConfigured()
}

var _ ports.ProviderSelector = (*Selector)(nil)
