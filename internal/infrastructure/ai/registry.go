// Package ai contains the AI backend adapters and provider selection logic.
package ai

import (
	"net/http"
	"time"

	"github.com/maysielabs/maysie/internal/ports"
)

const httpClientTimeout = 60 * time.Second

// NewHTTPClient builds the shared client for all backend adapters. The
// timeout is an upper bound; per-query deadlines come from the caller's
// context.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpClientTimeout}
}

// Registry is an immutable name-to-provider map built once at startup.
type Registry struct {
	providers map[string]ports.AIProvider
}

// NewRegistry indexes the given providers by Name.
func NewRegistry(providers ...ports.AIProvider) *Registry {
	indexed := make(map[string]ports.AIProvider, len(providers))
	for _, p := range providers {
		indexed[p.Name()] = p
	}
	return &Registry{providers: indexed}
}

// Lookup implements ports.ProviderRegistry.
func (r *Registry) Lookup(name string) (ports.AIProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names lists registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

var _ ports.ProviderRegistry = (*Registry)(nil)
