// Package app wires application services with infrastructure adapters.
// Every component is constructed exactly once here and handed its
// dependencies explicitly; there are no process-wide singletons.
package app

import (
	"context"
	"time"

	"github.com/maysielabs/maysie/internal/application/router"
	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/infrastructure/ai"
	"github.com/maysielabs/maysie/internal/infrastructure/config"
	"github.com/maysielabs/maysie/internal/infrastructure/history"
	"github.com/maysielabs/maysie/internal/infrastructure/intent"
	"github.com/maysielabs/maysie/internal/infrastructure/security"
	"github.com/maysielabs/maysie/internal/infrastructure/sudo"
	"github.com/maysielabs/maysie/internal/infrastructure/system"
	"github.com/maysielabs/maysie/internal/pkg/logger"
	"github.com/maysielabs/maysie/internal/ports"
)

// Container holds the constructed dependency graph.
type Container struct {
	Config      domain.Config
	Router      *router.Service
	Credentials *security.CredentialStore
	SudoCache   *sudo.Cache
	History     ports.HistoryRepository
	Logger      ports.Logger
}

// BuildContainer constructs the dependency graph bottom-up: cipher, stores,
// providers, guard, cache, then the router on top.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	cipher, err := security.NewCipher(cfg.Security.KeyFile, log)
	if err != nil {
		return nil, err
	}
	credStore := security.NewCredentialStore(cfg.Security.CredentialsFile, cipher, log)

	httpClient := ai.NewHTTPClient()
	registry := ai.NewRegistry(
		ai.NewGemini(credStore.GetOr("gemini_api_key", ""), httpClient),
		ai.NewChatGPT(credStore.GetOr("openai_api_key", ""), httpClient),
		ai.NewDeepSeek(credStore.GetOr("deepseek_api_key", ""), httpClient),
	)

	selector, err := ai.NewSelector(cfg.AI, registry, log)
	if err != nil {
		return nil, err
	}
	classifier, err := intent.NewClassifier(selector)
	if err != nil {
		return nil, err
	}

	guard := security.NewGuard(cfg.Sudo.DangerousCommands)
	runner := sudo.NewRunner(time.Duration(cfg.Sudo.ExecTimeoutSeconds) * time.Second)
	sudoCache := sudo.NewCache(runner, guard, runner, log,
		time.Duration(cfg.Sudo.CacheTimeoutSeconds)*time.Second,
		time.Duration(cfg.Sudo.SweepIntervalSeconds)*time.Second)

	historyStore := history.NewSQLiteStore(cfg.History.Path)

	routerService := &router.Service{
		Classifier: classifier,
		Registry:   registry,
		SudoCache:  sudoCache,
		Packages:   system.NewPackages(sudoCache, log),
		Files:      system.NewFiles(),
		Processes:  system.NewProcesses(),
		History:    historyStore,
		Logger:     log,
		Response:   cfg.Response,
		AITimeout:  time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	}

	return &Container{
		Config:      cfg,
		Router:      routerService,
		Credentials: credStore,
		SudoCache:   sudoCache,
		History:     historyStore,
		Logger:      log,
	}, nil
}

// Close stops background tasks and releases storage handles.
func (c *Container) Close() {
	c.SudoCache.Close()
	if err := c.History.Close(); err != nil {
		c.Logger.Warn("closing history store failed", map[string]interface{}{"error": err.Error()})
	}
}
