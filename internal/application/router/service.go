// Package router orchestrates command routing: control syntax, intent
// classification, system-action dispatch and AI queries. It is the single
// recovery boundary; every failure below it comes back as a user-facing
// string, never a propagated fault.
package router

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// DebugModeSignal tells the caller to surface the configuration entry point.
// The router only signals; presentation is an external concern.
const DebugModeSignal = "DEBUG_MODE_ACTIVATED"

const usageMessage = "Type a command (e.g. 'install vim') or ask a question."

// respondPattern is case-insensitive over the whole form, so "Respond
// bullets: ..." triggers styled handling the same as "respond bullets: ...".
// The other control prefixes ("sudo code:", "enter debug mode") stay
// case-sensitive.
var respondPattern = regexp.MustCompile(`(?i)^respond\s+(\w+):\s*(.+)`)

// Service routes one free-text command per call. It holds no per-request
// state; concurrent calls only share the read-only configuration, the
// provider registry and the internally synchronized credential cache.
type Service struct {
	Classifier ports.IntentClassifier
	Registry   ports.ProviderRegistry
	SudoCache  ports.CredentialCache
	Packages   ports.PackageManager
	Files      ports.FileOperations
	Processes  ports.ProcessManager
	History    ports.HistoryRepository
	Logger     ports.Logger
	Response   domain.ResponseSettings
	AITimeout  time.Duration
}

// Route is the single entry point for free text.
func (s *Service) Route(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return usageMessage
	}

	switch {
	case strings.HasPrefix(text, "sudo code:"):
		return s.handleSudoCode(ctx, text)
	case strings.HasPrefix(text, "enter debug mode"):
		return s.handleDebugMode(ctx, text)
	case respondPattern.MatchString(text):
		return s.handleStyledResponse(ctx, text)
	}

	intent := s.Classifier.Classify(text)

	var response string
	if intent.Type == domain.IntentSystem {
		response = s.handleSystemCommand(ctx, intent)
	} else {
		response = s.handleAIQuery(ctx, text, intent, s.defaultStyle())
	}

	s.record(text, intent, response)
	return response
}

// handleSudoCode caches the sudo secret from `sudo code:<password> [-t <minutes>]`.
func (s *Service) handleSudoCode(ctx context.Context, text string) string {
	parts := strings.Fields(text)
	if len(parts) < 2 || !strings.HasPrefix(parts[1], "code:") {
		return "Invalid syntax. Use: sudo code:<password> [-t <minutes>]"
	}
	secret := strings.TrimPrefix(parts[1], "code:")

	var ttl time.Duration
	if len(parts) > 3 && parts[2] == "-t" {
		minutes, err := strconv.Atoi(parts[3])
		if err != nil || minutes <= 0 {
			return "Invalid timeout value"
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	if err := s.SudoCache.SetSecret(ctx, secret, ttl); err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			return "✗ Invalid sudo password"
		}
		s.Logger.Error("caching sudo credential failed", err, nil)
		return "✗ Failed to cache credentials: " + err.Error()
	}

	if ttl > 0 {
		return fmt.Sprintf("✓ Sudo credentials cached for %d minutes", int(ttl.Minutes()))
	}
	return "✓ Sudo credentials cached"
}

// handleDebugMode caches the secret with an extended timeout and signals the
// caller to open the configuration surface.
func (s *Service) handleDebugMode(ctx context.Context, text string) string {
	parts := strings.SplitN(text, " ", 4)
	if len(parts) < 4 || strings.TrimSpace(parts[3]) == "" {
		return "Usage: enter debug mode <password>"
	}

	if err := s.SudoCache.SetSecret(ctx, parts[3], time.Hour); err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			return "✗ Invalid password"
		}
		s.Logger.Error("debug mode activation failed", err, nil)
		return "✗ Failed to enter debug mode: " + err.Error()
	}
	return DebugModeSignal
}

// handleStyledResponse serves `respond <style>: <query>`.
func (s *Service) handleStyledResponse(ctx context.Context, text string) string {
	m := respondPattern.FindStringSubmatch(text)
	style, query := strings.ToLower(m[1]), m[2]

	instruction, ok := s.Response.Styles[style]
	if !ok {
		instruction = s.defaultStyle()
	}

	intent := s.Classifier.Classify(query)
	if intent.Type != domain.IntentAI {
		return "Style commands only work with AI queries"
	}

	response := s.handleAIQuery(ctx, query, intent, instruction)
	s.record(query, intent, response)
	return response
}

func (s *Service) handleSystemCommand(ctx context.Context, intent domain.Intent) string {
	switch intent.Subtype {
	case domain.ActionPackageInstall:
		ok, msg := s.Packages.Install(ctx, strings.Fields(intent.Group(1)))
		return mark(ok, msg)

	case domain.ActionPackageUninstall:
		ok, msg := s.Packages.Uninstall(ctx, strings.Fields(intent.Group(1)), false)
		return mark(ok, msg)

	case domain.ActionPackageUpdate:
		ok, msg := s.Packages.Update(ctx)
		return mark(ok, msg)

	case domain.ActionFileCreate:
		kind := intent.Group(0)
		path := strings.TrimSpace(intent.Group(1))
		if strings.Contains(kind, "folder") || strings.Contains(kind, "directory") {
			ok, msg := s.Files.CreateDirectory(path)
			return mark(ok, msg)
		}
		ok, msg := s.Files.CreateFile(path)
		return mark(ok, msg)

	case domain.ActionFileMove:
		ok, msg := s.Files.Move(strings.TrimSpace(intent.Group(0)), strings.TrimSpace(intent.Group(1)))
		return mark(ok, msg)

	case domain.ActionFileDelete:
		ok, msg := s.Files.Delete(strings.TrimSpace(intent.Group(1)))
		return mark(ok, msg)

	case domain.ActionFileFind:
		matches, err := s.Files.Find(strings.TrimSpace(intent.Group(0)), strings.TrimSpace(intent.Group(1)))
		if err != nil {
			return "✗ " + err.Error()
		}
		if len(matches) == 0 {
			return "No matching files found"
		}
		return "Found:\n" + strings.Join(matches, "\n")

	case domain.ActionFileList:
		entries, err := s.Files.List(strings.TrimSpace(intent.Group(0)), false)
		if err != nil {
			return "✗ " + err.Error()
		}
		if len(entries) == 0 {
			return "Directory is empty"
		}
		return strings.Join(entries, "\n")

	case domain.ActionProcessKill:
		ok, msg := s.Processes.KillByName(strings.TrimSpace(intent.Group(0)))
		return mark(ok, msg)

	case domain.ActionProcessList:
		processes, err := s.Processes.List(strings.TrimSpace(intent.Group(1)))
		if err != nil {
			return "✗ " + err.Error()
		}
		if len(processes) == 0 {
			return "No matching processes found"
		}
		if len(processes) > 10 {
			processes = processes[:10]
		}
		var lines []string
		for _, p := range processes {
			lines = append(lines, fmt.Sprintf("PID %d: %s - CPU: %.1f, Mem: %.1f",
				p.PID, p.Name, p.CPU, p.Memory))
		}
		return "Processes:\n" + strings.Join(lines, "\n")

	case domain.ActionAppLaunch:
		ok, msg := s.Processes.Launch(strings.TrimSpace(intent.Group(1)))
		return mark(ok, msg)

	default:
		return fmt.Sprintf("System command not implemented: %s", intent.Subtype)
	}
}

func (s *Service) handleAIQuery(ctx context.Context, text string, intent domain.Intent, style string) string {
	provider, ok := s.Registry.Lookup(intent.Provider)
	if !ok {
		return fmt.Sprintf("AI provider '%s' not available", intent.Provider)
	}
	if !provider.IsConfigured() {
		return fmt.Sprintf("AI provider '%s' not configured. Add its API key with 'maysie secrets set'.", intent.Provider)
	}

	if s.AITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.AITimeout)
		defer cancel()
	}

	response, err := provider.Query(ctx, text, ports.QueryContext{ResponseStyle: style})
	if err != nil {
		s.Logger.Error("ai query failed", err, map[string]interface{}{
			"provider": provider.Name(),
		})
		return "✗ AI query failed: " + err.Error()
	}
	return response
}

func (s *Service) defaultStyle() string {
	if instruction, ok := s.Response.Styles[s.Response.DefaultStyle]; ok {
		return instruction
	}
	return "Provide a clear, helpful response."
}

func (s *Service) record(input string, intent domain.Intent, response string) {
	if s.History == nil {
		return
	}
	err := s.History.Save(domain.HistoryRecord{
		Input:     input,
		Intent:    intent.Type,
		Subtype:   intent.Subtype,
		Provider:  intent.Provider,
		Response:  response,
		Succeeded: !strings.HasPrefix(response, "✗"),
	})
	if err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func mark(ok bool, msg string) string {
	if ok {
		return "✓ " + msg
	}
	return "✗ " + msg
}
