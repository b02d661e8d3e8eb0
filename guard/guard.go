// Package guard holds the process-wide egress enforcement state: the
// enabled flag, the whitelist, and the set of installed hooks.
package guard

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/netlock-dev/netlock/domain/entities"
	neterrors "github.com/netlock-dev/netlock/domain/errors"
	"github.com/netlock-dev/netlock/domain/policy"
	"github.com/netlock-dev/netlock/domain/ports"
	netlog "github.com/netlock-dev/netlock/log"
)

// Guard owns the enforcement lifecycle. Enable/Disable/ScopedAllow
// transitions are serialized by a mutex; decision reads on the hot path
// are lock-free. A temporary-allow window opened by ScopedAllow is
// process-wide, not per-goroutine: traffic from other goroutines is
// unenforced for its duration.
type Guard struct {
	mu        sync.Mutex // serializes lifecycle transitions
	enabled   atomic.Bool
	debug     atomic.Bool
	matcher   *policy.Matcher
	installed map[string]ports.Hook
	cfg       guardConfig
	level     *slog.LevelVar
	logger    *slog.Logger
}

var _ ports.Gate = (*Guard)(nil)

type guardConfig struct {
	hooks      []ports.Hook
	hookSource func() []ports.Hook
	denial     ports.DenialHandler
	logger     *slog.Logger
	whitelist  []string
}

// Option configures a Guard.
type Option func(*guardConfig)

// WithHooks sets a fixed hook set. Later hooks with a duplicate category
// are ignored at install time.
func WithHooks(hooks ...ports.Hook) Option {
	return func(c *guardConfig) {
		c.hooks = append(c.hooks, hooks...)
	}
}

// WithHookSource sets a function queried at each Enable for the hook set.
// This lets optional hook providers registered after construction be picked
// up, and is how the default guard binds to the hooks package.
func WithHookSource(source func() []ports.Hook) Option {
	return func(c *guardConfig) {
		c.hookSource = source
	}
}

// WithDenialHandler sets the handler invoked on every denial.
// Default reports through the guard's logger.
func WithDenialHandler(h ports.DenialHandler) Option {
	return func(c *guardConfig) {
		if h != nil {
			c.denial = h
		}
	}
}

// WithLogger sets the logger for diagnostics and denials.
func WithLogger(logger *slog.Logger) Option {
	return func(c *guardConfig) {
		c.logger = logger
	}
}

// WithAllowedHosts seeds the whitelist.
func WithAllowedHosts(hosts ...string) Option {
	return func(c *guardConfig) {
		c.whitelist = append(c.whitelist, hosts...)
	}
}

// New creates a Guard with enforcement off and an empty whitelist unless
// seeded via options. Tests construct isolated guards with stub hooks;
// the package-level API in the root package shares one process-wide guard.
func New(opts ...Option) *Guard {
	cfg := guardConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Guard{
		matcher:   policy.NewMatcher(cfg.whitelist...),
		installed: make(map[string]ports.Hook),
		cfg:       cfg,
		level:     new(slog.LevelVar),
	}
	g.level.Set(slog.LevelInfo)

	g.logger = cfg.logger
	if g.logger == nil {
		g.logger = slog.New(netlog.NewHandler(netlog.WithLevel(g.level)))
	}
	if g.cfg.denial == nil {
		g.cfg.denial = &policy.SlogDenialHandler{Logger: g.logger}
	}
	return g
}

// Enable installs every available hook and enters the enforcing state.
// Idempotent: enabling an enabled guard is a no-op. Installation failures
// are non-fatal; the failing category is skipped, logged when debug is on,
// and enforcement proceeds for the rest.
func (g *Guard) Enable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.enabled.Load() {
		return
	}

	for _, h := range g.hookSet() {
		cat := h.Category()
		if _, ok := g.installed[cat]; ok {
			continue
		}
		if err := h.Install(g); err != nil {
			g.Debugf("skipping hook: %v", &neterrors.InstallError{Category: cat, Err: err})
			continue
		}
		g.installed[cat] = h
	}
	g.enabled.Store(true)
	g.Debugf("enforcement enabled, %d hooks installed", len(g.installed))
}

// Disable restores every installed original handle and exits the enforcing
// state. Idempotent, and never fails: only the categories recorded as
// installed during Enable are restored, so a category that never installed
// is naturally skipped.
func (g *Guard) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.enabled.Load() {
		return
	}

	for cat, h := range g.installed {
		h.Uninstall()
		delete(g.installed, cat)
	}
	g.enabled.Store(false)
	g.Debugf("enforcement disabled, originals restored")
}

// IsEnabled reports whether enforcement is active.
func (g *Guard) IsEnabled() bool {
	return g.enabled.Load()
}

// ScopedAllow runs fn with enforcement suspended and restores the prior
// state on every exit path, including a panic inside fn. Entered while
// enforcement is off, it is a transparent wrapper and does not enable on
// exit. The suspension is process-wide for the duration of fn.
func (g *Guard) ScopedAllow(fn func() error) error {
	g.Debugf("entering scoped allow")
	wasEnabled := g.IsEnabled()
	if wasEnabled {
		g.Disable()
	}
	defer func() {
		if wasEnabled {
			g.Enable()
		}
	}()
	return fn()
}

// AddAllowedHost adds a whitelist entry, effective on the next attempt.
func (g *Guard) AddAllowedHost(hostOrDomain string) {
	g.matcher.Add(hostOrDomain)
	g.Debugf("whitelist add: %s", hostOrDomain)
}

// RemoveAllowedHost removes a whitelist entry, effective on the next attempt.
func (g *Guard) RemoveAllowedHost(hostOrDomain string) {
	g.matcher.Remove(hostOrDomain)
	g.Debugf("whitelist remove: %s", hostOrDomain)
}

// AllowedHosts returns the current whitelist, sorted.
func (g *Guard) AllowedHosts() []string {
	return g.matcher.Entries()
}

// SetDebug toggles diagnostic logging. Independent of the enabled state.
func (g *Guard) SetDebug(enabled bool) {
	g.debug.Store(enabled)
	if enabled {
		g.level.Set(slog.LevelDebug)
	} else {
		g.level.Set(slog.LevelInfo)
	}
}

// Debug reports whether diagnostic logging is on.
func (g *Guard) Debug() bool {
	return g.debug.Load()
}

// InstalledCategories returns the sorted categories currently installed.
// Non-empty exactly while the guard is enabled.
func (g *Guard) InstalledCategories() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	cats := make([]string, 0, len(g.installed))
	for cat := range g.installed {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Enforcing implements ports.Gate.
func (g *Guard) Enforcing() bool {
	return g.enabled.Load()
}

// Check implements ports.Gate: transparent passthrough while enforcement
// is off, otherwise the whitelist decides.
func (g *Guard) Check(req entities.ConnectRequest) error {
	if !g.enabled.Load() {
		return nil
	}
	if g.matcher.Allowed(req.Host) {
		g.Debugf("allowing %s via %s", req.Host, req.Category)
		return nil
	}
	reason := "host not in whitelist"
	if req.Host == "" {
		reason = "no destination host"
	}
	return g.Deny(req, reason)
}

// Deny implements ports.Gate: reports the denial and returns the error.
func (g *Guard) Deny(req entities.ConnectRequest, reason string) error {
	g.cfg.denial.OnDenial(req, reason)
	return &neterrors.DeniedError{Host: req.Host, Port: req.Port, Category: req.Category}
}

// Debugf implements ports.Gate.
func (g *Guard) Debugf(format string, args ...any) {
	if !g.debug.Load() {
		return
	}
	g.logger.Debug(fmt.Sprintf(format, args...))
}

func (g *Guard) hookSet() []ports.Hook {
	if g.cfg.hookSource != nil {
		return append(append([]ports.Hook(nil), g.cfg.hooks...), g.cfg.hookSource()...)
	}
	return g.cfg.hooks
}
