package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/metrics"
	"github.com/leeforge/modkit/plugin"
	"go.uber.org/zap"
)

// Config holds configuration for creating a new Registry.
type Config struct {
	Host    *plugin.Host
	Logger  *zap.Logger
	Metrics *metrics.Collector
}

// Entry is a snapshot of one registered plugin.
type Entry struct {
	ID           uuid.UUID
	Descriptor   plugin.Descriptor
	State        plugin.State
	Capabilities plugin.CapabilitySet
	Source       string // manifest identifier, empty when registered directly
	Err          error
	RegisteredAt time.Time
}

type record struct {
	plugin plugin.Plugin
	entry  Entry
}

// Registry holds the plugins of one host session and drives their lifecycle.
//
// Plugin code (Init, Display, Close) is serialized through callMu so that it
// always runs one call at a time, as if on a single interaction thread,
// even when the registry is reached from several goroutines. initMu holds
// the state check and the Init call of one initialization together.
type Registry struct {
	host    *plugin.Host
	logger  *zap.Logger
	metrics *metrics.Collector

	records map[string]*record
	order   []string
	mu      sync.RWMutex

	initMu sync.Mutex
	callMu sync.Mutex
}

// New creates an empty registry bound to a host.
func New(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Host == nil {
		cfg.Host = plugin.NewHost(plugin.Host{Logger: cfg.Logger})
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollector()
	}
	return &Registry{
		host:    cfg.Host,
		logger:  cfg.Logger.Named("registry"),
		metrics: cfg.Metrics,
		records: make(map[string]*record),
	}
}

// Host returns the host handle passed to plugins.
func (r *Registry) Host() *plugin.Host {
	return r.host
}

// Metrics returns the collector lifecycle events are recorded in.
func (r *Registry) Metrics() *metrics.Collector {
	return r.metrics
}

// Register adds a plugin. Names are unique: a second plugin with the same
// name is rejected whatever its other metadata.
func (r *Registry) Register(p plugin.Plugin) error {
	return r.register(p, "")
}

// RegisterFrom adds a plugin discovered through a manifest.
func (r *Registry) RegisterFrom(source string, p plugin.Plugin) error {
	return r.register(p, source)
}

func (r *Registry) register(p plugin.Plugin, source string) error {
	if p == nil {
		return apperrors.NewValidation("plugin is nil")
	}

	desc := plugin.Describe(p)
	name := desc.Name()
	if err := desc.Validate(); err != nil {
		return apperrors.NewValidation(fmt.Sprintf("plugin %q has an invalid descriptor", name)).
			WithInnerError(err).
			WithDetail("plugin", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[name]; exists {
		return apperrors.NewConflict("plugin", name)
	}

	caps := plugin.Capabilities(p)
	r.records[name] = &record{
		plugin: p,
		entry: Entry{
			ID:           uuid.New(),
			Descriptor:   desc,
			State:        plugin.StateUninitialized,
			Capabilities: caps,
			Source:       source,
			RegisteredAt: time.Now(),
		},
	}
	r.order = append(r.order, name)

	r.logger.Info("plugin registered",
		zap.String("name", name),
		zap.String("version", desc.Version().String()),
		zap.String("capabilities", caps.String()),
	)
	return nil
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) (plugin.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[name]
	if !ok {
		return nil, false
	}
	return rec.plugin, true
}

// Plugins returns all plugins in registration order.
func (r *Registry) Plugins() []plugin.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]plugin.Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name].plugin)
	}
	return out
}

// Descriptors returns the descriptors captured at registration, in order.
func (r *Registry) Descriptors() []plugin.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]plugin.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name].entry.Descriptor)
	}
	return out
}

// Entry returns a snapshot of one plugin's registration.
func (r *Registry) Entry(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[name]
	if !ok {
		return Entry{}, false
	}
	return rec.entry, true
}

// Entries returns snapshots of all registrations in order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.records[name].entry)
	}
	return out
}

// State returns the lifecycle state of a plugin by name.
func (r *Registry) State(name string) (plugin.State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[name]
	if !ok {
		return plugin.StateUninitialized, false
	}
	return rec.entry.State, true
}

// States returns a snapshot of all plugin states.
func (r *Registry) States() map[string]plugin.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]plugin.State, len(r.records))
	for name, rec := range r.records {
		out[name] = rec.entry.State
	}
	return out
}

// Init initializes one plugin. Init is called at most once per plugin: a
// ready plugin returns nil, a failed one returns its recorded error.
func (r *Registry) Init(name string) error {
	r.initMu.Lock()
	defer r.initMu.Unlock()

	r.mu.RLock()
	rec, ok := r.records[name]
	var state plugin.State
	var prevErr error
	if ok {
		state = rec.entry.State
		prevErr = rec.entry.Err
	}
	r.mu.RUnlock()

	if !ok {
		return apperrors.NewNotFound("plugin", name)
	}
	switch state {
	case plugin.StateReady:
		return nil
	case plugin.StateFailed:
		return prevErr
	}

	startTime := time.Now()
	var initialized bool
	if perr := r.call(func() { initialized = rec.plugin.Init(r.host) }); perr != nil {
		r.logger.Error("plugin init panicked", zap.String("plugin", name), zap.Error(perr))
		return r.fail(name, startTime, apperrors.NewInitialization(name).WithInnerError(perr))
	}
	if !initialized {
		return r.fail(name, startTime, apperrors.NewInitialization(name))
	}

	if fp, err := plugin.AsFeatureProvider(rec.plugin); err == nil {
		var regErr error
		if perr := r.call(func() { regErr = fp.RegisterFeatures(r.host.Features) }); perr != nil {
			regErr = perr
		}
		if regErr != nil {
			return r.fail(name, startTime, apperrors.NewInitialization(name).WithInnerError(regErr))
		}
	}

	r.setState(name, plugin.StateReady, nil)
	r.metrics.RecordInit(name, true, time.Since(startTime))
	r.logger.Info("plugin ready", zap.String("plugin", name))
	return nil
}

// InitAll initializes every uninitialized plugin that configuration leaves
// enabled, in registration order. Failures do not stop the loop; they are
// returned together and the failed plugins stay out of use.
func (r *Registry) InitAll() error {
	startTime := time.Now()
	chain := apperrors.NewErrorChain()

	for _, e := range r.Entries() {
		name := e.Descriptor.Name()
		if e.State != plugin.StateUninitialized {
			continue
		}
		if !r.host.IsEnabled(name) {
			r.logger.Info("plugin disabled by configuration, skipping", zap.String("plugin", name))
			continue
		}
		chain.Add(r.Init(name))
	}

	r.logger.Info("plugin initialization completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("plugins", r.Len()),
		zap.Int("failed", len(chain.Errors())),
	)
	return chain.Err()
}

// Tool returns the tool contract of a plugin, or an unsupported error.
func (r *Registry) Tool(name string) (plugin.Tool, error) {
	p, ok := r.Get(name)
	if !ok {
		return nil, apperrors.NewNotFound("plugin", name)
	}
	t, err := plugin.AsTool(p)
	if err != nil {
		return nil, apperrors.NewUnsupported(name, string(plugin.CapabilityTool)).WithInnerError(err)
	}
	return t, nil
}

// Tools returns ready tool plugins in registration order.
func (r *Registry) Tools() []plugin.Tool {
	var out []plugin.Tool
	for _, e := range r.Entries() {
		if e.State != plugin.StateReady || !e.Capabilities.Has(plugin.CapabilityTool) {
			continue
		}
		if t, err := r.Tool(e.Descriptor.Name()); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// Invoke runs a tool's action synchronously. The tool must be ready.
// A panic escaping the action is shown to the user through the host
// notifier and returned.
func (r *Registry) Invoke(name string) error {
	t, err := r.Tool(name)
	if err != nil {
		return err
	}
	state, _ := r.State(name)
	if !state.CanInvoke() {
		return apperrors.NewNotReady(name, state.String())
	}

	r.logger.Debug("invoking tool", zap.String("plugin", name), zap.String("display_name", t.DisplayName()))
	startTime := time.Now()
	if perr := r.call(t.Display); perr != nil {
		r.metrics.RecordInvoke(name, "panic", time.Since(startTime))
		r.logger.Error("tool action panicked", zap.String("plugin", name), zap.Error(perr))
		r.host.Notifier.Critical(r.host.Window, t.DisplayName(), perr.Error())
		return perr
	}
	r.metrics.RecordInvoke(name, "ok", time.Since(startTime))
	return nil
}

// Shutdown closes ready plugins that implement plugin.Closer, in reverse
// registration order.
func (r *Registry) Shutdown(ctx context.Context) error {
	entries := r.Entries()
	chain := apperrors.NewErrorChain()

	for i := len(entries) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			chain.Add(apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "shutdown canceled"))
			break
		}
		e := entries[i]
		if e.State != plugin.StateReady || !e.Capabilities.Has(plugin.CapabilityCloser) {
			continue
		}
		name := e.Descriptor.Name()
		p, _ := r.Get(name)
		closer := p.(plugin.Closer)

		var closeErr error
		if perr := r.call(func() { closeErr = closer.Close() }); perr != nil {
			closeErr = perr
		}
		if closeErr != nil {
			r.logger.Error("plugin close failed", zap.String("plugin", name), zap.Error(closeErr))
			chain.Add(apperrors.Wrap(closeErr, fmt.Sprintf("close plugin %q", name)))
		}
	}

	r.logger.Info("shutdown completed")
	return chain.Err()
}

// --- Internal ---

// call runs plugin code under callMu, converting a panic into an error.
func (r *Registry) call(fn func()) (panicErr *apperrors.AppError) {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	defer apperrors.RecoverWithHandler(func(e *apperrors.AppError) { panicErr = e })
	fn()
	return nil
}

func (r *Registry) fail(name string, startTime time.Time, err *apperrors.AppError) error {
	r.setState(name, plugin.StateFailed, err)
	r.metrics.RecordInit(name, false, time.Since(startTime))
	r.logger.Warn("plugin initialization failed", zap.String("plugin", name), zap.Error(err))
	return err
}

func (r *Registry) setState(name string, state plugin.State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[name]; ok {
		rec.entry.State = state
		rec.entry.Err = err
	}
}
