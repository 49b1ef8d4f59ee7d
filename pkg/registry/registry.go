// Package registry stores per-plugin link configurations and exposes the
// hook-handler entry points invoked by the host's plugin-listing filters.
//
// A registry is an explicit instance constructed once at bootstrap and handed
// to whatever dispatches the host's "action links" and "row meta" filters;
// there is no package-level singleton. Configurations are keyed by a
// caller-chosen prefix and the concrete plugin file, so one prefix can track
// several plugin files while hook lookups stay file-keyed.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	i18n "github.com/goliatone/go-i18n"
	"github.com/google/uuid"

	"github.com/goliatone/go-plugin-links/internal/render"
	"github.com/goliatone/go-plugin-links/pkg/config"
	"github.com/goliatone/go-plugin-links/pkg/interfaces/logger"
	"github.com/goliatone/go-plugin-links/pkg/links"
)

// Registry maps prefix -> plugin file -> configuration. Registration happens
// during plugin bootstrap; hook handlers only read. The mutex covers hosts
// that do not honor a single-writer bootstrap phase.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]map[string]*links.PluginConfig
	byFile  map[string]*links.PluginConfig

	cfg     config.Config
	env     render.Env
	log     logger.Logger
	onError func(error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithConfig installs module configuration (debug gate, UTM built-ins).
func WithConfig(cfg config.Config) Option {
	return func(r *Registry) {
		r.cfg = cfg
	}
}

// WithLogger wires the host debug-log sink. Lines are only emitted when the
// module debug flag is set.
func WithLogger(log logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCapabilityChecker wires the host's permission collaborator.
func WithCapabilityChecker(checker links.CapabilityChecker) Option {
	return func(r *Registry) {
		if checker != nil {
			r.env.Capability = checker
		}
	}
}

// WithEscaper overrides the default HTML escaper.
func WithEscaper(escaper links.Escaper) Option {
	return func(r *Registry) {
		if escaper != nil {
			r.env.Escaper = escaper
		}
	}
}

// WithTranslator enables label translation. Labels act as translation keys
// and fall back to their raw value when no translation exists.
func WithTranslator(translator i18n.Translator, locale string) Option {
	return func(r *Registry) {
		r.env.Translator = translator
		r.env.Locale = locale
	}
}

// WithErrorHandler observes registration failures, for bootstrap code that
// ignores return values. Registration still reports the error to its caller.
func WithErrorHandler(handler func(error)) Option {
	return func(r *Registry) {
		r.onError = handler
	}
}

// New constructs a registry. Without options it uses defaults: module config
// defaults, allow-all capability checks, entity escaping, no translation,
// and a silent logger.
func New(opts ...Option) *Registry {
	r := &Registry{
		configs: make(map[string]map[string]*links.PluginConfig),
		byFile:  make(map[string]*links.PluginConfig),
		cfg:     config.Defaults(),
		log:     &logger.Nop{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.cfg.Debug {
		r.log = &logger.Nop{}
	}
	r.env.Logger = r.log
	return r
}

// Register stores a configuration for pluginFile under prefix, replacing any
// prior registration for the same pair wholesale. Definitions are normalized
// and UTM overrides merged over the module defaults at this point; the stored
// configuration is immutable afterwards. Registration never panics: on
// failure the optional error handler is notified and a nil config returned
// with the error.
func (r *Registry) Register(prefix, pluginFile string, defs []links.DefinitionInput, utm map[string]string) (*links.PluginConfig, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, r.fail(fmt.Errorf("registry: prefix is required: %w", links.ErrInvalidConfiguration))
	}
	if strings.TrimSpace(pluginFile) == "" {
		return nil, r.fail(fmt.Errorf("registry: plugin file is required: %w", links.ErrInvalidConfiguration))
	}

	merged, err := links.MergeUTMWith(r.cfg.UTM.Params(), utm)
	if err != nil {
		return nil, r.fail(fmt.Errorf("registry: merge utm for %s: %w", prefix, err))
	}

	cfg := &links.PluginConfig{
		ID:          uuid.NewString(),
		Prefix:      prefix,
		File:        pluginFile,
		Definitions: normalizeAll(defs),
		UTM:         merged,
	}

	r.mu.Lock()
	if r.configs[prefix] == nil {
		r.configs[prefix] = make(map[string]*links.PluginConfig)
	}
	r.configs[prefix][pluginFile] = cfg
	r.byFile[pluginFile] = cfg
	r.mu.Unlock()

	r.log.Debug("registered plugin links",
		logger.Field{Key: "config", Value: cfg.ID},
		logger.Field{Key: "prefix", Value: prefix},
		logger.Field{Key: "plugin", Value: pluginFile},
		logger.Field{Key: "links", Value: len(cfg.Definitions)})
	return cfg, nil
}

// RegisterFile registers a singleton-per-file configuration, deriving the
// prefix from the plugin file's basename (sans extension).
func (r *Registry) RegisterFile(pluginFile string, defs []links.DefinitionInput, utm map[string]string) (*links.PluginConfig, error) {
	if strings.TrimSpace(pluginFile) == "" {
		return nil, r.fail(fmt.Errorf("registry: plugin file is required: %w", links.ErrInvalidConfiguration))
	}
	base := filepath.Base(pluginFile)
	prefix := strings.TrimSuffix(base, filepath.Ext(base))
	return r.Register(prefix, pluginFile, defs, utm)
}

// ActionLinks is the hook handler for the host's action-links filter. When
// pluginFile has no registered configuration the input passes through
// unchanged; the input collection is never mutated either way.
func (r *Registry) ActionLinks(existing *links.Collection, pluginFile string) *links.Collection {
	return r.process(existing, pluginFile, links.PositionAction)
}

// RowMeta is the hook handler for the host's row-meta filter.
func (r *Registry) RowMeta(existing *links.Collection, pluginFile string) *links.Collection {
	return r.process(existing, pluginFile, links.PositionMeta)
}

// Lookup returns the configuration registered for pluginFile, if any.
func (r *Registry) Lookup(pluginFile string) (*links.PluginConfig, bool) {
	r.mu.RLock()
	cfg, ok := r.byFile[pluginFile]
	r.mu.RUnlock()
	return cfg, ok
}

// Configs returns the configurations stored under prefix, keyed by file.
func (r *Registry) Configs(prefix string) map[string]*links.PluginConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.configs[prefix]
	if len(stored) == 0 {
		return nil
	}
	out := make(map[string]*links.PluginConfig, len(stored))
	for file, cfg := range stored {
		out[file] = cfg
	}
	return out
}

func (r *Registry) process(existing *links.Collection, pluginFile string, pos links.Position) *links.Collection {
	cfg, ok := r.Lookup(pluginFile)
	if !ok {
		return existing
	}
	return render.Process(existing, cfg, pos, r.env)
}

func (r *Registry) fail(err error) error {
	if r.onError != nil {
		r.onError(err)
	}
	return err
}

func normalizeAll(defs []links.DefinitionInput) []links.Definition {
	out := make([]links.Definition, 0, len(defs))
	index := make(map[string]int, len(defs))
	for _, raw := range defs {
		def := raw.Normalize()
		// Duplicate keys keep the first position with the last definition.
		if at, ok := index[def.Key]; ok {
			out[at] = def
			continue
		}
		index[def.Key] = len(out)
		out = append(out, def)
	}
	return out
}
