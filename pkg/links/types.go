package links

import "errors"

// Position selects which host link collection a hook invocation decorates.
type Position int

const (
	// PositionAction targets the plugin's primary action row.
	PositionAction Position = iota
	// PositionMeta targets the descriptive row-meta links beneath the entry.
	PositionMeta
)

// String returns the position name used in debug logs.
func (p Position) String() string {
	if p == PositionAction {
		return "action"
	}
	return "meta"
}

var (
	// ErrInvalidConfiguration signals a registration with missing required
	// identifiers (empty prefix or plugin file).
	ErrInvalidConfiguration = errors.New("links: invalid configuration")
)

// Definition is a normalized link ready for rendering. Build one from a
// DefinitionInput via Normalize rather than populating it directly.
type Definition struct {
	// Key identifies the link within its configuration and in the merged
	// output collection. Configured keys overwrite host keys of the same name.
	Key string
	// Action selects the action row; false selects row meta.
	Action bool
	// Label is untrusted display text, sanitized before emission.
	Label string
	// URL is the untrusted target, escaped before emission.
	URL string
	// ApplyUTM appends the configuration's UTM parameters to URL.
	ApplyUTM bool
	// NewTab emits target="_blank" plus rel="noopener noreferrer".
	NewTab bool
	// Capability names the permission the current caller must hold.
	// Empty means no capability check.
	Capability string
	// Visible is evaluated fresh on every hook invocation. Nil means always
	// visible.
	Visible func() bool
}

// Renderable reports whether the definition survives the content filter:
// both label and URL must be non-empty after defaulting.
func (d Definition) Renderable() bool {
	return d.Label != "" && d.URL != ""
}

// DefinitionInput is the raw caller-facing shape of a link definition.
// Omitted booleans default to true, mirroring the plugins-page conventions.
type DefinitionInput struct {
	Key        string
	Action     bool
	Label      string
	URL        string
	ApplyUTM   *bool
	NewTab     *bool
	Capability string
	Visible    func() bool
}

// Normalize applies field defaults and returns the immutable definition.
func (in DefinitionInput) Normalize() Definition {
	return Definition{
		Key:        in.Key,
		Action:     in.Action,
		Label:      in.Label,
		URL:        in.URL,
		ApplyUTM:   boolOrDefault(in.ApplyUTM, true),
		NewTab:     boolOrDefault(in.NewTab, true),
		Capability: in.Capability,
		Visible:    in.Visible,
	}
}

// PluginConfig owns the links registered for one plugin file under one
// registry prefix. Configs are immutable after registration; re-registering
// the same prefix and file replaces the config wholesale.
type PluginConfig struct {
	// ID correlates log lines across hook invocations.
	ID string
	// Prefix is the caller-chosen registry key.
	Prefix string
	// File is the concrete plugin file the host renders.
	File string
	// Definitions preserve registration insertion order.
	Definitions []Definition
	// UTM holds the merged parameter set applied to opted-in links.
	UTM map[string]string
}

// Definition returns the definition stored under key, if any.
func (c *PluginConfig) Definition(key string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	for _, def := range c.Definitions {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
