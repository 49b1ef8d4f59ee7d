// Package storefront is a convenience registration entry point for plugins
// built on a storefront-extension framework. It pre-populates the standard
// support and extensions row-meta links, both gated on the manage_options
// capability, and adds a settings action link when the framework is detected
// and a settings tab plus section are supplied. The settings link skips UTM
// attribution and opens in the same tab, and its visibility re-checks the
// framework on every render.
package storefront

import (
	"fmt"

	"github.com/goliatone/go-plugin-links/pkg/config"
	"github.com/goliatone/go-plugin-links/pkg/links"
	"github.com/goliatone/go-plugin-links/pkg/registry"
)

// ManageCapability gates the default support/extensions links.
const ManageCapability = "manage_options"

// Detector reports whether the storefront-extension framework is present.
type Detector func() bool

// SettingsURLBuilder builds the framework's admin-settings URL for a
// settings tab and section. The framework owns URL construction; this module
// never assembles admin URLs itself.
type SettingsURLBuilder func(tab, section string) string

// Option configures a storefront registration.
type Option func(*settings)

type settings struct {
	supportURL      string
	extensionsURL   string
	detector        Detector
	settingsURL     SettingsURLBuilder
	settingsTab     string
	settingsSection string
	extra           []links.DefinitionInput
	utm             map[string]string
}

// WithSupportURL overrides the default support destination.
func WithSupportURL(url string) Option {
	return func(s *settings) { s.supportURL = url }
}

// WithExtensionsURL overrides the default extensions destination.
func WithExtensionsURL(url string) Option {
	return func(s *settings) { s.extensionsURL = url }
}

// WithDetector wires the framework presence check.
func WithDetector(detector Detector) Option {
	return func(s *settings) { s.detector = detector }
}

// WithSettingsURL wires the framework's admin-settings URL builder.
func WithSettingsURL(builder SettingsURLBuilder) Option {
	return func(s *settings) { s.settingsURL = builder }
}

// WithSettingsTab selects the framework settings tab for the settings link.
func WithSettingsTab(tab string) Option {
	return func(s *settings) { s.settingsTab = tab }
}

// WithSettingsSection selects the settings section within the tab.
func WithSettingsSection(section string) Option {
	return func(s *settings) { s.settingsSection = section }
}

// WithExtraLinks appends caller definitions after the defaults.
func WithExtraLinks(defs ...links.DefinitionInput) Option {
	return func(s *settings) { s.extra = append(s.extra, defs...) }
}

// WithUTM supplies per-registration UTM overrides.
func WithUTM(utm map[string]string) Option {
	return func(s *settings) { s.utm = utm }
}

// Register registers the default link set for pluginFile under prefix on reg.
func Register(reg *registry.Registry, prefix, pluginFile string, opts ...Option) (*links.PluginConfig, error) {
	if reg == nil {
		return nil, fmt.Errorf("storefront: registry is required: %w", links.ErrInvalidConfiguration)
	}

	defaults := config.Defaults().Storefront
	s := settings{
		supportURL:    defaults.SupportURL,
		extensionsURL: defaults.ExtensionsURL,
	}
	for _, opt := range opts {
		opt(&s)
	}

	defs := []links.DefinitionInput{
		{Key: "support", Label: "Support", URL: s.supportURL, Capability: ManageCapability},
		{Key: "extensions", Label: "Extensions", URL: s.extensionsURL, Capability: ManageCapability},
	}

	if s.settingsLinkApplies() {
		off := false
		detector := s.detector
		defs = append(defs, links.DefinitionInput{
			Key:      "settings",
			Action:   true,
			Label:    "Settings",
			URL:      s.settingsURL(s.settingsTab, s.settingsSection),
			ApplyUTM: &off,
			NewTab:   &off,
			Visible:  func() bool { return detector() },
		})
	}

	defs = append(defs, s.extra...)
	return reg.Register(prefix, pluginFile, defs, s.utm)
}

// settingsLinkApplies requires the framework to be present now and a full
// tab/section pair; the rendered link still re-checks presence per render.
func (s settings) settingsLinkApplies() bool {
	if s.detector == nil || s.settingsURL == nil {
		return false
	}
	if s.settingsTab == "" || s.settingsSection == "" {
		return false
	}
	return s.detector()
}
