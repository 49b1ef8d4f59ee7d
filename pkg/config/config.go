package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/goliatone/go-config/cfgx"
	"github.com/goliatone/go-plugin-links/pkg/links"
)

// Config captures module-level knobs: the debug-log gate, the built-in UTM
// values applied when a registration supplies no override, and the fixed
// external URLs used by the storefront registration helper.
type Config struct {
	Debug      bool             `mapstructure:"debug" json:"debug"`
	UTM        UTMConfig        `mapstructure:"utm" json:"utm"`
	Storefront StorefrontConfig `mapstructure:"storefront" json:"storefront"`
}

// UTMConfig overrides the built-in UTM attribution trio globally.
// Per-registration overrides still win key by key.
type UTMConfig struct {
	Source   string `mapstructure:"source" json:"source"`
	Medium   string `mapstructure:"medium" json:"medium"`
	Campaign string `mapstructure:"campaign" json:"campaign"`
}

// StorefrontConfig holds the external destinations for the default
// support/extensions row-meta links.
type StorefrontConfig struct {
	SupportURL    string `mapstructure:"support_url" json:"support_url"`
	ExtensionsURL string `mapstructure:"extensions_url" json:"extensions_url"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		UTM: UTMConfig{
			Source:   links.UTMSourceDefault,
			Medium:   links.UTMMediumDefault,
			Campaign: links.UTMCampaignDefault,
		},
		Storefront: StorefrontConfig{
			SupportURL:    "https://woocommerce.com/my-account/create-a-ticket/",
			ExtensionsURL: "https://woocommerce.com/product-category/woocommerce-extensions/",
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.UTM.Source == "" {
		return errors.New("utm.source is required")
	}
	if c.UTM.Medium == "" {
		return errors.New("utm.medium is required")
	}
	if c.UTM.Campaign == "" {
		return errors.New("utm.campaign is required")
	}
	for name, raw := range map[string]string{
		"storefront.support_url":    c.Storefront.SupportURL,
		"storefront.extensions_url": c.Storefront.ExtensionsURL,
	} {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := url.Parse(raw); err != nil {
			return fmt.Errorf("%s is not a valid url: %w", name, err)
		}
	}
	return nil
}

// Params returns the UTM trio as a parameter map suitable for merging.
func (c UTMConfig) Params() map[string]string {
	return map[string]string{
		"utm_source":   c.Source,
		"utm_medium":   c.Medium,
		"utm_campaign": c.Campaign,
	}
}

// Load decodes arbitrary input (struct, map) using cfgx helpers. While
// cfgx.Build still returns zero values, we fallback to a lightweight decoder
// to keep smoke tests meaningful. Once cfgx is fully implemented we can drop
// the fallback.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.UTM.Source == "" {
		c.UTM.Source = defaults.UTM.Source
	}
	if c.UTM.Medium == "" {
		c.UTM.Medium = defaults.UTM.Medium
	}
	if c.UTM.Campaign == "" {
		c.UTM.Campaign = defaults.UTM.Campaign
	}
	if c.Storefront.SupportURL == "" {
		c.Storefront.SupportURL = defaults.Storefront.SupportURL
	}
	if c.Storefront.ExtensionsURL == "" {
		c.Storefront.ExtensionsURL = defaults.Storefront.ExtensionsURL
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
