package storefront

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-plugin-links/pkg/links"
	"github.com/goliatone/go-plugin-links/pkg/registry"
)

func settingsURL(tab, section string) string {
	return "https://example.com/admin?tab=" + tab + "&section=" + section
}

func TestRegisterDefaultLinks(t *testing.T) {
	reg := registry.New()
	cfg, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	support, ok := cfg.Definition("support")
	if !ok || support.Action || support.Capability != ManageCapability {
		t.Fatalf("expected capability-gated support row-meta link, got %+v", support)
	}
	extensions, ok := cfg.Definition("extensions")
	if !ok || extensions.Action || extensions.Capability != ManageCapability {
		t.Fatalf("expected capability-gated extensions row-meta link, got %+v", extensions)
	}
	if _, ok := cfg.Definition("settings"); ok {
		t.Fatalf("expected no settings link without a detector")
	}

	meta := reg.RowMeta(links.NewCollection(), "my-plugin/my-plugin.php")
	if !meta.Has("support") || !meta.Has("extensions") {
		t.Fatalf("expected default links in row meta, got %v", meta.Keys())
	}
	markup, _ := meta.Get("support")
	if !strings.Contains(markup, "utm_source=") {
		t.Fatalf("expected utm attribution on support link, got %s", markup)
	}
}

func TestRegisterDefaultLinksHiddenWithoutCapability(t *testing.T) {
	reg := registry.New(registry.WithCapabilityChecker(links.DenyAll{}))
	if _, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php"); err != nil {
		t.Fatalf("register: %v", err)
	}

	meta := reg.RowMeta(links.NewCollection(), "my-plugin/my-plugin.php")
	if meta.Len() != 0 {
		t.Fatalf("expected gated defaults hidden without capability, got %v", meta.Keys())
	}
}

func TestSettingsLinkRequiresTabAndSection(t *testing.T) {
	detector := Detector(func() bool { return true })

	reg := registry.New()
	cfg, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php",
		WithDetector(detector),
		WithSettingsURL(settingsURL),
		WithSettingsTab("integrations"),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := cfg.Definition("settings"); ok {
		t.Fatalf("expected no settings link without a section")
	}
}

func TestSettingsLink(t *testing.T) {
	present := true
	reg := registry.New()
	cfg, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php",
		WithDetector(func() bool { return present }),
		WithSettingsURL(settingsURL),
		WithSettingsTab("integrations"),
		WithSettingsSection("my-plugin"),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	def, ok := cfg.Definition("settings")
	if !ok || !def.Action {
		t.Fatalf("expected settings action link, got %+v ok=%v", def, ok)
	}
	if def.ApplyUTM || def.NewTab {
		t.Fatalf("expected settings link utm-exempt and same-tab, got %+v", def)
	}

	actions := reg.ActionLinks(links.NewCollection(), "my-plugin/my-plugin.php")
	markup, _ := actions.Get("settings")
	if !strings.Contains(markup, "tab=integrations") || strings.Contains(markup, "utm_") {
		t.Fatalf("unexpected settings markup: %s", markup)
	}
	if strings.Contains(markup, "target=") {
		t.Fatalf("expected same-tab settings link, got %s", markup)
	}

	// Framework presence is re-checked on every render.
	present = false
	actions = reg.ActionLinks(links.NewCollection(), "my-plugin/my-plugin.php")
	if actions.Has("settings") {
		t.Fatalf("expected settings link hidden once framework disappears")
	}
}

func TestSettingsLinkSkippedWhenFrameworkAbsent(t *testing.T) {
	reg := registry.New()
	cfg, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php",
		WithDetector(func() bool { return false }),
		WithSettingsURL(settingsURL),
		WithSettingsTab("integrations"),
		WithSettingsSection("my-plugin"),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := cfg.Definition("settings"); ok {
		t.Fatalf("expected no settings link when framework is absent")
	}
}

func TestExtraLinksAndOverrides(t *testing.T) {
	reg := registry.New()
	cfg, err := Register(reg, "my-plugin", "my-plugin/my-plugin.php",
		WithSupportURL("https://example.com/help"),
		WithExtraLinks(links.DefinitionInput{Key: "docs", Label: "Docs", URL: "https://example.com/docs"}),
		WithUTM(map[string]string{"utm_campaign": "suite"}),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	support, _ := cfg.Definition("support")
	if support.URL != "https://example.com/help" {
		t.Fatalf("expected support url override, got %q", support.URL)
	}
	if _, ok := cfg.Definition("docs"); !ok {
		t.Fatalf("expected extra link registered")
	}
	if cfg.UTM["utm_campaign"] != "suite" {
		t.Fatalf("expected utm override, got %q", cfg.UTM["utm_campaign"])
	}
}

func TestRegisterNilRegistry(t *testing.T) {
	if _, err := Register(nil, "my-plugin", "my-plugin/my-plugin.php"); !errors.Is(err, links.ErrInvalidConfiguration) {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}
