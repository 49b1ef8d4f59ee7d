package links

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	def := DefinitionInput{Key: "docs", Label: "Docs", URL: "https://example.com/docs"}.Normalize()

	if !def.ApplyUTM {
		t.Fatalf("expected apply-utm to default true")
	}
	if !def.NewTab {
		t.Fatalf("expected new-tab to default true")
	}
	if def.Capability != "" {
		t.Fatalf("expected empty capability, got %q", def.Capability)
	}
	if def.Visible != nil {
		t.Fatalf("expected nil visibility predicate")
	}
	if !def.Renderable() {
		t.Fatalf("expected definition with label and url to be renderable")
	}
}

func TestNormalizeExplicitFalse(t *testing.T) {
	off := false
	def := DefinitionInput{
		Key:      "settings",
		Action:   true,
		Label:    "Settings",
		URL:      "https://example.com/settings",
		ApplyUTM: &off,
		NewTab:   &off,
	}.Normalize()

	if def.ApplyUTM {
		t.Fatalf("expected apply-utm false when explicitly disabled")
	}
	if def.NewTab {
		t.Fatalf("expected new-tab false when explicitly disabled")
	}
	if !def.Action {
		t.Fatalf("expected action position to carry over")
	}
}

func TestRenderableRequiresContent(t *testing.T) {
	cases := []struct {
		name  string
		label string
		url   string
		want  bool
	}{
		{"both present", "Docs", "https://example.com", true},
		{"missing label", "", "https://example.com", false},
		{"missing url", "Docs", "", false},
		{"both missing", "", "", false},
	}
	for _, tc := range cases {
		def := DefinitionInput{Key: "k", Label: tc.label, URL: tc.url}.Normalize()
		if def.Renderable() != tc.want {
			t.Fatalf("%s: expected renderable=%v", tc.name, tc.want)
		}
	}
}

func TestPluginConfigDefinitionLookup(t *testing.T) {
	cfg := &PluginConfig{
		Definitions: []Definition{
			{Key: "docs", Label: "Docs", URL: "https://example.com"},
			{Key: "support", Label: "Support", URL: "https://example.com/support"},
		},
	}

	def, ok := cfg.Definition("support")
	if !ok || def.Label != "Support" {
		t.Fatalf("expected support definition, got %+v ok=%v", def, ok)
	}
	if _, ok := cfg.Definition("missing"); ok {
		t.Fatalf("expected lookup miss for unknown key")
	}
	var nilCfg *PluginConfig
	if _, ok := nilCfg.Definition("docs"); ok {
		t.Fatalf("expected lookup miss on nil config")
	}
}
