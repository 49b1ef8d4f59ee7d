package links

import "testing"

func TestMergeUTMDefaultsOnly(t *testing.T) {
	merged, err := MergeUTM(nil)
	if err != nil {
		t.Fatalf("MergeUTM: %v", err)
	}
	if merged["utm_source"] != UTMSourceDefault {
		t.Fatalf("expected default source, got %q", merged["utm_source"])
	}
	if merged["utm_medium"] != UTMMediumDefault {
		t.Fatalf("expected default medium, got %q", merged["utm_medium"])
	}
	if merged["utm_campaign"] != UTMCampaignDefault {
		t.Fatalf("expected default campaign, got %q", merged["utm_campaign"])
	}
}

func TestMergeUTMOverridesKeyByKey(t *testing.T) {
	merged, err := MergeUTM(map[string]string{
		"utm_campaign": "spring-sale",
		"utm_content":  "row",
	})
	if err != nil {
		t.Fatalf("MergeUTM: %v", err)
	}
	if merged["utm_campaign"] != "spring-sale" {
		t.Fatalf("expected override to win, got %q", merged["utm_campaign"])
	}
	if merged["utm_source"] != UTMSourceDefault {
		t.Fatalf("expected untouched default to survive, got %q", merged["utm_source"])
	}
	if merged["utm_content"] != "row" {
		t.Fatalf("expected extra key to survive, got %q", merged["utm_content"])
	}
	if len(merged) != 4 {
		t.Fatalf("expected 4 merged keys, got %d", len(merged))
	}
}

func TestMergeUTMWithCustomDefaults(t *testing.T) {
	merged, err := MergeUTMWith(
		map[string]string{"utm_source": "marketplace", "utm_medium": "listing"},
		map[string]string{"utm_medium": "banner"},
	)
	if err != nil {
		t.Fatalf("MergeUTMWith: %v", err)
	}
	if merged["utm_source"] != "marketplace" {
		t.Fatalf("expected custom default to survive, got %q", merged["utm_source"])
	}
	if merged["utm_medium"] != "banner" {
		t.Fatalf("expected override to win, got %q", merged["utm_medium"])
	}
}

func TestDefaultUTMReturnsFreshCopy(t *testing.T) {
	first := DefaultUTM()
	first["utm_source"] = "mutated"
	if second := DefaultUTM(); second["utm_source"] != UTMSourceDefault {
		t.Fatalf("expected defaults to be copied per call, got %q", second["utm_source"])
	}
}
