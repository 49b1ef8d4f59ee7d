package links

import (
	"fmt"
	"sort"

	opts "github.com/goliatone/go-options"
	layering "github.com/goliatone/go-options/layering"
)

// Built-in UTM parameter values applied when a registration supplies no
// override for the key.
const (
	UTMSourceDefault   = "plugins-page"
	UTMMediumDefault   = "plugin-row"
	UTMCampaignDefault = "admin"
)

// DefaultUTM returns the built-in UTM parameter set.
func DefaultUTM() map[string]string {
	return map[string]string{
		"utm_source":   UTMSourceDefault,
		"utm_medium":   UTMMediumDefault,
		"utm_campaign": UTMCampaignDefault,
	}
}

// MergeUTM shallow-merges caller overrides over the built-in UTM defaults,
// key by key. Extra caller keys survive the merge untouched.
func MergeUTM(overrides map[string]string) (map[string]string, error) {
	return MergeUTMWith(DefaultUTM(), overrides)
}

// MergeUTMWith layers overrides over defaults using scope priorities, so a
// caller value always wins for its key while every default key it does not
// name is preserved.
func MergeUTMWith(defaults, overrides map[string]string) (map[string]string, error) {
	defaultsScope := opts.NewScope("defaults", opts.ScopePrioritySystem, opts.WithScopeLabel("Defaults"))
	callerScope := opts.NewScope("caller", opts.ScopePriorityUser, opts.WithScopeLabel("Caller"))

	stack, err := opts.NewStack(
		opts.NewLayer(defaultsScope, toAnyMap(defaults)),
		opts.NewLayer(callerScope, toAnyMap(overrides)),
	)
	if err != nil {
		return nil, fmt.Errorf("links: build utm layers: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, fmt.Errorf("links: merge utm layers: %w", err)
	}

	out := make(map[string]string, len(defaults)+len(overrides))
	for _, key := range unionKeys(defaults, overrides) {
		value, _, err := merged.ResolveWithTrace(key)
		if err != nil {
			return nil, fmt.Errorf("links: resolve utm %s: %w", key, err)
		}
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("links: utm %s is not a string", key)
		}
		out[key] = str
	}
	return out, nil
}

func toAnyMap(src map[string]string) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return layering.Clone(out)
}

func unionKeys(maps ...map[string]string) []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
