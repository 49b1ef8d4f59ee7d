// Package render implements the request-time link processing pipeline:
// filtering configured definitions against position, capability, visibility
// and content, decorating URLs with UTM attribution, and merging the rendered
// anchors into the host-supplied collection.
package render

import (
	"fmt"
	"net/url"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-plugin-links/pkg/interfaces/logger"
	"github.com/goliatone/go-plugin-links/pkg/links"
)

// Env bundles the host collaborators a processing pass needs. Translator is
// optional; when present, a definition's label is resolved as a translation
// key with the raw label as fallback.
type Env struct {
	Capability links.CapabilityChecker
	Escaper    links.Escaper
	Translator i18n.Translator
	Locale     string
	Logger     logger.Logger
}

func (e Env) withDefaults() Env {
	if e.Capability == nil {
		e.Capability = links.AllowAll{}
	}
	if e.Escaper == nil {
		e.Escaper = links.HTMLEscaper{}
	}
	if e.Logger == nil {
		e.Logger = &logger.Nop{}
	}
	return e
}

// Process merges cfg's definitions for pos into existing and returns the
// result. The input collection is never mutated; host entries keep their
// relative order and configured keys overwrite same-named host keys in place.
// A definition that fails any filter simply never becomes part of the output,
// leaving any host entry under its key untouched.
func Process(existing *links.Collection, cfg *links.PluginConfig, pos links.Position, env Env) *links.Collection {
	out := existing.Clone()
	if cfg == nil {
		return out
	}
	env = env.withDefaults()
	log := env.Logger.With(
		logger.Field{Key: "config", Value: cfg.ID},
		logger.Field{Key: "plugin", Value: cfg.File},
		logger.Field{Key: "position", Value: pos.String()},
	)

	for _, def := range cfg.Definitions {
		if def.Action != (pos == links.PositionAction) {
			continue
		}
		if def.Capability != "" && !env.Capability.Allows(def.Capability) {
			log.Debug("link skipped: capability denied",
				logger.Field{Key: "key", Value: def.Key},
				logger.Field{Key: "capability", Value: def.Capability})
			continue
		}
		// Predicates run on every invocation; results are never cached.
		if def.Visible != nil && !def.Visible() {
			log.Debug("link skipped: visibility predicate false",
				logger.Field{Key: "key", Value: def.Key})
			continue
		}
		if !def.Renderable() {
			log.Debug("link skipped: empty label or url",
				logger.Field{Key: "key", Value: def.Key})
			continue
		}

		href := def.URL
		if def.ApplyUTM {
			href = appendQuery(href, cfg.UTM)
		}
		out.Set(def.Key, anchor(env, def, href))
		log.Debug("link rendered", logger.Field{Key: "key", Value: def.Key})
	}
	return out
}

// appendQuery merges params into target's query string. Existing parameters
// survive unless a merged key collides, in which case the merged value wins.
// Unparseable targets pass through untouched.
func appendQuery(target string, params map[string]string) string {
	if len(params) == 0 {
		return target
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}
	query := parsed.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func anchor(env Env, def links.Definition, href string) string {
	label := def.Label
	if env.Translator != nil {
		if translated, err := env.Translator.Translate(env.Locale, def.Label); err == nil && translated != "" {
			label = translated
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<a href="%s"`, env.Escaper.EscapeURL(href))
	if def.NewTab {
		b.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	fmt.Fprintf(&b, `>%s</a>`, env.Escaper.EscapeText(label))
	return b.String()
}
