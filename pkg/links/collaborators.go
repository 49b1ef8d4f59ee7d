package links

import "html"

// CapabilityChecker answers capability checks for the current request's
// caller. The host owns permission resolution; wrap whatever ambient context
// it provides (current user, session) in a closure satisfying this contract.
type CapabilityChecker interface {
	Allows(capability string) bool
}

// CapabilityFunc adapts a plain function to CapabilityChecker.
type CapabilityFunc func(capability string) bool

// Allows invokes the wrapped function.
func (f CapabilityFunc) Allows(capability string) bool { return f(capability) }

// AllowAll grants every capability. It is the default checker so unwired
// registries still render gated links; hosts should install a real checker.
type AllowAll struct{}

var _ CapabilityChecker = (*AllowAll)(nil)

// Allows always reports true.
func (AllowAll) Allows(capability string) bool { return true }

// DenyAll refuses every capability, hiding all gated links.
type DenyAll struct{}

var _ CapabilityChecker = (*DenyAll)(nil)

// Allows always reports false.
func (DenyAll) Allows(capability string) bool { return false }

// Escaper provides the host's escaping primitives for emitted markup.
type Escaper interface {
	// EscapeURL prepares a URL for embedding in an href attribute.
	EscapeURL(url string) string
	// EscapeText sanitizes display text for use as anchor inner text.
	EscapeText(text string) string
}

// HTMLEscaper is the default Escaper, entity-escaping both attribute values
// and inner text.
type HTMLEscaper struct{}

var _ Escaper = (*HTMLEscaper)(nil)

// EscapeURL entity-escapes url for attribute context.
func (HTMLEscaper) EscapeURL(url string) string { return html.EscapeString(url) }

// EscapeText entity-escapes text.
func (HTMLEscaper) EscapeText(text string) string { return html.EscapeString(text) }
