// Package links defines the domain model for plugin listing links: typed link
// definitions with capability gates and visibility predicates, ordered link
// collections as exchanged with the host's filter hooks, and the collaborator
// contracts (capability checks, escaping) the host is expected to provide.
// Defaults follow the plugins-page conventions: links open in a new tab and
// carry UTM attribution unless a definition opts out.
package links
