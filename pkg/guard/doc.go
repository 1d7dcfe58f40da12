// Package guard connects the permission evaluator to a host presentation
// layer. A Guard holds the configured held-permission source and decides,
// per element, whether the element's declared requirement is satisfied by
// the actor's current permissions; unsatisfied elements are detached from
// their presentation tree.
//
// The held-permission source is explicit state on the Guard, not
// process-wide: construct one Guard at startup, hand it to whatever attaches
// elements, and swap the source with SetSource when the actor's permissions
// change (last write wins). Each decision reads the source's current
// snapshot; the Guard never subscribes to changes and never re-evaluates an
// element after attachment; freshness is the host's responsibility.
//
// Every failure path is fail closed: an unconfigured source, an invalid
// requirement, or a panic out of host code all report a diagnostic and
// treat the element as unauthorized.
package guard
