// Package style resolves rendering directives for block trees through a
// cascading rule engine modeled on CSS.
//
// Rules pair a selector with declarations. Selectors match block tags:
// a bare tag ("task"), a class-like tag (".important"), an id-like tag
// ("#unique"), or a space-separated descendant path ("task .nested").
// Specificity ranks (id count, class count, tag count) lexicographically;
// higher specificity wins, and among equals the later registration wins.
//
// A [Manager] is an explicitly constructed instance injected into the
// renderer — there is no process-wide singleton, so tests create a fresh
// manager per case and never leak rules into each other.
//
// Resolution walks the ancestor chain for inheritable properties (the
// format family never inherits), overlays matching rules by specificity,
// and finally overlays the block's own inline style at maximum priority.
// Resolve is a pure function of the tree's current state and is safe to
// call repeatedly during a render pass.
package style
