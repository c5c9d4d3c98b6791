// Package validation checks role sequencing on the process graph.
//
// Every check is advisory: the engine returns warnings and never blocks a role change.
// Traversals are breadth-first with a visited set, so cyclic graphs terminate.
package validation
