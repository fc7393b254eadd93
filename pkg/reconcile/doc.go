// Package reconcile turns virtual trees (pkg/vdom) into live trees and
// incremental live-tree edits.
//
// Mount renders an initial tree into a fresh live subtree. Update diffs a
// previously mounted tree against a newly produced one and applies the
// minimal set of mutations: wholesale replacement when a node's type
// changed, a consumed-set attribute merge otherwise, and keyed-then-
// positional children reconciliation. Keyed matching always wins over
// positional matching; a keyed new child never consumes a positional slot.
//
// Component nodes expand through their Factory. The optional lifecycle
// capabilities (Created, Mounted, ShouldUpdate, Updated) are dispatch-checked
// before each call; a ShouldUpdate returning false leaves the mounted subtree
// untouched.
//
// Everything here is single-threaded and synchronous. The reconciler never
// returns an error: an element with an empty type tag simply mounts to
// nothing.
package reconcile
