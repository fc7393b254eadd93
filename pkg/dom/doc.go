// Package dom provides an in-memory live tree implementing the target
// contract from pkg/vdom.
//
// A Document creates nodes and assigns each a stable ID ("n1", "n2", ...).
// Every mutation applied through the LiveNode interface is appended to the
// document's mutation log; Flush drains it. The server encodes flushed
// mutations as wire patches, and tests assert on them directly (an untouched
// tree flushes to nothing).
//
// Nodes follow DOM semantics where it matters to the reconciler: InsertBefore
// and AppendChild move a node that is already attached elsewhere, and both
// are no-ops when the node already occupies the requested position.
package dom
