// Package render turns virtual trees into HTML.
//
// The renderer walks a VNode tree and writes escaped HTML: text content and
// attribute values are entity-escaped, void elements self-close, boolean
// attributes collapse to their bare name, and attributes are emitted in
// sorted order so output is deterministic.
//
// For a tree that has been mounted into a pkg/dom document, the renderer can
// additionally emit data-lid attributes carrying the live node IDs of
// interactive elements, which is how the server's wire protocol addresses
// nodes on the client.
package render
