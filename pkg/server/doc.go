// Package server hosts Luma applications over HTTP and WebSocket.
//
// The server renders the initial page as HTML, then upgrades each client to
// a WebSocket connection. Every connection owns a Session holding a live
// tree (pkg/dom), a reconciler, and the mounted root component. Client
// events are decoded from protocol frames, dispatched to the listener
// registered on the target node, and the resulting mutations are sent back
// as a Patches frame.
package server
